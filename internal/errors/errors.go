// Package errors provides custom error types for the SmartGrow API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountDisabled    = &AppError{Code: "ACCOUNT_DISABLED", Message: "This account has been disabled", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Record validation errors. Snapshot data handed to the calculation packages
// is validated up front and never silently defaulted.
var (
	ErrInvalidRecord = &AppError{Code: "INVALID_RECORD", Message: "Record is malformed", StatusCode: http.StatusUnprocessableEntity}
)

// User errors.
var (
	ErrUserNotFound        = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail      = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrInvalidReferralCode = &AppError{Code: "INVALID_REFERRAL_CODE", Message: "Referral code does not exist", StatusCode: http.StatusBadRequest}
	ErrInsufficientBalance = &AppError{Code: "INSUFFICIENT_BALANCE", Message: "Insufficient balance", StatusCode: http.StatusBadRequest}
)

// Plan errors.
var (
	ErrPlanNotFound = &AppError{Code: "PLAN_NOT_FOUND", Message: "Plan not found", StatusCode: http.StatusNotFound}
	ErrPlanInactive = &AppError{Code: "PLAN_INACTIVE", Message: "Plan is not available for purchase", StatusCode: http.StatusBadRequest}
	ErrPlanInUse    = &AppError{Code: "PLAN_IN_USE", Message: "Plan has existing investments", StatusCode: http.StatusConflict}
)

// Investment errors.
var (
	ErrInvestmentNotFound  = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
	ErrAmountOutOfRange    = &AppError{Code: "AMOUNT_OUT_OF_RANGE", Message: "Amount is outside the plan's allowed range", StatusCode: http.StatusBadRequest}
	ErrNoCollectableDays   = &AppError{Code: "NO_COLLECTABLE_DAYS", Message: "No daily income available to collect yet", StatusCode: http.StatusConflict}
	ErrInvestmentNotActive = &AppError{Code: "INVESTMENT_NOT_ACTIVE", Message: "Investment is not active", StatusCode: http.StatusBadRequest}
)

// Deposit errors.
var (
	ErrDepositNotFound   = &AppError{Code: "DEPOSIT_NOT_FOUND", Message: "Deposit not found", StatusCode: http.StatusNotFound}
	ErrDepositNotPending = &AppError{Code: "DEPOSIT_NOT_PENDING", Message: "Deposit has already been processed", StatusCode: http.StatusConflict}
)

// Withdrawal errors.
var (
	ErrWithdrawalNotFound   = &AppError{Code: "WITHDRAWAL_NOT_FOUND", Message: "Withdrawal not found", StatusCode: http.StatusNotFound}
	ErrWithdrawalNotPending = &AppError{Code: "WITHDRAWAL_NOT_PENDING", Message: "Withdrawal has already been processed", StatusCode: http.StatusConflict}
	ErrBelowMinWithdrawal   = &AppError{Code: "BELOW_MIN_WITHDRAWAL", Message: "Amount is below the minimum withdrawal", StatusCode: http.StatusBadRequest}
)

// Settings errors.
var (
	ErrSettingNotFound = &AppError{Code: "SETTING_NOT_FOUND", Message: "Setting not found", StatusCode: http.StatusNotFound}
)
