package services

import (
	"time"

	"gorm.io/gorm"

	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
	"smartgrow/internal/referral"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName, phone, referralCode string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	SetUserActive(userID uint, active bool) (*models.User, error)
}

// PlanServicer defines the contract for plan-related business logic.
type PlanServicer interface {
	CreatePlan(name, description string, minAmount, maxAmount int64, durationDays int, profitPercent float64) (*models.Plan, error)
	GetActivePlans(page pagination.PageRequest) (*pagination.PageResponse[models.Plan], error)
	GetAllPlans(page pagination.PageRequest) (*pagination.PageResponse[models.Plan], error)
	GetPlanByID(planID uint) (*models.Plan, error)
	UpdatePlan(planID uint, name, description string, minAmount, maxAmount *int64, durationDays *int, profitPercent *float64, isActive *bool) (*models.Plan, error)
	DeletePlan(planID uint) error
}

// InvestmentView is an investment enriched with the derived collection-window
// fields the dashboard renders. All derivations come from the income package
// so every screen shows the same numbers.
type InvestmentView struct {
	models.Investment
	AvailableDays   int   `json:"available_days"`
	CanCollect      bool  `json:"can_collect"`
	ProgressPercent int   `json:"progress_percent"`
	DaysRemaining   int   `json:"days_remaining"`
	ProfitPerDay    int64 `json:"profit_per_day"`
}

// CollectionResult is the authoritative outcome of a daily-income collection.
// Callers must trust this over any client-side precomputation.
type CollectionResult struct {
	ProfitEarned      int64 `json:"profit_earned"`
	DaysCollected     int   `json:"days_collected"`
	IsFinalCollection bool  `json:"is_final_collection"`
	NewBalance        int64 `json:"new_balance"`
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	PurchasePlan(userID, planID uint, amount int64, now time.Time) (*models.Investment, error)
	GetUserInvestments(userID uint, page pagination.PageRequest, now time.Time) (*pagination.PageResponse[InvestmentView], error)
	GetInvestmentByID(userID, investmentID uint) (*models.Investment, error)
	CollectIncome(userID, investmentID uint, now time.Time) (*CollectionResult, error)
	GetCollections(userID, investmentID uint, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeCollection], error)
	ExpireInvestments(now time.Time) (int64, error)
}

// DepositServicer defines the contract for deposit-related business logic.
type DepositServicer interface {
	CreateDeposit(userID uint, amount int64, method models.PaymentMethod, senderDetails string) (*models.Deposit, error)
	GetUserDeposits(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Deposit], error)
	ListDeposits(status *models.DepositStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Deposit], error)
	ApproveDeposit(adminID, depositID uint, note string) (*models.Deposit, error)
	RejectDeposit(adminID, depositID uint, note string) (*models.Deposit, error)
}

// WithdrawalServicer defines the contract for withdrawal-related business logic.
type WithdrawalServicer interface {
	RequestWithdrawal(userID uint, amount int64, method models.PaymentMethod, accountDetails string) (*models.Withdrawal, error)
	GetUserWithdrawals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Withdrawal], error)
	ListWithdrawals(status *models.WithdrawalStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Withdrawal], error)
	ApproveWithdrawal(adminID, withdrawalID uint, note string) (*models.Withdrawal, error)
	RejectWithdrawal(adminID, withdrawalID uint, note string) (*models.Withdrawal, error)
}

// ReferralStats is the dashboard view of a user's referral network.
type ReferralStats struct {
	ReferralCode string                    `json:"referral_code"`
	Counts       referral.LevelCounts      `json:"counts"`
	Earnings     *referral.EarningsSummary `json:"earnings"`
}

// ReferralServicer defines the contract for referral-related business logic.
type ReferralServicer interface {
	GetReferralStats(userID uint, now time.Time) (*ReferralStats, error)
	GetUserCommissions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Commission], error)
	// PayCommissions credits up to MaxLevel ancestors of the deposit's user
	// inside the caller's transaction. It must only be called from the
	// deposit-approval transaction.
	PayCommissions(tx *gorm.DB, deposit *models.Deposit) error
}

// SettingsServicer defines the contract for site settings.
type SettingsServicer interface {
	Get(key string) (string, error)
	GetAll() ([]models.Setting, error)
	Set(key, value string) (*models.Setting, error)
	CommissionRates() ([referral.MaxLevel]float64, error)
	MinWithdrawalAmount() (int64, error)
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveInvestments  int64 `json:"active_investments"`
	TotalInvested      int64 `json:"total_invested"`
	PendingDeposits    int64 `json:"pending_deposits"`
	PendingWithdrawals int64 `json:"pending_withdrawals"`
	TotalCommissions   int64 `json:"total_commissions"`
}

// StatsServicer defines the contract for admin platform statistics.
type StatsServicer interface {
	GetPlatformStats() (*PlatformStats, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
