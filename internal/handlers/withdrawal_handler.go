package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
	"smartgrow/internal/services"
)

// WithdrawalHandler handles user withdrawal requests.
type WithdrawalHandler struct {
	withdrawalService services.WithdrawalServicer
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalService services.WithdrawalServicer) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// RequestWithdrawalRequest represents the request payload for a withdrawal.
type RequestWithdrawalRequest struct {
	Amount         int64                `json:"amount" binding:"required,gt=0"`
	Method         models.PaymentMethod `json:"method" binding:"required,payment_method"`
	AccountDetails string               `json:"account_details" binding:"required,max=500"`
}

// RequestWithdrawal asks to withdraw funds
// @Summary     Request a withdrawal
// @Description Request a payout; the amount is held from the balance until an admin reviews it
// @Tags        withdrawals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RequestWithdrawalRequest true "Withdrawal details"
// @Success     201 {object} models.Withdrawal "Withdrawal recorded as pending"
// @Failure     400 {object} ErrorResponse "Invalid input, below minimum, or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /withdrawals [post]
func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	withdrawal, err := h.withdrawalService.RequestWithdrawal(userID, req.Amount, req.Method, req.AccountDetails)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"withdrawal": withdrawal})
}

// ListWithdrawals returns the user's withdrawal history
// @Summary     List withdrawals
// @Description List the authenticated user's withdrawals, newest first
// @Tags        withdrawals
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Withdrawal] "Withdrawals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /withdrawals [get]
func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	withdrawals, err := h.withdrawalService.GetUserWithdrawals(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, withdrawals)
}
