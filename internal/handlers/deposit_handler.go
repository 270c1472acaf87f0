package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
	"smartgrow/internal/services"
)

// DepositHandler handles user deposit requests.
type DepositHandler struct {
	depositService services.DepositServicer
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositService services.DepositServicer) *DepositHandler {
	return &DepositHandler{depositService: depositService}
}

// CreateDepositRequest represents the request payload for submitting a deposit.
type CreateDepositRequest struct {
	Amount        int64                `json:"amount" binding:"required,gt=0"`
	Method        models.PaymentMethod `json:"method" binding:"required,payment_method"`
	SenderDetails string               `json:"sender_details" binding:"max=500"`
}

// CreateDeposit submits a deposit for admin review
// @Summary     Submit a deposit
// @Description Record a transfer the user claims to have made; credited after admin approval
// @Tags        deposits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDepositRequest true "Deposit details"
// @Success     201 {object} models.Deposit "Deposit recorded as pending"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deposits [post]
func (h *DepositHandler) CreateDeposit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deposit, err := h.depositService.CreateDeposit(userID, req.Amount, req.Method, req.SenderDetails)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"deposit": deposit})
}

// ListDeposits returns the user's deposit history
// @Summary     List deposits
// @Description List the authenticated user's deposits, newest first
// @Tags        deposits
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Deposit] "Deposits"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deposits [get]
func (h *DepositHandler) ListDeposits(c *gin.Context) {
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

	deposits, err := h.depositService.GetUserDeposits(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, deposits)
}
