package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/pagination"
	"smartgrow/internal/services"
)

// InvestmentHandler handles investment purchase and income collection requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// PurchaseRequest represents the request payload for buying a plan.
type PurchaseRequest struct {
	PlanID uint  `json:"plan_id" binding:"required"`
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// Purchase handles buying an investment plan
// @Summary     Purchase a plan
// @Description Buy an investment plan, debiting the amount from the user's balance
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PurchaseRequest true "Purchase details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input, inactive plan, or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) Purchase(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.PurchasePlan(userID, req.PlanID, req.Amount, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "purchase", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"plan_id": req.PlanID, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// ListInvestments returns the user's investments
// @Summary     List investments
// @Description List the authenticated user's investments with live collection-window data
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[services.InvestmentView] "Investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
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

	investments, err := h.investmentService.GetUserInvestments(userID, page, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, investments)
}

// GetInvestment returns a single investment
// @Summary     Get an investment
// @Description Get one of the authenticated user's investments by ID
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     200 {object} models.Investment "Investment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(userID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// Collect claims available daily income
// @Summary     Collect daily income
// @Description Claim all available unclaimed daily income for an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     200 {object} services.CollectionResult "Collection outcome"
// @Failure     400 {object} ErrorResponse "Investment not active"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     409 {object} ErrorResponse "No collectable days"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/collect [post]
func (h *InvestmentHandler) Collect(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.investmentService.CollectIncome(userID, investmentID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "collect", "investment", investmentID, c.ClientIP(),
		map[string]interface{}{"days": result.DaysCollected, "profit": result.ProfitEarned})

	c.JSON(http.StatusOK, result)
}

// ListCollections returns the collection history for an investment
// @Summary     Collection history
// @Description List past daily-income collections for an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.IncomeCollection] "Collections"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/collections [get]
func (h *InvestmentHandler) ListCollections(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	collections, err := h.investmentService.GetCollections(userID, investmentID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, collections)
}
