package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/pagination"
	"smartgrow/internal/services"
)

// PlanHandler handles public plan requests.
type PlanHandler struct {
	planService services.PlanServicer
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService services.PlanServicer) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// ListPlans returns plans open for purchase
// @Summary     List active plans
// @Description List investment plans currently open for purchase
// @Tags        plans
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Plan] "Active plans"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plans, err := h.planService.GetActivePlans(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// GetPlan returns a single plan
// @Summary     Get a plan
// @Description Get a single investment plan by ID
// @Tags        plans
// @Produce     json
// @Param       id path int true "Plan ID"
// @Success     200 {object} models.Plan "Plan"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.planService.GetPlanByID(planID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
