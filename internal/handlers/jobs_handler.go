package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartgrow/internal/logger"
	"smartgrow/internal/services"
)

// JobsHandler handles internal maintenance endpoints called by the operator's
// scheduler, authenticated with a shared API key rather than a user token.
type JobsHandler struct {
	investmentService services.InvestmentServicer
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(investmentService services.InvestmentServicer) *JobsHandler {
	return &JobsHandler{investmentService: investmentService}
}

// ExpireInvestments sweeps investments past their end date
// @Summary     Expire investments
// @Description Mark active investments whose term has ended as completed
// @Tags        jobs
// @Produce     json
// @Param       X-API-Key header string true "Job API key"
// @Success     200 {object} map[string]int64 "Number of investments expired"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /internal/jobs/expire-investments [post]
func (h *JobsHandler) ExpireInvestments(c *gin.Context) {
	count, err := h.investmentService.ExpireInvestments(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	if count > 0 {
		logger.Get().Infow("expired investments", "count", count)
	}

	c.JSON(http.StatusOK, gin.H{"expired": count})
}
