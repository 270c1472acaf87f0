package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/pagination"
	"smartgrow/internal/services"
)

// ReferralHandler handles referral dashboard requests.
type ReferralHandler struct {
	referralService services.ReferralServicer
}

// NewReferralHandler creates a new ReferralHandler.
func NewReferralHandler(referralService services.ReferralServicer) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// GetStats returns the user's referral dashboard
// @Summary     Referral stats
// @Description Get the user's referral code, network counts per level, and commission earnings
// @Tags        referrals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ReferralStats "Referral stats"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /referrals/stats [get]
func (h *ReferralHandler) GetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.referralService.GetReferralStats(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListCommissions returns the user's commission ledger
// @Summary     List commissions
// @Description List commissions earned from the user's referral network, newest first
// @Tags        referrals
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Commission] "Commissions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /referrals/commissions [get]
func (h *ReferralHandler) ListCommissions(c *gin.Context) {
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

	commissions, err := h.referralService.GetUserCommissions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, commissions)
}
