package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
	"smartgrow/internal/services"
)

// AdminHandler handles administrative requests: user management, deposit and
// withdrawal review, plan management, settings, and platform stats.
type AdminHandler struct {
	userService       services.UserServicer
	planService       services.PlanServicer
	depositService    services.DepositServicer
	withdrawalService services.WithdrawalServicer
	settingsService   services.SettingsServicer
	statsService      services.StatsServicer
	auditService      services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	userService services.UserServicer,
	planService services.PlanServicer,
	depositService services.DepositServicer,
	withdrawalService services.WithdrawalServicer,
	settingsService services.SettingsServicer,
	statsService services.StatsServicer,
	auditService services.AuditServicer,
) *AdminHandler {
	return &AdminHandler{
		userService:       userService,
		planService:       planService,
		depositService:    depositService,
		withdrawalService: withdrawalService,
		settingsService:   settingsService,
		statsService:      statsService,
		auditService:      auditService,
	}
}

// ReviewRequest represents the optional note attached to a review decision.
type ReviewRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// SetUserActiveRequest represents the request payload for enabling/disabling a user.
type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CreatePlanRequest represents the request payload for creating a plan.
type CreatePlanRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	Description   string  `json:"description" binding:"max=500"`
	MinAmount     int64   `json:"min_amount" binding:"required,gt=0"`
	MaxAmount     int64   `json:"max_amount" binding:"required,gt=0"`
	DurationDays  int     `json:"duration_days" binding:"required,gt=0"`
	ProfitPercent float64 `json:"profit_percent" binding:"gte=0"`
}

// UpdatePlanRequest represents the request payload for updating a plan.
// Omitted fields are left unchanged.
type UpdatePlanRequest struct {
	Name          string   `json:"name" binding:"max=100"`
	Description   string   `json:"description" binding:"max=500"`
	MinAmount     *int64   `json:"min_amount" binding:"omitempty,gt=0"`
	MaxAmount     *int64   `json:"max_amount" binding:"omitempty,gt=0"`
	DurationDays  *int     `json:"duration_days" binding:"omitempty,gt=0"`
	ProfitPercent *float64 `json:"profit_percent" binding:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
}

// UpdateSettingRequest represents the request payload for updating a setting.
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required,max=500"`
}

// ListUsers returns all users
// @Summary     List users
// @Description List all registered users, newest first
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.User] "Users"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	users, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// SetUserActive enables or disables a user account
// @Summary     Enable/disable a user
// @Description Enable or disable a user account; disabled users cannot log in
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Param       request body SetUserActiveRequest true "Desired state"
// @Success     200 {object} models.User "Updated user"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users/{id}/active [put]
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.SetUserActive(userID, *req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "set_user_active", "user", userID, c.ClientIP(),
		map[string]interface{}{"is_active": *req.IsActive})

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListAllDeposits returns deposits across all users
// @Summary     List all deposits
// @Description List deposits across all users, optionally filtered by status
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Deposit] "Deposits"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/deposits [get]
func (h *AdminHandler) ListAllDeposits(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.DepositStatus
	if raw := c.Query("status"); raw != "" {
		s := models.DepositStatus(raw)
		status = &s
	}

	deposits, err := h.depositService.ListDeposits(status, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, deposits)
}

// ApproveDeposit approves a pending deposit
// @Summary     Approve a deposit
// @Description Credit the user's balance and pay referral commissions
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deposit ID"
// @Param       request body ReviewRequest false "Review note"
// @Success     200 {object} models.Deposit "Approved deposit"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "Deposit not found"
// @Failure     409 {object} ErrorResponse "Deposit already processed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/deposits/{id}/approve [post]
func (h *AdminHandler) ApproveDeposit(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	depositID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deposit, err := h.depositService.ApproveDeposit(adminID, depositID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "approve", "deposit", depositID, c.ClientIP(),
		map[string]interface{}{"amount": deposit.Amount, "user_id": deposit.UserID})

	c.JSON(http.StatusOK, gin.H{"deposit": deposit})
}

// RejectDeposit rejects a pending deposit
// @Summary     Reject a deposit
// @Description Mark a pending deposit as rejected without crediting anything
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deposit ID"
// @Param       request body ReviewRequest false "Review note"
// @Success     200 {object} models.Deposit "Rejected deposit"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "Deposit not found"
// @Failure     409 {object} ErrorResponse "Deposit already processed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/deposits/{id}/reject [post]
func (h *AdminHandler) RejectDeposit(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	depositID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deposit, err := h.depositService.RejectDeposit(adminID, depositID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "reject", "deposit", depositID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"deposit": deposit})
}

// ListAllWithdrawals returns withdrawals across all users
// @Summary     List all withdrawals
// @Description List withdrawals across all users, optionally filtered by status
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Withdrawal] "Withdrawals"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/withdrawals [get]
func (h *AdminHandler) ListAllWithdrawals(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.WithdrawalStatus
	if raw := c.Query("status"); raw != "" {
		s := models.WithdrawalStatus(raw)
		status = &s
	}

	withdrawals, err := h.withdrawalService.ListWithdrawals(status, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, withdrawals)
}

// ApproveWithdrawal approves a pending withdrawal
// @Summary     Approve a withdrawal
// @Description Mark a withdrawal as paid out; the amount was already held at request time
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Withdrawal ID"
// @Param       request body ReviewRequest false "Review note"
// @Success     200 {object} models.Withdrawal "Approved withdrawal"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "Withdrawal not found"
// @Failure     409 {object} ErrorResponse "Withdrawal already processed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/withdrawals/{id}/approve [post]
func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	withdrawalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	withdrawal, err := h.withdrawalService.ApproveWithdrawal(adminID, withdrawalID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "approve", "withdrawal", withdrawalID, c.ClientIP(),
		map[string]interface{}{"amount": withdrawal.Amount, "user_id": withdrawal.UserID})

	c.JSON(http.StatusOK, gin.H{"withdrawal": withdrawal})
}

// RejectWithdrawal rejects a pending withdrawal
// @Summary     Reject a withdrawal
// @Description Mark a pending withdrawal as rejected and refund the held amount
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Withdrawal ID"
// @Param       request body ReviewRequest false "Review note"
// @Success     200 {object} models.Withdrawal "Rejected withdrawal"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "Withdrawal not found"
// @Failure     409 {object} ErrorResponse "Withdrawal already processed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/withdrawals/{id}/reject [post]
func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	withdrawalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	withdrawal, err := h.withdrawalService.RejectWithdrawal(adminID, withdrawalID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "reject", "withdrawal", withdrawalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"withdrawal": withdrawal})
}

// ListAllPlans returns every plan including inactive ones
// @Summary     List all plans
// @Description List all plans, active or not
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Plan] "Plans"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/plans [get]
func (h *AdminHandler) ListAllPlans(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plans, err := h.planService.GetAllPlans(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// CreatePlan creates a new investment plan
// @Summary     Create a plan
// @Description Create a new investment plan open for purchase
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePlanRequest true "Plan details"
// @Success     201 {object} models.Plan "Created plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/plans [post]
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.planService.CreatePlan(req.Name, req.Description, req.MinAmount, req.MaxAmount, req.DurationDays, req.ProfitPercent)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "create", "plan", plan.ID, c.ClientIP(),
		map[string]interface{}{"name": plan.Name, "duration_days": plan.DurationDays, "profit_percent": plan.ProfitPercent})

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// UpdatePlan applies partial updates to a plan
// @Summary     Update a plan
// @Description Update plan fields; duration and profit cannot change once the plan has investments
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Plan ID"
// @Param       request body UpdatePlanRequest true "Fields to update"
// @Success     200 {object} models.Plan "Updated plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     409 {object} ErrorResponse "Plan has existing investments"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/plans/{id} [put]
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.planService.UpdatePlan(planID, req.Name, req.Description,
		req.MinAmount, req.MaxAmount, req.DurationDays, req.ProfitPercent, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "update", "plan", planID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// DeletePlan removes a plan without investments
// @Summary     Delete a plan
// @Description Delete a plan; plans with investments must be deactivated instead
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Plan ID"
// @Success     204 "Plan deleted"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     409 {object} ErrorResponse "Plan has existing investments"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/plans/{id} [delete]
func (h *AdminHandler) DeletePlan(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.planService.DeletePlan(planID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "delete", "plan", planID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetSettings returns all site settings
// @Summary     List settings
// @Description List all site settings: commission rates, withdrawal floor, support contact
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Setting "Settings"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetAll()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSetting changes a site setting
// @Summary     Update a setting
// @Description Create or update a site setting by key
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       key path string true "Setting key"
// @Param       request body UpdateSettingRequest true "New value"
// @Success     200 {object} models.Setting "Updated setting"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/settings/{key} [put]
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	key := c.Param("key")

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	setting, err := h.settingsService.Set(key, req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "update", "setting", setting.ID, c.ClientIP(),
		map[string]interface{}{"key": key, "value": req.Value})

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// GetStats returns platform-wide totals
// @Summary     Platform stats
// @Description Get platform-wide totals for the admin dashboard
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PlatformStats "Platform stats"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetPlatformStats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
