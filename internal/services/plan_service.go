package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
)

// planService handles plan-related business logic.
type planService struct {
	db *gorm.DB
}

// NewPlanService creates a new PlanServicer.
func NewPlanService(db *gorm.DB) PlanServicer {
	return &planService{db: db}
}

// CreatePlan creates a new investment plan.
func (s *planService) CreatePlan(name, description string, minAmount, maxAmount int64, durationDays int, profitPercent float64) (*models.Plan, error) {
	if minAmount <= 0 || maxAmount < minAmount {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid amount range")
	}
	if durationDays <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Duration must be positive")
	}
	if profitPercent < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Profit percent must not be negative")
	}

	plan := &models.Plan{
		Name:          name,
		Description:   description,
		MinAmount:     minAmount,
		MaxAmount:     maxAmount,
		DurationDays:  durationDays,
		ProfitPercent: profitPercent,
		IsActive:      true,
	}

	if err := s.db.Create(plan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plan, nil
}

// GetActivePlans returns a paginated list of plans open for purchase.
func (s *planService) GetActivePlans(page pagination.PageRequest) (*pagination.PageResponse[models.Plan], error) {
	return s.listPlans(s.db.Model(&models.Plan{}).Where("is_active = ?", true), page)
}

// GetAllPlans returns a paginated list of all plans, active or not.
func (s *planService) GetAllPlans(page pagination.PageRequest) (*pagination.PageResponse[models.Plan], error) {
	return s.listPlans(s.db.Model(&models.Plan{}), page)
}

func (s *planService) listPlans(base *gorm.DB, page pagination.PageRequest) (*pagination.PageResponse[models.Plan], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var plans []models.Plan
	if err := base.Order("min_amount ASC").Scopes(pagination.Paginate(page)).Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(plans, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPlanByID returns a plan by ID.
func (s *planService) GetPlanByID(planID uint) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

// UpdatePlan applies partial updates to a plan. Duration and profit changes
// only affect future purchases; existing investments keep the terms they were
// bought under because the window calculation reads the live plan row, so
// those two fields are rejected once the plan has investments.
func (s *planService) UpdatePlan(planID uint, name, description string, minAmount, maxAmount *int64, durationDays *int, profitPercent *float64, isActive *bool) (*models.Plan, error) {
	plan, err := s.GetPlanByID(planID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if minAmount != nil {
		updates["min_amount"] = *minAmount
	}
	if maxAmount != nil {
		updates["max_amount"] = *maxAmount
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}

	if durationDays != nil || profitPercent != nil {
		var invCount int64
		if err := s.db.Model(&models.Investment{}).Where("plan_id = ?", planID).Count(&invCount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if invCount > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrPlanInUse, "Cannot change terms of a plan with existing investments")
		}
		if durationDays != nil {
			if *durationDays <= 0 {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Duration must be positive")
			}
			updates["duration_days"] = *durationDays
		}
		if profitPercent != nil {
			if *profitPercent < 0 {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Profit percent must not be negative")
			}
			updates["profit_percent"] = *profitPercent
		}
	}

	if len(updates) == 0 {
		return plan, nil
	}

	if err := s.db.Model(plan).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plan, nil
}

// DeletePlan soft-deletes a plan with no investments. Plans that have been
// purchased are deactivated instead so investment history keeps resolving.
func (s *planService) DeletePlan(planID uint) error {
	plan, err := s.GetPlanByID(planID)
	if err != nil {
		return err
	}

	var invCount int64
	if err := s.db.Model(&models.Investment{}).Where("plan_id = ?", planID).Count(&invCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if invCount > 0 {
		return apperrors.ErrPlanInUse
	}

	if err := s.db.Delete(plan).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
