package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/income"
	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
)

// investmentService handles investment purchase and daily-income collection.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// PurchasePlan buys a plan for the user. The invested amount is debited from
// the balance with a guarded update so a concurrent purchase cannot overdraw.
func (s *investmentService) PurchasePlan(userID, planID uint, amount int64, now time.Time) (*models.Investment, error) {
	var plan models.Plan
	if err := s.db.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !plan.IsActive {
		return nil, apperrors.ErrPlanInactive
	}
	if amount < plan.MinAmount || amount > plan.MaxAmount {
		return nil, apperrors.ErrAmountOutOfRange
	}

	endDate := now.Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
	investment := &models.Investment{
		UserID:    userID,
		PlanID:    planID,
		Amount:    amount,
		StartDate: now,
		EndDate:   &endDate,
		Status:    models.InvestmentStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional debit: succeeds only if the balance still covers the
		// amount at commit time.
		result := tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", userID, amount).
			UpdateColumn("balance", gorm.Expr("balance - ?", amount))
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrInsufficientBalance
		}

		if txErr := tx.Create(investment).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	investment.Plan = plan
	return investment, nil
}

// GetUserInvestments returns the user's investments enriched with collection
// window data computed at now.
func (s *investmentService) GetUserInvestments(userID uint, page pagination.PageRequest, now time.Time) (*pagination.PageResponse[InvestmentView], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Investment{}).Where("user_id = ?", userID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := s.db.Preload("Plan").Where("user_id = ?", userID).
		Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]InvestmentView, 0, len(investments))
	for i := range investments {
		view, err := buildView(&investments[i], now)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	result := pagination.NewPageResponse(views, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func buildView(inv *models.Investment, now time.Time) (*InvestmentView, error) {
	snap := income.FromInvestment(inv)
	days, err := income.AvailableDays(snap, now)
	if err != nil {
		return nil, err
	}
	collectable, err := income.CanCollect(snap, now)
	if err != nil {
		return nil, err
	}
	return &InvestmentView{
		Investment:      *inv,
		AvailableDays:   days,
		CanCollect:      collectable,
		ProgressPercent: income.ProgressPercent(inv.StartDate, inv.EndDate, now),
		DaysRemaining:   income.DaysRemaining(inv.EndDate, now),
		ProfitPerDay:    income.ProfitPerDay(inv.Amount, inv.Plan.ProfitPercent, inv.Plan.DurationDays),
	}, nil
}

// GetInvestmentByID returns an investment if it belongs to the user.
func (s *investmentService) GetInvestmentByID(userID, investmentID uint) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Preload("Plan").First(&investment, investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if investment.UserID != userID {
		return nil, apperrors.ErrInvestmentNotFound
	}
	return &investment, nil
}

// CollectIncome claims all available unclaimed days for an investment and
// credits the profit to the user's balance.
//
// The update is a compare-and-swap on total_days_collected: of two concurrent
// collections prepared from the same snapshot, only one matches the guard and
// commits; the other affects zero rows and fails with NO_COLLECTABLE_DAYS.
// This is what makes the operation safe to call with stale data and what
// keeps total_days_collected monotonic and bounded by the plan duration.
func (s *investmentService) CollectIncome(userID, investmentID uint, now time.Time) (*CollectionResult, error) {
	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	req, err := income.PrepareCollection(income.FromInvestment(investment), now)
	if err != nil {
		return nil, err
	}

	total := req.Total()
	newDays := investment.TotalDaysCollected + req.Days
	isFinal := newDays >= investment.Plan.DurationDays

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"total_days_collected":      newDays,
			"total_income_collected":    gorm.Expr("total_income_collected + ?", total),
			"last_income_collection_at": now,
		}
		if isFinal {
			updates["status"] = models.InvestmentStatusCompleted
		}

		result := tx.Model(&models.Investment{}).
			Where("id = ? AND status = ? AND total_days_collected = ?",
				investmentID, models.InvestmentStatusActive, investment.TotalDaysCollected).
			Updates(updates)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			// Lost a race with a concurrent collection; nothing was paid.
			return apperrors.ErrNoCollectableDays
		}

		if txErr := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("balance", gorm.Expr("balance + ?", total)).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		record := &models.IncomeCollection{
			InvestmentID: investmentID,
			UserID:       userID,
			Days:         req.Days,
			Amount:       total,
			CollectedAt:  now,
		}
		if txErr := tx.Create(record).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Select("balance").First(&user, userID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &CollectionResult{
		ProfitEarned:      total,
		DaysCollected:     req.Days,
		IsFinalCollection: isFinal,
		NewBalance:        user.Balance,
	}, nil
}

// GetCollections returns a paginated collection history for an investment.
func (s *investmentService) GetCollections(userID, investmentID uint, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeCollection], error) {
	if _, err := s.GetInvestmentByID(userID, investmentID); err != nil {
		return nil, err
	}

	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.IncomeCollection{}).Where("investment_id = ?", investmentID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var collections []models.IncomeCollection
	if err := base.Order("collected_at DESC").Scopes(pagination.Paginate(page)).Find(&collections).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(collections, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ExpireInvestments marks active investments whose end date has passed as
// completed. Run periodically by the maintenance job; returns how many rows
// were updated. Completion is terminal: any days left unclaimed at expiry can
// no longer be collected.
func (s *investmentService) ExpireInvestments(now time.Time) (int64, error) {
	result := s.db.Model(&models.Investment{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date <= ?", models.InvestmentStatusActive, now).
		Update("status", models.InvestmentStatusCompleted)
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
