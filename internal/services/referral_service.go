package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
	"smartgrow/internal/referral"
)

// referralService handles referral trees and commission payouts.
type referralService struct {
	db       *gorm.DB
	settings SettingsServicer
}

// NewReferralService creates a new ReferralServicer.
func NewReferralService(db *gorm.DB, settings SettingsServicer) ReferralServicer {
	return &referralService{db: db, settings: settings}
}

// GetReferralStats returns level counts and earnings for a user's dashboard.
// Counts come from a 3-level traversal of referred-by edges; earnings from the
// commission ledger. Both computations live in the referral package.
func (s *referralService) GetReferralStats(userID uint, now time.Time) (*ReferralStats, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUserNotFound, err)
	}

	edges, err := s.loadEdges(userID)
	if err != nil {
		return nil, err
	}

	var commissions []models.Commission
	if err := s.db.Where("referrer_id = ?", userID).Find(&commissions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]referral.Entry, 0, len(commissions))
	for i := range commissions {
		entries = append(entries, referral.FromCommission(&commissions[i]))
	}

	earnings, err := referral.AggregateEarnings(entries, now)
	if err != nil {
		return nil, err
	}

	return &ReferralStats{
		ReferralCode: user.ReferralCode,
		Counts:       referral.CountByLevel(userID, edges),
		Earnings:     earnings,
	}, nil
}

// loadEdges fetches the referred-by edges reachable within MaxLevel hops below
// rootID, level by level. Loading per level keeps the query bounded instead of
// pulling the whole user table.
func (s *referralService) loadEdges(rootID uint) ([]referral.Edge, error) {
	var edges []referral.Edge
	frontier := []uint{rootID}

	for level := 0; level < referral.MaxLevel && len(frontier) > 0; level++ {
		type row struct {
			ID         uint
			ReferredBy uint
		}
		var rows []row
		if err := s.db.Model(&models.User{}).
			Select("id, referred_by").
			Where("referred_by IN ?", frontier).
			Scan(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		frontier = frontier[:0]
		for _, r := range rows {
			edges = append(edges, referral.Edge{UserID: r.ID, ReferrerID: r.ReferredBy})
			frontier = append(frontier, r.ID)
		}
	}

	return edges, nil
}

// GetUserCommissions returns a paginated commission ledger for a referrer.
func (s *referralService) GetUserCommissions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Commission], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Commission{}).Where("referrer_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var commissions []models.Commission
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&commissions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(commissions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// PayCommissions walks up the referred-by chain from the depositing user and
// credits each ancestor their level's percentage of the deposit, writing a
// completed ledger row per payout. Runs inside the deposit-approval
// transaction so the deposit credit and all commissions commit together.
// A visited set stops corrupt chains that cycle.
func (s *referralService) PayCommissions(tx *gorm.DB, deposit *models.Deposit) error {
	rates, err := s.settings.CommissionRates()
	if err != nil {
		return err
	}

	var source models.User
	if err := tx.First(&source, deposit.UserID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	visited := map[uint]bool{source.ID: true}
	currentRef := source.ReferredBy

	for level := 1; level <= referral.MaxLevel && currentRef != nil; level++ {
		if visited[*currentRef] {
			break
		}
		visited[*currentRef] = true

		var referrer models.User
		if err := tx.First(&referrer, *currentRef).Error; err != nil {
			// Dangling referred_by edge: stop walking, pay nothing further.
			break
		}

		amount := int64(math.Round(float64(deposit.Amount) * rates[level-1] / 100))
		if amount > 0 {
			commission := &models.Commission{
				ReferrerID:   referrer.ID,
				SourceUserID: source.ID,
				DepositID:    deposit.ID,
				Level:        level,
				Amount:       amount,
				Status:       models.CommissionStatusCompleted,
			}
			if err := tx.Create(commission).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := tx.Model(&models.User{}).Where("id = ?", referrer.ID).
				UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		currentRef = referrer.ReferredBy
	}

	return nil
}
