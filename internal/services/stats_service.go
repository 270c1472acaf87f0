package services

import (
	"gorm.io/gorm"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
)

// statsService computes admin dashboard aggregates.
type statsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db}
}

// GetPlatformStats returns platform-wide totals for the admin dashboard.
func (s *statsService) GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Investment{}).
		Where("status = ?", models.InvestmentStatusActive).
		Count(&stats.ActiveInvestments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type sumRow struct{ Total int64 }
	var row sumRow
	if err := s.db.Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	stats.TotalInvested = row.Total

	if err := s.db.Model(&models.Deposit{}).
		Where("status = ?", models.DepositStatusPending).
		Count(&stats.PendingDeposits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Withdrawal{}).
		Where("status = ?", models.WithdrawalStatusPending).
		Count(&stats.PendingWithdrawals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&models.Commission{}).
		Where("status = ?", models.CommissionStatusCompleted).
		Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	stats.TotalCommissions = row.Total

	return stats, nil
}
