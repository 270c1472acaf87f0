package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
)

// withdrawalService handles withdrawal requests and review.
type withdrawalService struct {
	db       *gorm.DB
	settings SettingsServicer
}

// NewWithdrawalService creates a new WithdrawalServicer.
func NewWithdrawalService(db *gorm.DB, settings SettingsServicer) WithdrawalServicer {
	return &withdrawalService{db: db, settings: settings}
}

// RequestWithdrawal creates a pending withdrawal and holds the amount. The
// debit is conditional on the balance still covering the amount, so two
// concurrent requests cannot both take the same funds.
func (s *withdrawalService) RequestWithdrawal(userID uint, amount int64, method models.PaymentMethod, accountDetails string) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}
	if accountDetails == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Account details are required")
	}

	min, err := s.settings.MinWithdrawalAmount()
	if err != nil {
		return nil, err
	}
	if amount < min {
		return nil, apperrors.ErrBelowMinWithdrawal
	}

	withdrawal := &models.Withdrawal{
		UserID:         userID,
		Amount:         amount,
		Method:         method,
		AccountDetails: accountDetails,
		Status:         models.WithdrawalStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", userID, amount).
			UpdateColumn("balance", gorm.Expr("balance - ?", amount))
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrInsufficientBalance
		}

		if txErr := tx.Create(withdrawal).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// GetUserWithdrawals returns a paginated withdrawal history for a user.
func (s *withdrawalService) GetUserWithdrawals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Withdrawal], error) {
	return s.list(s.db.Model(&models.Withdrawal{}).Where("user_id = ?", userID), page)
}

// ListWithdrawals returns withdrawals across all users, optionally filtered by status.
func (s *withdrawalService) ListWithdrawals(status *models.WithdrawalStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Withdrawal], error) {
	base := s.db.Model(&models.Withdrawal{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}
	return s.list(base, page)
}

func (s *withdrawalService) list(base *gorm.DB, page pagination.PageRequest) (*pagination.PageResponse[models.Withdrawal], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var withdrawals []models.Withdrawal
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&withdrawals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(withdrawals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *withdrawalService) getByID(withdrawalID uint) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	if err := s.db.First(&withdrawal, withdrawalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWithdrawalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &withdrawal, nil
}

// ApproveWithdrawal marks a pending withdrawal as paid out. The hold taken at
// request time is the payout, so no further balance change happens here.
func (s *withdrawalService) ApproveWithdrawal(adminID, withdrawalID uint, note string) (*models.Withdrawal, error) {
	withdrawal, err := s.getByID(withdrawalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := s.db.Model(&models.Withdrawal{}).
		Where("id = ? AND status = ?", withdrawalID, models.WithdrawalStatusPending).
		Updates(map[string]interface{}{
			"status":      models.WithdrawalStatusApproved,
			"reviewed_by": adminID,
			"reviewed_at": now,
			"review_note": note,
		})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrWithdrawalNotPending
	}

	withdrawal.Status = models.WithdrawalStatusApproved
	withdrawal.ReviewedBy = &adminID
	withdrawal.ReviewedAt = &now
	withdrawal.ReviewNote = note
	return withdrawal, nil
}

// RejectWithdrawal refunds the held amount and marks the request rejected,
// both in one transaction guarded on the pending status.
func (s *withdrawalService) RejectWithdrawal(adminID, withdrawalID uint, note string) (*models.Withdrawal, error) {
	withdrawal, err := s.getByID(withdrawalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.WithdrawalStatusPending).
			Updates(map[string]interface{}{
				"status":      models.WithdrawalStatusRejected,
				"reviewed_by": adminID,
				"reviewed_at": now,
				"review_note": note,
			})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrWithdrawalNotPending
		}

		if txErr := tx.Model(&models.User{}).Where("id = ?", withdrawal.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", withdrawal.Amount)).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	withdrawal.Status = models.WithdrawalStatusRejected
	withdrawal.ReviewedBy = &adminID
	withdrawal.ReviewedAt = &now
	withdrawal.ReviewNote = note
	return withdrawal, nil
}
