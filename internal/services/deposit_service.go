package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
)

// depositService handles deposit submission and review.
type depositService struct {
	db       *gorm.DB
	referral ReferralServicer
}

// NewDepositService creates a new DepositServicer.
func NewDepositService(db *gorm.DB, referralService ReferralServicer) DepositServicer {
	return &depositService{db: db, referral: referralService}
}

// CreateDeposit records a pending deposit. The balance is untouched until an
// admin verifies the transfer and approves.
func (s *depositService) CreateDeposit(userID uint, amount int64, method models.PaymentMethod, senderDetails string) (*models.Deposit, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}

	deposit := &models.Deposit{
		UserID:        userID,
		Amount:        amount,
		Method:        method,
		Reference:     uuid.New().String(),
		SenderDetails: senderDetails,
		Status:        models.DepositStatusPending,
	}

	if err := s.db.Create(deposit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return deposit, nil
}

// GetUserDeposits returns a paginated deposit history for a user.
func (s *depositService) GetUserDeposits(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Deposit], error) {
	return s.list(s.db.Model(&models.Deposit{}).Where("user_id = ?", userID), page)
}

// ListDeposits returns deposits across all users, optionally filtered by status.
func (s *depositService) ListDeposits(status *models.DepositStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Deposit], error) {
	base := s.db.Model(&models.Deposit{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}
	return s.list(base, page)
}

func (s *depositService) list(base *gorm.DB, page pagination.PageRequest) (*pagination.PageResponse[models.Deposit], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var deposits []models.Deposit
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&deposits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(deposits, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *depositService) getByID(depositID uint) (*models.Deposit, error) {
	var deposit models.Deposit
	if err := s.db.First(&deposit, depositID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepositNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &deposit, nil
}

// ApproveDeposit credits the user's balance and pays referral commissions in
// one transaction. The status flip is guarded on pending so a deposit can only
// ever be approved once, no matter how many admins click at once.
func (s *depositService) ApproveDeposit(adminID, depositID uint, note string) (*models.Deposit, error) {
	deposit, err := s.getByID(depositID)
	if err != nil {
		return nil, err
	}
	if deposit.Status != models.DepositStatusPending {
		return nil, apperrors.ErrDepositNotPending
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Deposit{}).
			Where("id = ? AND status = ?", depositID, models.DepositStatusPending).
			Updates(map[string]interface{}{
				"status":      models.DepositStatusApproved,
				"reviewed_by": adminID,
				"reviewed_at": now,
				"review_note": note,
			})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrDepositNotPending
		}

		if txErr := tx.Model(&models.User{}).Where("id = ?", deposit.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", deposit.Amount)).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return s.referral.PayCommissions(tx, deposit)
	})
	if err != nil {
		return nil, err
	}

	deposit.Status = models.DepositStatusApproved
	deposit.ReviewedBy = &adminID
	deposit.ReviewedAt = &now
	deposit.ReviewNote = note
	return deposit, nil
}

// RejectDeposit marks a pending deposit as rejected. No balance changes.
func (s *depositService) RejectDeposit(adminID, depositID uint, note string) (*models.Deposit, error) {
	deposit, err := s.getByID(depositID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := s.db.Model(&models.Deposit{}).
		Where("id = ? AND status = ?", depositID, models.DepositStatusPending).
		Updates(map[string]interface{}{
			"status":      models.DepositStatusRejected,
			"reviewed_by": adminID,
			"reviewed_at": now,
			"review_note": note,
		})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrDepositNotPending
	}

	deposit.Status = models.DepositStatusRejected
	deposit.ReviewedBy = &adminID
	deposit.ReviewedAt = &now
	deposit.ReviewNote = note
	return deposit, nil
}
