package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
	"smartgrow/internal/referral"
)

// settingsService handles site settings.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// Get returns the raw value for a setting key. Missing keys are an error:
// settings are seeded by migration and an absent row means the install is
// broken, not that a default should be guessed.
func (s *settingsService) Get(key string) (string, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.WithMessage(apperrors.ErrSettingNotFound, "Setting not found: "+key)
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return setting.Value, nil
}

// GetAll returns every setting row.
func (s *settingsService) GetAll() ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// Set creates or updates a setting.
func (s *settingsService) Set(key, value string) (*models.Setting, error) {
	if key == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Setting key is required")
	}

	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.Setting{Key: key, Value: value}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if err := s.db.Model(&setting).Update("value", value).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		setting.Value = value
	}
	return &setting, nil
}

// CommissionRates returns the per-level commission percentages.
func (s *settingsService) CommissionRates() ([referral.MaxLevel]float64, error) {
	var rates [referral.MaxLevel]float64
	keys := [referral.MaxLevel]string{
		models.SettingCommissionLevel1Percent,
		models.SettingCommissionLevel2Percent,
		models.SettingCommissionLevel3Percent,
	}
	for i, key := range keys {
		raw, err := s.Get(key)
		if err != nil {
			return rates, err
		}
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			return rates, apperrors.WithMessage(apperrors.ErrInvalidRecord, "Invalid commission rate for "+key)
		}
		rates[i] = rate
	}
	return rates, nil
}

// MinWithdrawalAmount returns the withdrawal floor in minor units.
func (s *settingsService) MinWithdrawalAmount() (int64, error) {
	raw, err := s.Get(models.SettingMinWithdrawalAmount)
	if err != nil {
		return 0, err
	}
	min, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || min < 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidRecord, "Invalid minimum withdrawal amount")
	}
	return min, nil
}
