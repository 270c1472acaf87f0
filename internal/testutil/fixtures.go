package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"smartgrow/internal/models"
	"smartgrow/internal/refcode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// SeedDefaultSettings inserts the settings rows migrations normally seed.
func SeedDefaultSettings(t *testing.T, db *gorm.DB) {
	t.Helper()

	defaults := map[string]string{
		models.SettingCommissionLevel1Percent: "10",
		models.SettingCommissionLevel2Percent: "5",
		models.SettingCommissionLevel3Percent: "2",
		models.SettingMinWithdrawalAmount:     "500",
		models.SettingSupportContact:          "support@smartgrow.test",
	}
	for key, value := range defaults {
		if err := db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			t.Fatalf("failed to seed setting %s: %v", key, err)
		}
	}
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		Password:     string(hash),
		Role:         models.RoleUser,
		ReferralCode: refcode.New(),
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestReferredUser creates a user referred by the given referrer.
func CreateTestReferredUser(t *testing.T, db *gorm.DB, referrerID uint) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("referred_by", referrerID).Error; err != nil {
		t.Fatalf("failed to link referred user: %v", err)
	}
	user.ReferredBy = &referrerID
	return user
}

// CreateTestAdmin creates a user with the admin role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote test admin: %v", err)
	}
	user.Role = models.RoleAdmin
	return user
}

// SetBalance sets a user's balance directly.
func SetBalance(t *testing.T, db *gorm.DB, userID uint, balance int64) {
	t.Helper()

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("balance", balance).Error; err != nil {
		t.Fatalf("failed to set balance: %v", err)
	}
}

// CreateTestPlan creates an active plan paying 30% over 30 days.
func CreateTestPlan(t *testing.T, db *gorm.DB) *models.Plan {
	t.Helper()
	return CreateTestPlanWith(t, db, 1000, 100000, 30, 30)
}

// CreateTestPlanWith creates an active plan with the given terms.
func CreateTestPlanWith(t *testing.T, db *gorm.DB, minAmount, maxAmount int64, durationDays int, profitPercent float64) *models.Plan {
	t.Helper()

	plan := &models.Plan{
		Name:          fmt.Sprintf("Test Plan %d", nextID()),
		MinAmount:     minAmount,
		MaxAmount:     maxAmount,
		DurationDays:  durationDays,
		ProfitPercent: profitPercent,
		IsActive:      true,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// CreateTestInvestment creates an active investment in the given plan
// starting at startDate.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID, planID uint, amount int64, startDate time.Time) *models.Investment {
	t.Helper()

	var plan models.Plan
	if err := db.First(&plan, planID).Error; err != nil {
		t.Fatalf("failed to load plan for investment fixture: %v", err)
	}

	endDate := startDate.Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
	investment := &models.Investment{
		UserID:    userID,
		PlanID:    planID,
		Amount:    amount,
		StartDate: startDate,
		EndDate:   &endDate,
		Status:    models.InvestmentStatusActive,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	investment.Plan = plan
	return investment
}

// CreateTestDeposit creates a pending deposit for a user.
func CreateTestDeposit(t *testing.T, db *gorm.DB, userID uint, amount int64) *models.Deposit {
	t.Helper()

	deposit := &models.Deposit{
		UserID:    userID,
		Amount:    amount,
		Method:    models.PaymentMethodEasyPaisa,
		Reference: fmt.Sprintf("ref-%d", nextID()),
		Status:    models.DepositStatusPending,
	}
	if err := db.Create(deposit).Error; err != nil {
		t.Fatalf("failed to create test deposit: %v", err)
	}
	return deposit
}

// CreateTestCommission creates a commission ledger entry.
func CreateTestCommission(t *testing.T, db *gorm.DB, referrerID, sourceUserID uint, level int, amount int64, status models.CommissionStatus) *models.Commission {
	t.Helper()

	commission := &models.Commission{
		ReferrerID:   referrerID,
		SourceUserID: sourceUserID,
		DepositID:    uint(nextID()),
		Level:        level,
		Amount:       amount,
		Status:       status,
	}
	if err := db.Create(commission).Error; err != nil {
		t.Fatalf("failed to create test commission: %v", err)
	}
	return commission
}
