package services

import (
	"testing"
	"time"

	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
	"smartgrow/internal/testutil"
)

func TestPurchasePlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewInvestmentService(db)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("successful purchase debits balance", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.SetBalance(t, db, user.ID, 50000)
		plan := testutil.CreateTestPlan(t, db)

		investment, err := service.PurchasePlan(user.ID, plan.ID, 10000, now)
		testutil.AssertNoError(t, err)

		if investment.Status != models.InvestmentStatusActive {
			t.Errorf("expected status active, got %s", investment.Status)
		}
		if !investment.StartDate.Equal(now) {
			t.Errorf("expected start date %v, got %v", now, investment.StartDate)
		}
		wantEnd := now.Add(30 * 24 * time.Hour)
		if investment.EndDate == nil || !investment.EndDate.Equal(wantEnd) {
			t.Errorf("expected end date %v, got %v", wantEnd, investment.EndDate)
		}

		var fresh models.User
		testutil.AssertNoError(t, db.First(&fresh, user.ID).Error)
		if fresh.Balance != 40000 {
			t.Errorf("expected balance 40000 after purchase, got %d", fresh.Balance)
		}
	})

	t.Run("insufficient balance", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.SetBalance(t, db, user.ID, 5000)
		plan := testutil.CreateTestPlan(t, db)

		_, err := service.PurchasePlan(user.ID, plan.ID, 10000, now)
		testutil.AssertAppError(t, err, "INSUFFICIENT_BALANCE")

		var fresh models.User
		testutil.AssertNoError(t, db.First(&fresh, user.ID).Error)
		if fresh.Balance != 5000 {
			t.Errorf("balance changed on failed purchase: %d", fresh.Balance)
		}
	})

	t.Run("amount below plan minimum", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.SetBalance(t, db, user.ID, 50000)
		plan := testutil.CreateTestPlan(t, db)

		_, err := service.PurchasePlan(user.ID, plan.ID, 500, now)
		testutil.AssertAppError(t, err, "AMOUNT_OUT_OF_RANGE")
	})

	t.Run("amount above plan maximum", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.SetBalance(t, db, user.ID, 500000)
		plan := testutil.CreateTestPlan(t, db)

		_, err := service.PurchasePlan(user.ID, plan.ID, 200000, now)
		testutil.AssertAppError(t, err, "AMOUNT_OUT_OF_RANGE")
	})

	t.Run("inactive plan", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.SetBalance(t, db, user.ID, 50000)
		plan := testutil.CreateTestPlan(t, db)
		testutil.AssertNoError(t, db.Model(plan).Update("is_active", false).Error)

		_, err := service.PurchasePlan(user.ID, plan.ID, 10000, now)
		testutil.AssertAppError(t, err, "PLAN_INACTIVE")
	})

	t.Run("plan not found", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := service.PurchasePlan(user.ID, 99999, 10000, now)
		testutil.AssertAppError(t, err, "PLAN_NOT_FOUND")
	})
}

func TestCollectIncome(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewInvestmentService(db)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("collects elapsed days and credits balance", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		investment := testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 10000, start)

		// 10000 at 30% over 30 days pays 100 per day.
		now := start.Add(3 * 24 * time.Hour)
		result, err := service.CollectIncome(user.ID, investment.ID, now)
		testutil.AssertNoError(t, err)

		if result.DaysCollected != 3 {
			t.Errorf("expected 3 days collected, got %d", result.DaysCollected)
		}
		if result.ProfitEarned != 300 {
			t.Errorf("expected profit 300, got %d", result.ProfitEarned)
		}
		if result.IsFinalCollection {
			t.Error("collection at day 3 of 30 should not be final")
		}
		if result.NewBalance != 300 {
			t.Errorf("expected new balance 300, got %d", result.NewBalance)
		}

		var fresh models.Investment
		testutil.AssertNoError(t, db.First(&fresh, investment.ID).Error)
		if fresh.TotalDaysCollected != 3 {
			t.Errorf("expected total days collected 3, got %d", fresh.TotalDaysCollected)
		}
		if fresh.TotalIncomeCollected != 300 {
			t.Errorf("expected total income 300, got %d", fresh.TotalIncomeCollected)
		}
		if fresh.LastIncomeCollectionAt == nil || !fresh.LastIncomeCollectionAt.Equal(now) {
			t.Errorf("expected last collection at %v, got %v", now, fresh.LastIncomeCollectionAt)
		}
	})

	t.Run("immediate re-collection finds nothing", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		investment := testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 10000, start)

		now := start.Add(2 * 24 * time.Hour)
		_, err := service.CollectIncome(user.ID, investment.ID, now)
		testutil.AssertNoError(t, err)

		_, err = service.CollectIncome(user.ID, investment.ID, now)
		testutil.AssertAppError(t, err, "NO_COLLECTABLE_DAYS")
	})

	t.Run("window anchors on last collection", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		investment := testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 10000, start)

		_, err := service.CollectIncome(user.ID, investment.ID, start.Add(3*24*time.Hour))
		testutil.AssertNoError(t, err)

		// Two more full days since the last collection.
		result, err := service.CollectIncome(user.ID, investment.ID, start.Add(5*24*time.Hour))
		testutil.AssertNoError(t, err)
		if result.DaysCollected != 2 {
			t.Errorf("expected 2 days collected, got %d", result.DaysCollected)
		}

		var fresh models.Investment
		testutil.AssertNoError(t, db.First(&fresh, investment.ID).Error)
		if fresh.TotalDaysCollected != 5 {
			t.Errorf("expected total days collected 5, got %d", fresh.TotalDaysCollected)
		}
		if fresh.TotalIncomeCollected != 500 {
			t.Errorf("expected total income 500, got %d", fresh.TotalIncomeCollected)
		}
	})

	t.Run("collection past term is capped and completes the investment", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		investment := testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 10000, start)

		result, err := service.CollectIncome(user.ID, investment.ID, start.Add(45*24*time.Hour))
		testutil.AssertNoError(t, err)

		if result.DaysCollected != 30 {
			t.Errorf("expected collection capped at 30 days, got %d", result.DaysCollected)
		}
		if result.ProfitEarned != 3000 {
			t.Errorf("expected profit 3000, got %d", result.ProfitEarned)
		}
		if !result.IsFinalCollection {
			t.Error("expected final collection")
		}

		var fresh models.Investment
		testutil.AssertNoError(t, db.First(&fresh, investment.ID).Error)
		if fresh.Status != models.InvestmentStatusCompleted {
			t.Errorf("expected completed status, got %s", fresh.Status)
		}
	})

	t.Run("completed investment rejects collection", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		investment := testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 10000, start)

		_, err := service.CollectIncome(user.ID, investment.ID, start.Add(31*24*time.Hour))
		testutil.AssertNoError(t, err)

		_, err = service.CollectIncome(user.ID, investment.ID, start.Add(40*24*time.Hour))
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_ACTIVE")
	})

	t.Run("writes a collection history row", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		investment := testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 10000, start)

		now := start.Add(24 * time.Hour)
		_, err := service.CollectIncome(user.ID, investment.ID, now)
		testutil.AssertNoError(t, err)

		page, err := service.GetCollections(user.ID, investment.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 {
			t.Fatalf("expected 1 collection record, got %d", len(page.Data))
		}
		record := page.Data[0]
		if record.Days != 1 || record.Amount != 100 {
			t.Errorf("expected 1 day / 100, got %d days / %d", record.Days, record.Amount)
		}
		if !record.CollectedAt.Equal(now) {
			t.Errorf("expected collected at %v, got %v", now, record.CollectedAt)
		}
	})

	t.Run("cannot collect another user's investment", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		investment := testutil.CreateTestInvestment(t, db, owner.ID, plan.ID, 10000, start)

		_, err := service.CollectIncome(other.ID, investment.ID, start.Add(24*time.Hour))
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
	})
}

func TestGetUserInvestments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewInvestmentService(db)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	user := testutil.CreateTestUser(t, db)
	plan := testutil.CreateTestPlan(t, db)
	testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 10000, start)

	t.Run("views carry derived collection fields", func(t *testing.T) {
		now := start.Add(3*24*time.Hour + time.Hour)
		page, err := service.GetUserInvestments(user.ID, pagination.PageRequest{}, now)
		testutil.AssertNoError(t, err)

		if len(page.Data) != 1 {
			t.Fatalf("expected 1 investment, got %d", len(page.Data))
		}
		view := page.Data[0]
		if view.AvailableDays != 3 {
			t.Errorf("expected 3 available days, got %d", view.AvailableDays)
		}
		if !view.CanCollect {
			t.Error("expected investment to be collectable")
		}
		if view.ProfitPerDay != 100 {
			t.Errorf("expected profit per day 100, got %d", view.ProfitPerDay)
		}
		if view.ProgressPercent != 10 {
			t.Errorf("expected 10%% progress, got %d", view.ProgressPercent)
		}
		if view.DaysRemaining != 27 {
			t.Errorf("expected 27 days remaining, got %d", view.DaysRemaining)
		}
	})

	t.Run("does not list other users' investments", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		page, err := service.GetUserInvestments(other.ID, pagination.PageRequest{}, start)
		testutil.AssertNoError(t, err)
		if len(page.Data) != 0 {
			t.Errorf("expected no investments, got %d", len(page.Data))
		}
	})
}

func TestExpireInvestments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewInvestmentService(db)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	user := testutil.CreateTestUser(t, db)
	shortPlan := testutil.CreateTestPlanWith(t, db, 1000, 100000, 10, 20)
	longPlan := testutil.CreateTestPlan(t, db)

	expired := testutil.CreateTestInvestment(t, db, user.ID, shortPlan.ID, 5000, start)
	running := testutil.CreateTestInvestment(t, db, user.ID, longPlan.ID, 5000, start)

	now := start.Add(11 * 24 * time.Hour)
	count, err := service.ExpireInvestments(now)
	testutil.AssertNoError(t, err)
	if count != 1 {
		t.Errorf("expected 1 expired investment, got %d", count)
	}

	var fresh models.Investment
	testutil.AssertNoError(t, db.First(&fresh, expired.ID).Error)
	if fresh.Status != models.InvestmentStatusCompleted {
		t.Errorf("expected expired investment completed, got %s", fresh.Status)
	}

	fresh = models.Investment{}
	testutil.AssertNoError(t, db.First(&fresh, running.ID).Error)
	if fresh.Status != models.InvestmentStatusActive {
		t.Errorf("expected running investment still active, got %s", fresh.Status)
	}
}
