package services

import (
	"testing"
	"time"

	"smartgrow/internal/pagination"
	"smartgrow/internal/testutil"
)

func TestCreatePlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewPlanService(db)

	t.Run("creates an active plan", func(t *testing.T) {
		plan, err := service.CreatePlan("Starter", "Entry plan", 1000, 50000, 30, 30)
		testutil.AssertNoError(t, err)

		if !plan.IsActive {
			t.Error("expected new plan to be active")
		}
		if plan.DurationDays != 30 || plan.ProfitPercent != 30 {
			t.Errorf("unexpected terms: %d days at %.1f%%", plan.DurationDays, plan.ProfitPercent)
		}
	})

	t.Run("rejects invalid terms", func(t *testing.T) {
		cases := []struct {
			name          string
			minAmount     int64
			maxAmount     int64
			durationDays  int
			profitPercent float64
		}{
			{"zero duration", 1000, 50000, 0, 30},
			{"negative percent", 1000, 50000, 30, -5},
			{"min above max", 50000, 1000, 30, 30},
			{"non-positive min", 0, 50000, 30, 30},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := service.CreatePlan("Bad", "", tc.minAmount, tc.maxAmount, tc.durationDays, tc.profitPercent)
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}
	})
}

func TestGetPlans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewPlanService(db)

	active := testutil.CreateTestPlan(t, db)
	inactive := testutil.CreateTestPlan(t, db)
	testutil.AssertNoError(t, db.Model(inactive).Update("is_active", false).Error)

	t.Run("active listing hides inactive plans", func(t *testing.T) {
		page, err := service.GetActivePlans(pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Fatalf("expected 1 active plan, got %d", page.TotalItems)
		}
		if page.Data[0].ID != active.ID {
			t.Errorf("expected plan %d, got %d", active.ID, page.Data[0].ID)
		}
	})

	t.Run("admin listing shows everything", func(t *testing.T) {
		page, err := service.GetAllPlans(pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected 2 plans, got %d", page.TotalItems)
		}
	})

	t.Run("plan not found", func(t *testing.T) {
		_, err := service.GetPlanByID(99999)
		testutil.AssertAppError(t, err, "PLAN_NOT_FOUND")
	})
}

func TestUpdatePlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewPlanService(db)

	t.Run("partial update", func(t *testing.T) {
		plan := testutil.CreateTestPlan(t, db)

		newMin := int64(2000)
		inactive := false
		updated, err := service.UpdatePlan(plan.ID, "Renamed", "", &newMin, nil, nil, nil, &inactive)
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed" {
			t.Errorf("expected renamed plan, got %s", updated.Name)
		}
		if updated.MinAmount != 2000 {
			t.Errorf("expected min 2000, got %d", updated.MinAmount)
		}
		if updated.IsActive {
			t.Error("expected plan deactivated")
		}
		if updated.MaxAmount != plan.MaxAmount {
			t.Errorf("untouched field changed: max %d", updated.MaxAmount)
		}
	})

	t.Run("terms are frozen once invested", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 5000, time.Now())

		days := 60
		_, err := service.UpdatePlan(plan.ID, "", "", nil, nil, &days, nil, nil)
		testutil.AssertAppError(t, err, "PLAN_IN_USE")

		percent := 50.0
		_, err = service.UpdatePlan(plan.ID, "", "", nil, nil, nil, &percent, nil)
		testutil.AssertAppError(t, err, "PLAN_IN_USE")
	})
}

func TestDeletePlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewPlanService(db)

	t.Run("deletes unused plan", func(t *testing.T) {
		plan := testutil.CreateTestPlan(t, db)
		testutil.AssertNoError(t, service.DeletePlan(plan.ID))

		_, err := service.GetPlanByID(plan.ID)
		testutil.AssertAppError(t, err, "PLAN_NOT_FOUND")
	})

	t.Run("refuses to delete a plan with investments", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		plan := testutil.CreateTestPlan(t, db)
		testutil.CreateTestInvestment(t, db, user.ID, plan.ID, 5000, time.Now())

		err := service.DeletePlan(plan.ID)
		testutil.AssertAppError(t, err, "PLAN_IN_USE")
	})
}
