package services

import (
	"testing"
	"time"

	"smartgrow/internal/models"
	"smartgrow/internal/pagination"
	"smartgrow/internal/testutil"
)

func TestGetReferralStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewReferralService(db, NewSettingsService(db))
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	t.Run("counts referrals per level", func(t *testing.T) {
		root := testutil.CreateTestUser(t, db)
		l1a := testutil.CreateTestReferredUser(t, db, root.ID)
		l1b := testutil.CreateTestReferredUser(t, db, root.ID)
		l2 := testutil.CreateTestReferredUser(t, db, l1a.ID)
		l3 := testutil.CreateTestReferredUser(t, db, l2.ID)
		// Level 4 is outside the program and must not be counted.
		testutil.CreateTestReferredUser(t, db, l3.ID)
		_ = l1b

		stats, err := service.GetReferralStats(root.ID, now)
		testutil.AssertNoError(t, err)

		if stats.ReferralCode != root.ReferralCode {
			t.Errorf("expected referral code %s, got %s", root.ReferralCode, stats.ReferralCode)
		}
		if stats.Counts.Level1 != 2 || stats.Counts.Level2 != 1 || stats.Counts.Level3 != 1 {
			t.Errorf("expected counts 2/1/1, got %d/%d/%d",
				stats.Counts.Level1, stats.Counts.Level2, stats.Counts.Level3)
		}
		if stats.Counts.Total() != 4 {
			t.Errorf("expected total 4, got %d", stats.Counts.Total())
		}
	})

	t.Run("aggregates earnings with UTC day buckets", func(t *testing.T) {
		root := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestReferredUser(t, db, root.ID)

		today := testutil.CreateTestCommission(t, db, root.ID, source.ID, 1, 1000, models.CommissionStatusCompleted)
		yesterday := testutil.CreateTestCommission(t, db, root.ID, source.ID, 1, 700, models.CommissionStatusCompleted)
		older := testutil.CreateTestCommission(t, db, root.ID, source.ID, 2, 300, models.CommissionStatusCompleted)
		pending := testutil.CreateTestCommission(t, db, root.ID, source.ID, 1, 9999, models.CommissionStatusPending)

		setCreatedAt := func(id uint, at time.Time) {
			testutil.AssertNoError(t, db.Model(&models.Commission{}).
				Where("id = ?", id).UpdateColumn("created_at", at).Error)
		}
		setCreatedAt(today.ID, time.Date(2025, 6, 10, 0, 0, 1, 0, time.UTC))
		setCreatedAt(yesterday.ID, time.Date(2025, 6, 9, 23, 59, 59, 0, time.UTC))
		setCreatedAt(older.ID, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		setCreatedAt(pending.ID, time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC))

		stats, err := service.GetReferralStats(root.ID, now)
		testutil.AssertNoError(t, err)

		earnings := stats.Earnings
		if earnings.Total != 2000 {
			t.Errorf("expected total 2000 excluding pending, got %d", earnings.Total)
		}
		if earnings.Today != 1000 {
			t.Errorf("expected today 1000, got %d", earnings.Today)
		}
		if earnings.Yesterday != 700 {
			t.Errorf("expected yesterday 700, got %d", earnings.Yesterday)
		}
		if earnings.ByLevel[1] != 1700 || earnings.ByLevel[2] != 300 {
			t.Errorf("expected by-level 1700/300, got %d/%d", earnings.ByLevel[1], earnings.ByLevel[2])
		}
	})

	t.Run("empty network", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		stats, err := service.GetReferralStats(user.ID, now)
		testutil.AssertNoError(t, err)
		if stats.Counts.Total() != 0 {
			t.Errorf("expected no referrals, got %d", stats.Counts.Total())
		}
		if stats.Earnings.Total != 0 {
			t.Errorf("expected no earnings, got %d", stats.Earnings.Total)
		}
	})
}

func TestGetUserCommissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewReferralService(db, NewSettingsService(db))

	root := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	source := testutil.CreateTestReferredUser(t, db, root.ID)

	testutil.CreateTestCommission(t, db, root.ID, source.ID, 1, 1000, models.CommissionStatusCompleted)
	testutil.CreateTestCommission(t, db, root.ID, source.ID, 2, 500, models.CommissionStatusCompleted)
	testutil.CreateTestCommission(t, db, other.ID, source.ID, 1, 777, models.CommissionStatusCompleted)

	page, err := service.GetUserCommissions(root.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 {
		t.Errorf("expected 2 commissions for root, got %d", page.TotalItems)
	}
	for _, c := range page.Data {
		if c.ReferrerID != root.ID {
			t.Errorf("expected commissions scoped to referrer %d, got %d", root.ID, c.ReferrerID)
		}
	}
}

func TestPayCommissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewReferralService(db, NewSettingsService(db))

	t.Run("pays each ancestor their level rate", func(t *testing.T) {
		l3 := testutil.CreateTestUser(t, db)
		l2 := testutil.CreateTestReferredUser(t, db, l3.ID)
		l1 := testutil.CreateTestReferredUser(t, db, l2.ID)
		depositor := testutil.CreateTestReferredUser(t, db, l1.ID)

		deposit := testutil.CreateTestDeposit(t, db, depositor.ID, 10000)
		testutil.AssertNoError(t, service.PayCommissions(db, deposit))

		wantBalances := map[uint]int64{l1.ID: 1000, l2.ID: 500, l3.ID: 200}
		for id, want := range wantBalances {
			var u models.User
			testutil.AssertNoError(t, db.First(&u, id).Error)
			if u.Balance != want {
				t.Errorf("user %d: expected balance %d, got %d", id, want, u.Balance)
			}
		}

		var count int64
		testutil.AssertNoError(t, db.Model(&models.Commission{}).
			Where("deposit_id = ?", deposit.ID).Count(&count).Error)
		if count != 3 {
			t.Errorf("expected 3 commission rows, got %d", count)
		}
	})

	t.Run("user without referrer pays nobody", func(t *testing.T) {
		depositor := testutil.CreateTestUser(t, db)
		deposit := testutil.CreateTestDeposit(t, db, depositor.ID, 10000)
		testutil.AssertNoError(t, service.PayCommissions(db, deposit))

		var count int64
		testutil.AssertNoError(t, db.Model(&models.Commission{}).
			Where("deposit_id = ?", deposit.ID).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected no commissions, got %d", count)
		}
	})

	t.Run("cyclic chain terminates", func(t *testing.T) {
		a := testutil.CreateTestUser(t, db)
		b := testutil.CreateTestReferredUser(t, db, a.ID)
		// Corrupt the data so a is referred by b, forming a 2-cycle.
		testutil.AssertNoError(t, db.Model(&models.User{}).
			Where("id = ?", a.ID).UpdateColumn("referred_by", b.ID).Error)

		deposit := testutil.CreateTestDeposit(t, db, b.ID, 10000)
		testutil.AssertNoError(t, service.PayCommissions(db, deposit))

		// b's only ancestor is a; a's ancestor is b again and the walk stops.
		var count int64
		testutil.AssertNoError(t, db.Model(&models.Commission{}).
			Where("deposit_id = ?", deposit.ID).Count(&count).Error)
		if count != 1 {
			t.Errorf("expected 1 commission before the cycle, got %d", count)
		}
	})
}
