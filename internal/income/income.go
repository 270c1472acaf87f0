// Package income computes daily-income eligibility and collection windows for
// investments. Collection eligibility uses whole 24-hour periods measured from
// the last collection (or the start date), not calendar-day boundaries: a new
// day of income becomes collectable exactly 24 hours after the anchor.
//
// Every function is pure. The current time is always passed in explicitly and
// the package never touches the database; callers feed it Snapshot values read
// inside whatever transaction they need.
package income

import (
	"fmt"
	"math"
	"time"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
)

const day = 24 * time.Hour

// Snapshot is a point-in-time view of one investment plus the plan fields the
// window calculation needs. Build it with FromInvestment or populate it
// directly in tests.
type Snapshot struct {
	InvestmentID  uint
	StartDate     time.Time
	EndDate       *time.Time
	LastCollected *time.Time
	DaysCollected int
	DurationDays  int
	ProfitPercent float64
	Amount        int64
	Status        models.InvestmentStatus
}

// FromInvestment builds a Snapshot from a loaded investment record. The Plan
// association must be populated.
func FromInvestment(inv *models.Investment) Snapshot {
	return Snapshot{
		InvestmentID:  inv.ID,
		StartDate:     inv.StartDate,
		EndDate:       inv.EndDate,
		LastCollected: inv.LastIncomeCollectionAt,
		DaysCollected: inv.TotalDaysCollected,
		DurationDays:  inv.Plan.DurationDays,
		ProfitPercent: inv.Plan.ProfitPercent,
		Amount:        inv.Amount,
		Status:        inv.Status,
	}
}

// validate rejects malformed snapshots instead of defaulting fields. A zero
// duration or amount means the plan reference was missing or corrupt upstream,
// and paying income off such a record would be wrong in either direction.
func (s Snapshot) validate() error {
	switch {
	case s.StartDate.IsZero():
		return apperrors.WithMessage(apperrors.ErrInvalidRecord, "investment has no start date")
	case s.DurationDays <= 0:
		return apperrors.WithMessage(apperrors.ErrInvalidRecord, "plan duration must be positive")
	case s.ProfitPercent < 0:
		return apperrors.WithMessage(apperrors.ErrInvalidRecord, "profit percent must not be negative")
	case s.Amount <= 0:
		return apperrors.WithMessage(apperrors.ErrInvalidRecord, "invested amount must be positive")
	case s.DaysCollected < 0:
		return apperrors.WithMessage(apperrors.ErrInvalidRecord, "days collected must not be negative")
	case s.DaysCollected > s.DurationDays:
		return apperrors.WithMessage(apperrors.ErrInvalidRecord,
			fmt.Sprintf("days collected %d exceeds plan duration %d", s.DaysCollected, s.DurationDays))
	}
	switch s.Status {
	case models.InvestmentStatusActive, models.InvestmentStatusCompleted, models.InvestmentStatusCancelled:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidRecord, "unknown investment status")
	}
	return nil
}

// AvailableDays returns how many whole unclaimed days of income are available
// at now. The anchor is the last collection time, or the start date if income
// has never been collected. The result is capped at the plan days remaining
// and never negative.
func AvailableDays(s Snapshot, now time.Time) (int, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}

	anchor := s.StartDate
	if s.LastCollected != nil {
		anchor = *s.LastCollected
	}

	elapsed := int(now.Sub(anchor) / day)
	if elapsed < 0 {
		elapsed = 0
	}

	remaining := s.DurationDays - s.DaysCollected
	if elapsed > remaining {
		return remaining, nil
	}
	return elapsed, nil
}

// CanCollect is the single source of truth for whether the collect action is
// allowed: the investment must be active and at least one whole day elapsed.
func CanCollect(s Snapshot, now time.Time) (bool, error) {
	if s.Status != models.InvestmentStatusActive {
		// Still validate so malformed records surface instead of reading
		// as a quiet "no".
		if err := s.validate(); err != nil {
			return false, err
		}
		return false, nil
	}
	days, err := AvailableDays(s, now)
	if err != nil {
		return false, err
	}
	return days > 0, nil
}

// CollectionRequest is the prepared, client-side half of a collection. The
// transactional collection endpoint is the sole authority for applying it;
// submitting a stale request is safe because the endpoint recomputes
// availability from fresh data.
type CollectionRequest struct {
	InvestmentID uint  `json:"investment_id"`
	Days         int   `json:"days"`
	ProfitPerDay int64 `json:"profit_per_day"`
}

// Total returns the amount a successful collection would credit.
func (r CollectionRequest) Total() int64 {
	return int64(r.Days) * r.ProfitPerDay
}

// PrepareCollection computes the collection request for an investment at now.
// Returns ErrInvestmentNotActive for non-active investments and
// ErrNoCollectableDays when no whole day has elapsed since the anchor.
func PrepareCollection(s Snapshot, now time.Time) (*CollectionRequest, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.Status != models.InvestmentStatusActive {
		return nil, apperrors.ErrInvestmentNotActive
	}

	days, err := AvailableDays(s, now)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return nil, apperrors.ErrNoCollectableDays
	}

	return &CollectionRequest{
		InvestmentID: s.InvestmentID,
		Days:         days,
		ProfitPerDay: ProfitPerDay(s.Amount, s.ProfitPercent, s.DurationDays),
	}, nil
}

// ProfitPerDay returns the income paid per collected day: the plan's total
// profit spread linearly over its duration, rounded to the nearest minor unit.
// Profit does not compound.
func ProfitPerDay(amount int64, profitPercent float64, durationDays int) int64 {
	return int64(math.Round(float64(amount) * profitPercent / 100 / float64(durationDays)))
}

// ProgressPercent returns how far an investment is through its term as an
// integer 0..100. A missing end date reads as 0. A zero-length term reads as
// 100 rather than dividing by zero.
func ProgressPercent(start time.Time, end *time.Time, now time.Time) int {
	if end == nil {
		return 0
	}
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	pct := int(math.Round(float64(now.Sub(start)) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// DaysRemaining returns the number of whole or partial 24-hour periods until
// the end date, never negative. A missing end date reads as 0.
func DaysRemaining(end *time.Time, now time.Time) int {
	if end == nil {
		return 0
	}
	left := end.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + day - 1) / day)
}
