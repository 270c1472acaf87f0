// Package referral aggregates referral-tree counts and commission earnings.
//
// A user's referral network is the set of users reachable by following
// referred-by edges toward them, up to three levels deep. Earnings buckets
// ("today"/"yesterday") use UTC calendar-day boundaries. This is a different
// convention from the 24-hour rolling window the income package uses for
// collection eligibility; the two are intentionally separate and must not be
// unified, because dashboards report calendar days while collection pays out
// per elapsed 24-hour period.
//
// All functions are pure and operate on snapshots supplied by the caller.
package referral

import (
	"fmt"
	"time"

	apperrors "smartgrow/internal/errors"
	"smartgrow/internal/models"
)

// MaxLevel is the deepest referral level that earns commission.
const MaxLevel = 3

// Edge is a directed referral edge: UserID was invited by ReferrerID.
type Edge struct {
	UserID     uint
	ReferrerID uint
}

// LevelCounts holds the number of referred users at each level below a user.
type LevelCounts struct {
	Level1 int `json:"level1_count"`
	Level2 int `json:"level2_count"`
	Level3 int `json:"level3_count"`
}

// Total returns the size of the whole 3-level network.
func (c LevelCounts) Total() int {
	return c.Level1 + c.Level2 + c.Level3
}

// CountByLevel walks the referral tree below rootID across the given edges and
// counts members per level. A visited set guards against cycles: corrupt data
// that loops a referred-by chain back on itself counts each user once and
// terminates instead of inflating counts.
func CountByLevel(rootID uint, edges []Edge) LevelCounts {
	children := make(map[uint][]uint, len(edges))
	for _, e := range edges {
		children[e.ReferrerID] = append(children[e.ReferrerID], e.UserID)
	}

	visited := map[uint]bool{rootID: true}
	frontier := []uint{rootID}

	var counts [MaxLevel]int
	for level := 0; level < MaxLevel; level++ {
		var next []uint
		for _, id := range frontier {
			for _, child := range children[id] {
				if visited[child] {
					continue
				}
				visited[child] = true
				next = append(next, child)
			}
		}
		counts[level] = len(next)
		frontier = next
	}

	return LevelCounts{Level1: counts[0], Level2: counts[1], Level3: counts[2]}
}

// Entry is a snapshot of one commission ledger row.
type Entry struct {
	ReferrerID   uint
	SourceUserID uint
	Level        int
	Amount       int64
	CreatedAt    time.Time
	Status       models.CommissionStatus
}

// FromCommission builds an Entry from a loaded commission record.
func FromCommission(c *models.Commission) Entry {
	return Entry{
		ReferrerID:   c.ReferrerID,
		SourceUserID: c.SourceUserID,
		Level:        c.Level,
		Amount:       c.Amount,
		CreatedAt:    c.CreatedAt,
		Status:       c.Status,
	}
}

// EarningsSummary holds commission earnings aggregates for one referrer.
// ByLevel partitions the same completed set Total sums, so the level sums
// always add up to Total when every entry has a valid level.
type EarningsSummary struct {
	Total     int64         `json:"total_earnings"`
	Today     int64         `json:"today_earnings"`
	Yesterday int64         `json:"yesterday_earnings"`
	ByLevel   map[int]int64 `json:"by_level"`
}

// AggregateEarnings computes total, per-level, and today/yesterday commission
// sums over the given ledger entries. Only completed entries count; pending
// and failed ones contribute nothing. Entries with an out-of-range level or a
// negative amount fail the whole call with INVALID_RECORD rather than being
// skipped, since either means the ledger itself is corrupt.
func AggregateEarnings(entries []Entry, now time.Time) (*EarningsSummary, error) {
	summary := &EarningsSummary{ByLevel: make(map[int]int64, MaxLevel)}
	for l := 1; l <= MaxLevel; l++ {
		summary.ByLevel[l] = 0
	}

	todayStart := now.UTC().Truncate(24 * time.Hour)
	todayEnd := todayStart.Add(24 * time.Hour)
	yesterdayStart := todayStart.Add(-24 * time.Hour)

	for i := range entries {
		e := &entries[i]
		if e.Level < 1 || e.Level > MaxLevel {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidRecord,
				fmt.Sprintf("commission level %d is out of range", e.Level))
		}
		if e.Amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidRecord, "commission amount must not be negative")
		}

		if e.Status != models.CommissionStatusCompleted {
			continue
		}

		summary.Total += e.Amount
		summary.ByLevel[e.Level] += e.Amount

		created := e.CreatedAt.UTC()
		switch {
		case !created.Before(todayStart) && created.Before(todayEnd):
			summary.Today += e.Amount
		case !created.Before(yesterdayStart) && created.Before(todayStart):
			summary.Yesterday += e.Amount
		}
	}

	return summary, nil
}
