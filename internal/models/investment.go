package models

import "time"

// InvestmentStatus represents the lifecycle state of an investment.
// Active investments accrue daily income; completed and cancelled are terminal.
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusCompleted InvestmentStatus = "completed"
	InvestmentStatusCancelled InvestmentStatus = "cancelled"
)

// Investment is a user's purchase of a Plan. TotalDaysCollected never exceeds
// the plan duration and LastIncomeCollectionAt never moves backwards; both are
// only advanced inside the collection transaction.
type Investment struct {
	Base
	UserID uint  `gorm:"not null;index" json:"user_id"`
	PlanID uint  `gorm:"not null;index" json:"plan_id"`
	Amount int64 `gorm:"type:bigint;not null" json:"amount"`

	StartDate              time.Time        `gorm:"not null" json:"start_date"`
	EndDate                *time.Time       `json:"end_date,omitempty"`
	LastIncomeCollectionAt *time.Time       `json:"last_income_collection_at,omitempty"`
	TotalDaysCollected     int              `gorm:"not null;default:0" json:"total_days_collected"`
	TotalIncomeCollected   int64            `gorm:"type:bigint;not null;default:0" json:"total_income_collected"`
	Status                 InvestmentStatus `gorm:"not null;default:'active'" json:"status"`

	// Relationships
	Plan        Plan               `gorm:"foreignKey:PlanID" json:"plan"`
	User        User               `gorm:"foreignKey:UserID" json:"-"`
	Collections []IncomeCollection `gorm:"foreignKey:InvestmentID" json:"collections,omitempty"`
}

// IncomeCollection records a single successful daily-income collection.
type IncomeCollection struct {
	Base
	InvestmentID uint      `gorm:"not null;index" json:"investment_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Days         int       `gorm:"not null" json:"days"`
	Amount       int64     `gorm:"type:bigint;not null" json:"amount"`
	CollectedAt  time.Time `gorm:"not null" json:"collected_at"`

	Investment Investment `gorm:"foreignKey:InvestmentID" json:"-"`
}
