package models

// Plan is a fixed-term investment product. ProfitPercent is the total profit
// payable over DurationDays as a percentage of the invested amount, paid out
// linearly per day.
type Plan struct {
	Base
	Name          string  `gorm:"not null" json:"name"`
	Description   string  `json:"description"`
	MinAmount     int64   `gorm:"type:bigint;not null" json:"min_amount"`
	MaxAmount     int64   `gorm:"type:bigint;not null" json:"max_amount"`
	DurationDays  int     `gorm:"not null" json:"duration_days"`
	ProfitPercent float64 `gorm:"not null" json:"profit_percent"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`

	Investments []Investment `gorm:"foreignKey:PlanID" json:"investments,omitempty"`
}
