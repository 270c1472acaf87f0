package models

// CommissionStatus represents whether a commission has been credited.
// Only completed entries count toward earnings aggregates.
type CommissionStatus string

const (
	CommissionStatusPending   CommissionStatus = "pending"
	CommissionStatusCompleted CommissionStatus = "completed"
	CommissionStatusFailed    CommissionStatus = "failed"
)

// Commission is a ledger entry crediting a referrer when a referred user's
// deposit is approved. Level is the referral-tree depth between the referrer
// and the depositing user (1 = direct invite, up to 3).
type Commission struct {
	Base
	ReferrerID   uint             `gorm:"not null;index" json:"referrer_id"`
	SourceUserID uint             `gorm:"not null;index" json:"source_user_id"`
	DepositID    uint             `gorm:"not null;index" json:"deposit_id"`
	Level        int              `gorm:"not null" json:"level"`
	Amount       int64            `gorm:"type:bigint;not null" json:"amount"`
	Status       CommissionStatus `gorm:"not null;default:'pending'" json:"status"`

	Referrer   User `gorm:"foreignKey:ReferrerID" json:"-"`
	SourceUser User `gorm:"foreignKey:SourceUserID" json:"-"`
}
