package models

import "time"

// WithdrawalStatus represents the review state of a withdrawal.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// Withdrawal is a payout request. The amount is held (debited) when the
// request is created and refunded if the request is rejected.
type Withdrawal struct {
	Base
	UserID uint          `gorm:"not null;index" json:"user_id"`
	Amount int64         `gorm:"type:bigint;not null" json:"amount"`
	Method PaymentMethod `gorm:"not null" json:"method"`
	// AccountDetails is the payee-side destination (IBAN, wallet number,
	// TRC20 address).
	AccountDetails string           `gorm:"not null" json:"account_details"`
	Status         WithdrawalStatus `gorm:"not null;default:'pending'" json:"status"`
	ReviewedBy     *uint            `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time       `json:"reviewed_at,omitempty"`
	ReviewNote     string           `json:"review_note,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
