package models

import "time"

// PaymentMethod enumerates the supported deposit/withdrawal channels.
type PaymentMethod string

const (
	PaymentMethodBank      PaymentMethod = "bank_transfer"
	PaymentMethodEasyPaisa PaymentMethod = "easypaisa"
	PaymentMethodUSDT      PaymentMethod = "usdt_trc20"
)

// DepositStatus represents the review state of a deposit.
type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
	DepositStatusRejected DepositStatus = "rejected"
)

// Deposit is an operator-verified top-up request. The balance is credited and
// referral commissions are paid only when an admin approves it.
type Deposit struct {
	Base
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	Amount    int64         `gorm:"type:bigint;not null" json:"amount"`
	Method    PaymentMethod `gorm:"not null" json:"method"`
	Reference string        `gorm:"uniqueIndex;not null" json:"reference"`
	// SenderDetails is the payer-side identifier (account number, wallet
	// address) the operator cross-checks against the incoming transfer.
	SenderDetails string        `json:"sender_details,omitempty"`
	Status        DepositStatus `gorm:"not null;default:'pending'" json:"status"`
	ReviewedBy    *uint         `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time    `json:"reviewed_at,omitempty"`
	ReviewNote    string        `json:"review_note,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
