package models

import "time"

// UserRole distinguishes end users from platform administrators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents the user model in the database. Balance is held in minor
// currency units and is only ever mutated inside database transactions.
type User struct {
	Base
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	Password     string   `gorm:"not null" json:"-"`
	FullName     string   `json:"full_name"`
	Phone        string   `json:"phone,omitempty"`
	Role         UserRole `gorm:"not null;default:'user'" json:"role"`
	Balance      int64    `gorm:"type:bigint;not null;default:0" json:"balance"`
	ReferralCode string   `gorm:"uniqueIndex;not null" json:"referral_code"`
	// ReferredBy points at the user who invited this one. Nil for organic
	// signups. Referral levels are derived by walking this edge upward.
	ReferredBy *uint `gorm:"index" json:"referred_by,omitempty"`
	IsActive   bool  `gorm:"default:true" json:"is_active"`

	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Investments []Investment `gorm:"foreignKey:UserID" json:"investments,omitempty"`
	Deposits    []Deposit    `gorm:"foreignKey:UserID" json:"deposits,omitempty"`
	Withdrawals []Withdrawal `gorm:"foreignKey:UserID" json:"withdrawals,omitempty"`
}
