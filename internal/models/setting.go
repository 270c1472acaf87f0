package models

// Setting is a key/value site configuration row. Commission rates, the
// withdrawal floor, and support contact details all live here so admins can
// change them without a deploy.
type Setting struct {
	Base
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// Well-known setting keys.
const (
	SettingCommissionLevel1Percent = "commission_level1_percent"
	SettingCommissionLevel2Percent = "commission_level2_percent"
	SettingCommissionLevel3Percent = "commission_level3_percent"
	SettingMinWithdrawalAmount     = "min_withdrawal_amount"
	SettingSupportContact          = "support_contact"
)
