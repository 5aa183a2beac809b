package models

import "time"

// SignSummary caches per-user aggregate sign-in state. It is a fold over the
// user's SignLog rows in commit order and is only ever written in the same
// transaction as a SignLog insert.
type SignSummary struct {
	UID             string    `gorm:"primaryKey;size:64" json:"uid"`
	TotalSignDays   int       `gorm:"not null;default:0" json:"total_sign_days"`
	CurrentMonth    string    `gorm:"size:7;not null;default:''" json:"current_month"`
	MonthSignDays   int       `gorm:"not null;default:0" json:"month_sign_days"`
	LastSignDate    string    `gorm:"size:10;default:''" json:"last_sign_date"`
	ContinuousDays  int       `gorm:"not null;default:0" json:"continuous_days"`
	SupplementCount int       `gorm:"not null;default:0" json:"supplement_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (SignSummary) TableName() string {
	return "user_sign_summary"
}
