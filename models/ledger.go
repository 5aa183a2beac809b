package models

import "time"

// UserLedger holds a user's experience and point balances. Sign-in only ever
// adds non-negative deltas; spending lives elsewhere.
type UserLedger struct {
	UID       string    `gorm:"primaryKey;size:64" json:"uid"`
	Exp       int64     `gorm:"not null;default:0" json:"exp"`
	Point     int64     `gorm:"not null;default:0" json:"point"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserLedger) TableName() string {
	return "user_ledger"
}
