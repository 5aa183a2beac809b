package models

import "time"

// SignLog is the append-only record of sign-in events, one row per
// (user, date). Rows are never updated or deleted.
type SignLog struct {
	UID          string    `gorm:"primaryKey;size:64" json:"uid"`
	SignDate     string    `gorm:"primaryKey;size:10" json:"sign_date"`
	IsSupplement bool      `gorm:"not null;default:false" json:"is_supplement"`
	Exp          int       `gorm:"not null;default:0" json:"exp"`
	Point        int       `gorm:"not null;default:0" json:"point"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName keeps the historical table name.
func (SignLog) TableName() string {
	return "user_sign_log"
}
