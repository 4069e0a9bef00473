package models

import "time"

const (
	StatusOK    = "ok"
	StatusWarn  = "warn"
	StatusBlock = "block"
)

const (
	MinMood = 1
	MaxMood = 5
)

// CheckIn is one user's daily record. Date holds the calendar day at UTC midnight.
type CheckIn struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uidx_checkin_user_date" json:"-"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uidx_checkin_user_date" json:"date"`
	CheckedInAt time.Time `gorm:"not null" json:"checked_in_at"`
	Status      string    `gorm:"not null;default:ok" json:"status"`
	Mood        int       `gorm:"not null" json:"mood"`
	Note        string    `json:"note"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusOK, StatusWarn, StatusBlock:
		return true
	default:
		return false
	}
}
