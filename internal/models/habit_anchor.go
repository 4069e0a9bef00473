package models

import "time"

const (
	PromptVariantA = "A"
	PromptVariantB = "B"
)

// HabitAnchor ties a tiny habit to an existing routine ("after I brush my teeth").
type HabitAnchor struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"-"`
	Name          string    `gorm:"not null" json:"name"`
	AnchorText    string    `json:"anchor_text"`
	PromptVariant string    `gorm:"not null" json:"prompt_variant"`
	Active        bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}
