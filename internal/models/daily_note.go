package models

import "time"

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	MoodLow     = "low"
	MoodNeutral = "neutral"
	MoodGood    = "good"
)

const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

type DailyNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:uidx_daily_notes_profile_date" json:"profile_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_daily_notes_profile_date" json:"date"`
	Text      string    `gorm:"not null" json:"text"`
	Mood      string    `gorm:"not null;default:neutral" json:"mood"`
	Energy    string    `gorm:"not null;default:medium" json:"energy"`
	Flow      string    `gorm:"not null;default:none" json:"flow"`
	CreatedAt time.Time `json:"created_at"`
}
