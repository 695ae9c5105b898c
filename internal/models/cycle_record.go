package models

import "time"

// CycleRecord is one logged cycle. Symptoms and Notes are keyed by YYYY-MM-DD.
type CycleRecord struct {
	ID         uint                      `gorm:"primaryKey" json:"id"`
	ProfileID  uint                      `gorm:"not null;index" json:"profile_id"`
	StartDate  time.Time                 `gorm:"type:date;not null" json:"start_date"`
	EndDate    *time.Time                `gorm:"type:date" json:"end_date,omitempty"`
	PeriodDays []time.Time               `gorm:"serializer:json" json:"period_days"`
	Symptoms   map[string][]SymptomEntry `gorm:"serializer:json" json:"symptoms,omitempty"`
	Notes      map[string]string         `gorm:"serializer:json" json:"notes,omitempty"`
	Length     *int                      `json:"length,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}
