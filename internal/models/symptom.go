package models

import "time"

const (
	MinSymptomIntensity = 1
	MaxSymptomIntensity = 5
)

type SymptomEntry struct {
	Type      string `json:"type"`
	Intensity int    `json:"intensity"`
}

type SymptomRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProfileID uint           `gorm:"not null;uniqueIndex:uidx_symptom_records_profile_date" json:"profile_id"`
	Date      time.Time      `gorm:"type:date;not null;uniqueIndex:uidx_symptom_records_profile_date" json:"date"`
	Symptoms  []SymptomEntry `gorm:"serializer:json" json:"symptoms"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func DefaultSymptomTypes() []string {
	return []string{
		"cramps",
		"headache",
		"mood_swings",
		"bloating",
		"fatigue",
		"breast_tenderness",
		"acne",
		"back_pain",
		"nausea",
		"spotting",
		"irritability",
		"insomnia",
		"food_cravings",
	}
}
