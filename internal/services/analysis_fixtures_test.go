package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/cyclesense/internal/models"
)

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return value
}

func cycleOn(t *testing.T, id uint, start string, periodLength int) models.CycleRecord {
	t.Helper()
	startDay := mustParseDay(t, start)
	periodDays := make([]time.Time, 0, periodLength)
	for offset := 0; offset < periodLength; offset++ {
		periodDays = append(periodDays, addDays(startDay, offset))
	}
	return models.CycleRecord{ID: id, ProfileID: 1, StartDate: startDay, PeriodDays: periodDays}
}

// cyclesWithLengths builds consecutive cycles starting on first, each with a
// five-day period, separated by the given cycle lengths.
func cyclesWithLengths(t *testing.T, first string, lengths ...int) []models.CycleRecord {
	t.Helper()
	cycles := []models.CycleRecord{cycleOn(t, 1, first, 5)}
	start := mustParseDay(t, first)
	for index, length := range lengths {
		start = addDays(start, length)
		cycles = append(cycles, cycleOn(t, uint(index+2), dayKey(start), 5))
	}
	return cycles
}

func symptomOn(t *testing.T, raw string, entries ...models.SymptomEntry) models.SymptomRecord {
	t.Helper()
	return models.SymptomRecord{ProfileID: 1, Date: mustParseDay(t, raw), Symptoms: entries}
}

func noteOn(t *testing.T, raw string, text string) models.DailyNote {
	t.Helper()
	return models.DailyNote{ProfileID: 1, Date: mustParseDay(t, raw), Text: text, Mood: models.MoodNeutral, Energy: models.EnergyMedium, Flow: models.FlowNone}
}

func findInsight(insights []HealthInsight, title string) (HealthInsight, bool) {
	for _, insight := range insights {
		if insight.Title == title {
			return insight, true
		}
	}
	return HealthInsight{}, false
}
