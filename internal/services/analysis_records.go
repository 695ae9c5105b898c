package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/cyclesense/internal/models"
)

var ErrMalformedRecordDate = errors.New("malformed record date")

type ValidatedRecords struct {
	Cycles   []models.CycleRecord
	Symptoms []models.SymptomRecord
	Notes    []models.DailyNote
}

// ValidateRecords drops structurally invalid records and returns normalized
// copies of the rest sorted by date. The inputs are never modified.
func (analyzer *CycleAnalyzer) ValidateRecords(cycles []models.CycleRecord, symptoms []models.SymptomRecord, notes []models.DailyNote) ValidatedRecords {
	return ValidatedRecords{
		Cycles:   analyzer.validateCycles(cycles),
		Symptoms: validateSymptomRecords(symptoms),
		Notes:    validateDailyNotes(notes),
	}
}

func (analyzer *CycleAnalyzer) validateCycles(cycles []models.CycleRecord) []models.CycleRecord {
	bounds := analyzer.thresholds.Statistics
	valid := make([]models.CycleRecord, 0, len(cycles))
	for _, cycle := range cycles {
		if cycle.StartDate.IsZero() {
			continue
		}
		if cycle.Length != nil && (*cycle.Length < bounds.MinCycleLength || *cycle.Length > bounds.MaxCycleLength) {
			continue
		}
		periodDays := normalizeDays(cycle.PeriodDays)
		if len(periodDays) == 0 {
			continue
		}

		normalized := cycle
		normalized.StartDate = CalendarDay(cycle.StartDate)
		normalized.PeriodDays = periodDays
		if cycle.EndDate != nil && !cycle.EndDate.IsZero() {
			end := CalendarDay(*cycle.EndDate)
			normalized.EndDate = &end
		} else {
			normalized.EndDate = nil
		}
		if cycle.Length != nil {
			length := *cycle.Length
			normalized.Length = &length
		}
		normalized.Symptoms = copySymptomMap(cycle.Symptoms)
		normalized.Notes = copyNoteMap(cycle.Notes)
		valid = append(valid, normalized)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].StartDate.Before(valid[j].StartDate)
	})
	return valid
}

func validateSymptomRecords(records []models.SymptomRecord) []models.SymptomRecord {
	valid := make([]models.SymptomRecord, 0, len(records))
	for _, record := range records {
		if record.Date.IsZero() {
			continue
		}
		entries := validSymptomEntries(record.Symptoms)
		if len(entries) == 0 {
			continue
		}

		normalized := record
		normalized.Date = CalendarDay(record.Date)
		normalized.Symptoms = entries
		valid = append(valid, normalized)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Date.Before(valid[j].Date)
	})
	return valid
}

func validateDailyNotes(notes []models.DailyNote) []models.DailyNote {
	valid := make([]models.DailyNote, 0, len(notes))
	for _, note := range notes {
		text := strings.TrimSpace(note.Text)
		if note.Date.IsZero() || text == "" {
			continue
		}

		normalized := note
		normalized.Date = CalendarDay(note.Date)
		normalized.Text = text
		valid = append(valid, normalized)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Date.Before(valid[j].Date)
	})
	return valid
}

func validSymptomEntries(entries []models.SymptomEntry) []models.SymptomEntry {
	valid := make([]models.SymptomEntry, 0, len(entries))
	for _, entry := range entries {
		symptomType := strings.TrimSpace(entry.Type)
		if symptomType == "" {
			continue
		}
		if entry.Intensity < models.MinSymptomIntensity || entry.Intensity > models.MaxSymptomIntensity {
			continue
		}
		valid = append(valid, models.SymptomEntry{Type: symptomType, Intensity: entry.Intensity})
	}
	return valid
}

func normalizeDays(days []time.Time) []time.Time {
	seen := make(map[string]bool, len(days))
	normalized := make([]time.Time, 0, len(days))
	for _, day := range days {
		if day.IsZero() {
			continue
		}
		calendarDay := CalendarDay(day)
		key := dayKey(calendarDay)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, calendarDay)
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Before(normalized[j])
	})
	return normalized
}

// foldEmbeddedRecords adds the per-date symptoms and notes stored on cycle
// records for dates that have no standalone record of the same kind.
func foldEmbeddedRecords(cycles []models.CycleRecord, symptoms []models.SymptomRecord, notes []models.DailyNote) ([]models.SymptomRecord, []models.DailyNote, error) {
	foldedSymptoms := append(make([]models.SymptomRecord, 0, len(symptoms)), symptoms...)
	foldedNotes := append(make([]models.DailyNote, 0, len(notes)), notes...)

	symptomDays := make(map[string]bool, len(symptoms))
	for _, record := range symptoms {
		if !record.Date.IsZero() {
			symptomDays[dayKey(CalendarDay(record.Date))] = true
		}
	}
	noteDays := make(map[string]bool, len(notes))
	for _, note := range notes {
		if !note.Date.IsZero() {
			noteDays[dayKey(CalendarDay(note.Date))] = true
		}
	}

	for _, cycle := range cycles {
		for _, key := range sortedKeys(cycle.Symptoms) {
			day, err := ParseDay(key)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: cycle %d symptom key %q", ErrMalformedRecordDate, cycle.ID, key)
			}
			if symptomDays[dayKey(day)] {
				continue
			}
			symptomDays[dayKey(day)] = true
			foldedSymptoms = append(foldedSymptoms, models.SymptomRecord{
				ProfileID: cycle.ProfileID,
				Date:      day,
				Symptoms:  append([]models.SymptomEntry(nil), cycle.Symptoms[key]...),
			})
		}

		for _, key := range sortedKeys(cycle.Notes) {
			day, err := ParseDay(key)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: cycle %d note key %q", ErrMalformedRecordDate, cycle.ID, key)
			}
			if noteDays[dayKey(day)] {
				continue
			}
			noteDays[dayKey(day)] = true
			foldedNotes = append(foldedNotes, models.DailyNote{
				ProfileID: cycle.ProfileID,
				Date:      day,
				Text:      cycle.Notes[key],
				Mood:      models.MoodNeutral,
				Energy:    models.EnergyMedium,
				Flow:      models.FlowNone,
			})
		}
	}

	return foldedSymptoms, foldedNotes, nil
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func copySymptomMap(values map[string][]models.SymptomEntry) map[string][]models.SymptomEntry {
	if values == nil {
		return nil
	}
	copied := make(map[string][]models.SymptomEntry, len(values))
	for key, entries := range values {
		copied[key] = append([]models.SymptomEntry(nil), entries...)
	}
	return copied
}

func copyNoteMap(values map[string]string) map[string]string {
	if values == nil {
		return nil
	}
	copied := make(map[string]string, len(values))
	for key, value := range values {
		copied[key] = value
	}
	return copied
}
