package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/cyclesense/internal/models"
	"github.com/terraincognita07/cyclesense/internal/services"
)

type createProfileRequest struct {
	Name               string `json:"name" validate:"required,max=80"`
	AverageCycleLength int    `json:"average_cycle_length" validate:"omitempty,min=21,max=45"`
	Language           string `json:"language" validate:"omitempty,oneof=en ru"`
}

type updateSettingsRequest struct {
	AverageCycleLength int    `json:"average_cycle_length" validate:"omitempty,min=21,max=45"`
	Language           string `json:"language" validate:"omitempty,oneof=en ru"`
}

type symptomEntryRequest struct {
	Type      string `json:"type" validate:"required,max=40"`
	Intensity int    `json:"intensity" validate:"min=1,max=5"`
}

type createCycleRequest struct {
	StartDate  string                           `json:"start_date" validate:"required,day"`
	EndDate    string                           `json:"end_date" validate:"omitempty,day"`
	PeriodDays []string                         `json:"period_days" validate:"required,min=1,max=15,dive,day"`
	Length     *int                             `json:"length" validate:"omitempty,min=21,max=45"`
	Symptoms   map[string][]symptomEntryRequest `json:"symptoms" validate:"omitempty,dive,keys,day,endkeys,min=1,dive"`
	Notes      map[string]string                `json:"notes" validate:"omitempty,dive,keys,day,endkeys,max=2000"`
}

type createSymptomRecordRequest struct {
	Date     string                `json:"date" validate:"required,day"`
	Symptoms []symptomEntryRequest `json:"symptoms" validate:"required,min=1,max=20,dive"`
	Notes    string                `json:"notes" validate:"max=2000"`
}

type createDailyNoteRequest struct {
	Date   string `json:"date" validate:"required,day"`
	Text   string `json:"text" validate:"required,max=2000"`
	Mood   string `json:"mood" validate:"omitempty,oneof=low neutral good"`
	Energy string `json:"energy" validate:"omitempty,oneof=low medium high"`
	Flow   string `json:"flow" validate:"omitempty,oneof=none light medium heavy"`
}

func newPayloadValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("day", isDay); err != nil {
		return nil, fmt.Errorf("register day validation: %w", err)
	}
	return validate, nil
}

func isDay(fl validator.FieldLevel) bool {
	_, err := services.ParseDay(fl.Field().String())
	return err == nil
}

// validationMessage turns the first failed rule into a client-facing message.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "invalid payload"
	}

	failed := validationErrors[0]
	field := failed.Field()
	switch failed.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "day":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(failed.Param(), " ", ", "))
	case "min", "max":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("invalid %s", field)
	}
}

func mustDay(raw string) time.Time {
	day, err := services.ParseDay(raw)
	if err != nil {
		panic(fmt.Sprintf("unvalidated day %q", raw))
	}
	return day
}

func (request createCycleRequest) toModel(profileID uint) models.CycleRecord {
	cycle := models.CycleRecord{
		ProfileID:  profileID,
		StartDate:  mustDay(request.StartDate),
		PeriodDays: make([]time.Time, 0, len(request.PeriodDays)),
		Length:     request.Length,
	}
	if request.EndDate != "" {
		end := mustDay(request.EndDate)
		cycle.EndDate = &end
	}
	for _, raw := range request.PeriodDays {
		cycle.PeriodDays = append(cycle.PeriodDays, mustDay(raw))
	}
	if len(request.Symptoms) > 0 {
		cycle.Symptoms = make(map[string][]models.SymptomEntry, len(request.Symptoms))
		for key, entries := range request.Symptoms {
			cycle.Symptoms[key] = symptomEntries(entries)
		}
	}
	if len(request.Notes) > 0 {
		cycle.Notes = make(map[string]string, len(request.Notes))
		for key, text := range request.Notes {
			cycle.Notes[key] = strings.TrimSpace(text)
		}
	}
	return cycle
}

func (request createSymptomRecordRequest) toModel(profileID uint) models.SymptomRecord {
	return models.SymptomRecord{
		ProfileID: profileID,
		Date:      mustDay(request.Date),
		Symptoms:  symptomEntries(request.Symptoms),
		Notes:     strings.TrimSpace(request.Notes),
	}
}

func (request createDailyNoteRequest) toModel(profileID uint) models.DailyNote {
	note := models.DailyNote{
		ProfileID: profileID,
		Date:      mustDay(request.Date),
		Text:      strings.TrimSpace(request.Text),
		Mood:      request.Mood,
		Energy:    request.Energy,
		Flow:      request.Flow,
	}
	if note.Mood == "" {
		note.Mood = models.MoodNeutral
	}
	if note.Energy == "" {
		note.Energy = models.EnergyMedium
	}
	if note.Flow == "" {
		note.Flow = models.FlowNone
	}
	return note
}

func symptomEntries(requests []symptomEntryRequest) []models.SymptomEntry {
	entries := make([]models.SymptomEntry, 0, len(requests))
	for _, request := range requests {
		entries = append(entries, models.SymptomEntry{
			Type:      strings.ToLower(strings.TrimSpace(request.Type)),
			Intensity: request.Intensity,
		})
	}
	return entries
}
