package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclesense/internal/models"
	"github.com/terraincognita07/cyclesense/internal/services"
)

type analysisLabels struct {
	Language        string `json:"language"`
	Phase           string `json:"phase"`
	Regularity      string `json:"regularity"`
	Confidence      string `json:"confidence"`
	DataQuality     string `json:"data_quality"`
	DataMaturity    string `json:"data_maturity"`
	Forecast        string `json:"forecast"`
	NextPeriodStart string `json:"next_period_start"`
}

type analysisResponse struct {
	Analysis services.CycleAnalysis `json:"analysis"`
	Labels   analysisLabels         `json:"labels"`
}

// GetAnalysis answers ?now=YYYY-MM-DD for a fixed evaluation day and
// ?lang= to override the profile language.
func (handler *Handler) GetAnalysis(c *fiber.Ctx) error {
	profile, ok, err := handler.loadProfile(c)
	if !ok {
		return err
	}

	now := handler.today()
	if raw := strings.TrimSpace(c.Query("now")); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "now must be a YYYY-MM-DD date")
		}
		now = parsed
	}

	analysis, err := handler.analysis.AnalyzeProfile(profile, now)
	if errors.Is(err, services.ErrAnalysisRecordsUnavailable) {
		return internalError(c, "failed to load records", err)
	}
	if err != nil {
		return internalError(c, "failed to analyze cycles", err)
	}

	language := handler.resolveLanguage(c, profile)
	return c.JSON(analysisResponse{
		Analysis: analysis,
		Labels:   handler.localizeAnalysis(language, analysis),
	})
}

func (handler *Handler) resolveLanguage(c *fiber.Ctx, profile models.Profile) string {
	if raw := strings.TrimSpace(c.Query("lang")); raw != "" {
		return handler.i18n.NormalizeLanguage(raw)
	}
	if profile.Language != "" {
		return handler.i18n.NormalizeLanguage(profile.Language)
	}
	return handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
}

func (handler *Handler) localizeAnalysis(language string, analysis services.CycleAnalysis) analysisLabels {
	return analysisLabels{
		Language:        language,
		Phase:           handler.i18n.Label(language, "phase", string(analysis.Current.Phase)),
		Regularity:      handler.i18n.Label(language, "regularity", string(analysis.Regularity)),
		Confidence:      handler.i18n.Label(language, "confidence", string(analysis.NextPeriod.ConfidenceLevel)),
		DataQuality:     handler.i18n.Label(language, "quality", string(analysis.DataQuality.Level)),
		DataMaturity:    handler.i18n.Label(language, "maturity", string(analysis.DataMaturity)),
		Forecast:        handler.forecastText(language, analysis.NextPeriod),
		NextPeriodStart: services.FormatDate(analysis.NextPeriod.StartDate),
	}
}

func (handler *Handler) forecastText(language string, prediction services.PeriodPrediction) string {
	switch {
	case prediction.IsOverdue:
		return handler.i18n.Translatef(language, "forecast.overdue", prediction.OverdueBy)
	case prediction.DaysUntil == 0:
		return handler.i18n.Translate(language, "forecast.today")
	default:
		return handler.i18n.Translatef(language, "forecast.days_until", prediction.DaysUntil)
	}
}

