package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/cyclesense/internal/models"
)

var ErrAnalysisClockMissing = errors.New("analysis clock missing")

const placeholderEncouragement = "Start logging your periods, symptoms and notes to receive personalized cycle insights."

type AnalysisSettings struct {
	AverageCycleLength int `json:"average_cycle_length"`
}

type AnalysisInput struct {
	Cycles   []models.CycleRecord
	Symptoms []models.SymptomRecord
	Notes    []models.DailyNote
	Settings AnalysisSettings
}

// CycleAnalyzer is immutable after construction and safe for concurrent use.
type CycleAnalyzer struct {
	thresholds AnalysisThresholds
}

func NewCycleAnalyzer(thresholds AnalysisThresholds) (*CycleAnalyzer, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &CycleAnalyzer{thresholds: thresholds.clone()}, nil
}

func DefaultCycleAnalyzer() *CycleAnalyzer {
	return &CycleAnalyzer{thresholds: DefaultAnalysisThresholds()}
}

func (analyzer *CycleAnalyzer) Thresholds() AnalysisThresholds {
	return analyzer.thresholds.clone()
}

func (analyzer *CycleAnalyzer) Analyze(input AnalysisInput, now time.Time) (CycleAnalysis, error) {
	if now.IsZero() {
		return CycleAnalysis{}, ErrAnalysisClockMissing
	}
	today := CalendarDay(now)

	cycles := analyzer.validateCycles(input.Cycles)
	rawSymptoms, rawNotes, err := foldEmbeddedRecords(cycles, input.Symptoms, input.Notes)
	if err != nil {
		return CycleAnalysis{}, fmt.Errorf("fold cycle records: %w", err)
	}
	symptoms := validateSymptomRecords(rawSymptoms)
	notes := validateDailyNotes(rawNotes)

	stats := analyzer.buildStatistics(cycles)
	state := analyzer.resolveCurrentState(cycles, today, stats.AverageCycleLength)
	nextPeriod := analyzer.predictNextPeriod(cycles, stats, input.Settings, today)
	ovulation := analyzer.predictOvulation(cycles, stats, nextPeriod, today)
	fertility := analyzer.fertilityOutlook(cycles, stats, state)
	regularity := analyzer.ClassifyRegularity(len(cycles), stats.CycleVariation)
	insights := analyzer.buildInsights(stats, regularity, symptoms)
	quality := analyzer.assessDataQuality(cycles, symptoms, notes, stats.CycleVariation, today)

	return CycleAnalysis{
		GeneratedAt:           now,
		Today:                 today,
		Current:               state,
		Statistics:            stats,
		NextPeriod:            nextPeriod,
		Ovulation:             ovulation,
		Fertility:             fertility,
		Regularity:            regularity,
		Insights:              insights,
		DataQuality:           quality,
		HealthScore:           analyzer.healthScore(stats, regularity, symptoms),
		SymptomPatterns:       analyzer.symptomPatterns(cycles, symptoms, stats.AverageCycleLength),
		DataMaturity:          analyzer.ClassifyDataMaturity(len(cycles)),
		PredictionReliability: analyzer.predictionReliability(len(cycles), quality),
		Recommendations:       analyzer.buildRecommendations(state, nextPeriod, regularity, insights, quality),
	}, nil
}

// PlaceholderAnalysis is the snapshot consumers show when a profile has no
// records or the analysis could not be computed.
func (analyzer *CycleAnalyzer) PlaceholderAnalysis(now time.Time) CycleAnalysis {
	if now.IsZero() {
		now = time.Now()
	}
	analysis, err := analyzer.Analyze(AnalysisInput{}, now)
	if err != nil {
		analysis = CycleAnalysis{GeneratedAt: now, Today: CalendarDay(now)}
	}

	analysis.Insights = []HealthInsight{{
		Type:       InsightTip,
		Title:      "Welcome",
		Message:    placeholderEncouragement,
		Actionable: true,
		Priority:   priorityKeepTracking,
	}}
	analysis.Recommendations = []string{placeholderEncouragement}
	return analysis
}
