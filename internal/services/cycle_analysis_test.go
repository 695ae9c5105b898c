package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/cyclesense/internal/models"
)

func TestAnalyzeWithoutCycles(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 10, 9, 30, 0, 0, time.UTC)
	analysis, err := DefaultCycleAnalyzer().Analyze(AnalysisInput{}, now)
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if analysis.Current.Phase != PhaseUnknown || analysis.Current.DayInCycle != 0 {
		t.Fatalf("expected unknown phase on day 0, got %#v", analysis.Current)
	}
	if analysis.NextPeriod.Confidence != 20 {
		t.Fatalf("expected next period confidence 20, got %d", analysis.NextPeriod.Confidence)
	}
	if analysis.HasOvulationPrediction() || analysis.Ovulation != nil {
		t.Fatal("expected no ovulation prediction")
	}
	if analysis.Regularity != RegularityInsufficientData {
		t.Fatalf("expected insufficient data, got %s", analysis.Regularity)
	}
	if analysis.DataMaturity != MaturityNew || analysis.PredictionReliability != ReliabilityInsufficient {
		t.Fatalf("expected new maturity with insufficient reliability, got %s/%s", analysis.DataMaturity, analysis.PredictionReliability)
	}
	if analysis.HealthScore != 70 {
		t.Fatalf("expected base health score 70, got %d", analysis.HealthScore)
	}
	if !analysis.Today.Equal(mustParseDay(t, "2026-02-10")) || !analysis.GeneratedAt.Equal(now) {
		t.Fatalf("unexpected timestamps %s/%s", analysis.Today, analysis.GeneratedAt)
	}
}

func TestAnalyzeRegularHistory(t *testing.T) {
	t.Parallel()

	cycles := []models.CycleRecord{
		cycleOn(t, 3, "2024-02-26", 5),
		cycleOn(t, 1, "2024-01-01", 5),
		cycleOn(t, 2, "2024-01-29", 5),
	}
	analysis, err := DefaultCycleAnalyzer().Analyze(AnalysisInput{Cycles: cycles}, mustParseDay(t, "2024-03-01"))
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if analysis.Statistics.AverageCycleLength != 28 || analysis.Statistics.CycleVariation != 0 {
		t.Fatalf("expected 28-day average with no variation, got %#v", analysis.Statistics)
	}
	if analysis.Regularity != RegularityVeryRegular {
		t.Fatalf("expected very regular, got %s", analysis.Regularity)
	}
	if analysis.NextPeriod.Confidence < 60 {
		t.Fatalf("expected confidence of at least 60, got %d", analysis.NextPeriod.Confidence)
	}
	if dayKey(analysis.NextPeriod.StartDate) != "2024-03-25" || analysis.NextPeriod.DaysUntil != 24 {
		t.Fatalf("expected next period 2024-03-25 in 24 days, got %s/%d", dayKey(analysis.NextPeriod.StartDate), analysis.NextPeriod.DaysUntil)
	}
	if analysis.Current.Phase != PhaseMenstrual || analysis.Current.DayInCycle != 5 {
		t.Fatalf("expected menstrual day 5, got %#v", analysis.Current)
	}
	if !analysis.HasOvulationPrediction() || dayKey(analysis.Ovulation.Date) != "2024-03-11" {
		t.Fatalf("expected ovulation on 2024-03-11, got %#v", analysis.Ovulation)
	}
	if analysis.HealthScore != 100 {
		t.Fatalf("expected health score 100, got %d", analysis.HealthScore)
	}
	if analysis.DataQuality.Score != 70 || analysis.PredictionReliability != ReliabilityModerate {
		t.Fatalf("expected quality 70 with moderate reliability, got %d/%s", analysis.DataQuality.Score, analysis.PredictionReliability)
	}
	if _, ok := findInsight(analysis.Insights, InsightTitleRegularCycles); !ok {
		t.Fatalf("expected regular cycles insight, got %#v", analysis.Insights)
	}
}

func TestAnalyzeDropsCyclesWithoutPeriodDays(t *testing.T) {
	t.Parallel()

	cycles := []models.CycleRecord{
		cycleOn(t, 1, "2024-01-01", 5),
		cycleOn(t, 2, "2024-01-22", 0),
		cycleOn(t, 3, "2024-01-29", 5),
		cycleOn(t, 4, "2024-02-26", 5),
	}
	analysis, err := DefaultCycleAnalyzer().Analyze(AnalysisInput{Cycles: cycles}, mustParseDay(t, "2024-03-01"))
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if analysis.Statistics.CycleCount != 3 {
		t.Fatalf("expected 3 counted cycles, got %d", analysis.Statistics.CycleCount)
	}
	if analysis.Statistics.AverageCycleLength != 28 || analysis.Statistics.MinCycleLength != 28 {
		t.Fatalf("expected the empty cycle to be ignored, got %#v", analysis.Statistics)
	}
	for _, length := range analysis.Statistics.CycleLengthHistory {
		if length != 28 {
			t.Fatalf("expected only 28-day deltas, got %#v", analysis.Statistics.CycleLengthHistory)
		}
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	t.Parallel()

	cycles := cyclesWithLengths(t, "2025-09-01", 29, 27, 31, 28)
	cycles[1].Notes = map[string]string{"2025-10-02": "migraine"}
	input := AnalysisInput{
		Cycles: cycles,
		Symptoms: []models.SymptomRecord{
			symptomOn(t, "2025-10-01", models.SymptomEntry{Type: "cramps", Intensity: 4}),
			symptomOn(t, "2025-11-14", models.SymptomEntry{Type: "headache", Intensity: 2}),
		},
		Notes:    []models.DailyNote{noteOn(t, "2025-11-20", "slept badly")},
		Settings: AnalysisSettings{AverageCycleLength: 29},
	}
	now := time.Date(2026, time.January, 3, 12, 0, 0, 0, time.UTC)
	analyzer := DefaultCycleAnalyzer()

	first, err := analyzer.Analyze(input, now)
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	second, err := analyzer.Analyze(input, now)
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical analyses\nfirst:  %#v\nsecond: %#v", first, second)
	}
	if input.Cycles[1].Notes["2025-10-02"] != "migraine" || len(input.Symptoms) != 2 {
		t.Fatal("expected Analyze to leave its input untouched")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	analyzer := DefaultCycleAnalyzer()
	if _, err := analyzer.Analyze(AnalysisInput{}, time.Time{}); !errors.Is(err, ErrAnalysisClockMissing) {
		t.Fatalf("expected ErrAnalysisClockMissing, got %v", err)
	}

	cycle := cycleOn(t, 1, "2026-01-01", 5)
	cycle.Symptoms = map[string][]models.SymptomEntry{"2026-13-01": {{Type: "cramps", Intensity: 3}}}
	if _, err := analyzer.Analyze(AnalysisInput{Cycles: []models.CycleRecord{cycle}}, mustParseDay(t, "2026-02-01")); !errors.Is(err, ErrMalformedRecordDate) {
		t.Fatalf("expected ErrMalformedRecordDate, got %v", err)
	}
}

func TestPlaceholderAnalysis(t *testing.T) {
	t.Parallel()

	analysis := DefaultCycleAnalyzer().PlaceholderAnalysis(mustParseDay(t, "2026-02-10"))
	if analysis.Current.Phase != PhaseUnknown || analysis.HasOvulationPrediction() {
		t.Fatalf("expected empty placeholder state, got %#v", analysis.Current)
	}
	if len(analysis.Insights) != 1 || analysis.Insights[0].Type != InsightTip {
		t.Fatalf("expected a single welcome tip, got %#v", analysis.Insights)
	}
	if len(analysis.Recommendations) != 1 || analysis.Recommendations[0] != placeholderEncouragement {
		t.Fatalf("expected encouragement recommendation, got %#v", analysis.Recommendations)
	}
	if analysis.NextPeriod.Confidence != 20 {
		t.Fatalf("expected placeholder forecast confidence 20, got %d", analysis.NextPeriod.Confidence)
	}
}

func TestNewCycleAnalyzerValidatesThresholds(t *testing.T) {
	t.Parallel()

	if err := DefaultAnalysisThresholds().Validate(); err != nil {
		t.Fatalf("expected default thresholds to be valid, got %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*AnalysisThresholds)
	}{
		{name: "inverted cycle bounds", mutate: func(value *AnalysisThresholds) { value.Statistics.MinCycleLength = 50 }},
		{name: "default outside bounds", mutate: func(value *AnalysisThresholds) { value.Statistics.DefaultCycleLength = 60 }},
		{name: "overlapping phases", mutate: func(value *AnalysisThresholds) { value.Phases.LutealStartDay = 15 }},
		{name: "luteal too long", mutate: func(value *AnalysisThresholds) { value.Forecast.LutealPhaseDays = 30 }},
		{name: "band above previous", mutate: func(value *AnalysisThresholds) { value.Forecast.HistoryConfidenceBands[1].Value = 95 }},
		{name: "band below floor", mutate: func(value *AnalysisThresholds) { value.Forecast.OvulationConfidenceFloor = 90 }},
		{name: "empty regularity bands", mutate: func(value *AnalysisThresholds) { value.Insights.RegularityBands = nil }},
		{name: "base outside health range", mutate: func(value *AnalysisThresholds) { value.HealthScore.Base = 120 }},
		{name: "maturity bands not ascending", mutate: func(value *AnalysisThresholds) { value.Maturity.MatureCycles = 20 }},
		{name: "maturity developing zero", mutate: func(value *AnalysisThresholds) { value.Maturity.DevelopingCycles = 0 }},
		{name: "quality bands not descending", mutate: func(value *AnalysisThresholds) { value.Quality.FairScore = 70 }},
		{name: "quality excellent above 100", mutate: func(value *AnalysisThresholds) { value.Quality.ExcellentScore = 120 }},
		{name: "ovulation likelihood increasing", mutate: func(value *AnalysisThresholds) { value.Forecast.OvulationLikelihood = []int{40, 70, 95} }},
		{name: "ovulation likelihood above 100", mutate: func(value *AnalysisThresholds) { value.Forecast.OvulationLikelihood = []int{150, 70} }},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			thresholds := DefaultAnalysisThresholds()
			testCase.mutate(&thresholds)
			if _, err := NewCycleAnalyzer(thresholds); !errors.Is(err, ErrInvalidAnalysisThresholds) {
				t.Fatalf("expected ErrInvalidAnalysisThresholds, got %v", err)
			}
		})
	}
}

func TestCycleAnalyzerThresholdsAreFrozen(t *testing.T) {
	t.Parallel()

	thresholds := DefaultAnalysisThresholds()
	analyzer, err := NewCycleAnalyzer(thresholds)
	if err != nil {
		t.Fatalf("NewCycleAnalyzer() unexpected error: %v", err)
	}

	thresholds.Forecast.HistoryConfidenceBands[0].Value = 10
	copied := analyzer.Thresholds()
	copied.Insights.RegularityBands[0].Level = RegularityVeryIrregular

	if analyzer.historyConfidence(6, 0) != 90 {
		t.Fatal("expected analyzer to ignore changes to the source thresholds")
	}
	if analyzer.ClassifyRegularity(3, 0) != RegularityVeryRegular {
		t.Fatal("expected analyzer to ignore changes to returned thresholds")
	}
}
