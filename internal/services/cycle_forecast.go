package services

import (
	"fmt"
	"math"
	"time"

	"github.com/terraincognita07/cyclesense/internal/models"
)

func (analyzer *CycleAnalyzer) predictNextPeriod(cycles []models.CycleRecord, stats CycleStatistics, settings AnalysisSettings, today time.Time) PeriodPrediction {
	forecast := analyzer.thresholds.Forecast
	bounds := analyzer.thresholds.Statistics

	var (
		start      time.Time
		confidence int
		basis      PredictionBasis
		reason     string
	)

	switch {
	case len(cycles) == 0:
		start = addDays(today, bounds.DefaultCycleLength)
		confidence = forecast.NoHistoryConfidence
		basis = BasisNoHistory
		reason = fmt.Sprintf("No historical data; assuming a %d-day cycle from today.", bounds.DefaultCycleLength)
	case len(cycles) < forecast.MinHistoryCycleCount:
		cycleLength := bounds.DefaultCycleLength
		basis = BasisDefaultLength
		reason = fmt.Sprintf("Only one cycle logged; using the default %d-day cycle.", cycleLength)
		if settings.AverageCycleLength >= bounds.MinCycleLength && settings.AverageCycleLength <= bounds.MaxCycleLength {
			cycleLength = settings.AverageCycleLength
			basis = BasisProfileSetting
			reason = fmt.Sprintf("Only one cycle logged; using your configured %d-day cycle.", cycleLength)
		}
		start = addDays(cycles[len(cycles)-1].StartDate, cycleLength)
		confidence = forecast.SingleCycleConfidence
	default:
		start = addDays(cycles[len(cycles)-1].StartDate, stats.AverageCycleLength)
		confidence = analyzer.historyConfidence(len(cycles), stats.CycleVariation)
		basis = BasisHistory
		reason = fmt.Sprintf("Based on %d logged cycles averaging %d days (variation %.1f days).",
			len(cycles), stats.AverageCycleLength, stats.CycleVariation)
	}

	uncertainty := int(math.Round(stats.CycleVariation))
	if uncertainty < forecast.MinWindowUncertainty {
		uncertainty = forecast.MinWindowUncertainty
	}

	daysUntil := daysBetween(today, start)
	prediction := PeriodPrediction{
		StartDate:       start,
		EndDate:         addDays(start, stats.AveragePeriodLength-1),
		WindowStart:     addDays(start, -uncertainty),
		WindowEnd:       addDays(start, uncertainty),
		UncertaintyDays: uncertainty,
		DaysUntil:       daysUntil,
		IsOverdue:       daysUntil < 0,
		Confidence:      confidence,
		ConfidenceLevel: analyzer.confidenceLevel(confidence),
		Basis:           basis,
		Reason:          reason,
	}
	if prediction.IsOverdue {
		prediction.OverdueBy = -daysUntil
	}
	return prediction
}

// historyConfidence is min(base+perCycle*n, cap) below the optimal cycle
// count, but never more than the full-history band for the same variation.
// With the default table and variation above 5 days, 3 to 5 cycles therefore
// score 60 (the band floor) instead of 65 to 70, so adding cycles can only
// keep or raise confidence.
func (analyzer *CycleAnalyzer) historyConfidence(cycleCount int, variation float64) int {
	forecast := analyzer.thresholds.Forecast
	band := bandValue(forecast.HistoryConfidenceBands, variation, forecast.HistoryConfidenceFloor)
	if cycleCount >= forecast.OptimalCycleCount {
		return band
	}

	sparse := forecast.SparseConfidenceBase + cycleCount*forecast.SparseConfidencePerCycle
	if sparse > forecast.SparseConfidenceCap {
		sparse = forecast.SparseConfidenceCap
	}
	if sparse > band {
		return band
	}
	return sparse
}

func (analyzer *CycleAnalyzer) predictOvulation(cycles []models.CycleRecord, stats CycleStatistics, nextPeriod PeriodPrediction, today time.Time) *OvulationPrediction {
	forecast := analyzer.thresholds.Forecast
	if len(cycles) < forecast.MinOvulationCycles {
		return nil
	}

	ovulationDate := addDays(nextPeriod.StartDate, -forecast.LutealPhaseDays)
	confidence := bandValue(forecast.OvulationConfidenceBands, stats.CycleVariation, forecast.OvulationConfidenceFloor)
	return &OvulationPrediction{
		Date:               ovulationDate,
		FertileWindowStart: addDays(ovulationDate, -forecast.FertileWindowDays),
		FertileWindowEnd:   ovulationDate,
		DaysUntil:          daysBetween(today, ovulationDate),
		Confidence:         confidence,
		ConfidenceLevel:    analyzer.confidenceLevel(confidence),
	}
}

func (analyzer *CycleAnalyzer) fertilityOutlook(cycles []models.CycleRecord, stats CycleStatistics, state CurrentCycleState) FertilityOutlook {
	forecast := analyzer.thresholds.Forecast
	if len(cycles) < forecast.MinOvulationCycles {
		return FertilityOutlook{}
	}

	ovulationDay := stats.AverageCycleLength - forecast.LutealPhaseDays
	outlook := FertilityOutlook{OvulationDay: ovulationDay}
	if state.DayInCycle <= 0 {
		return outlook
	}

	distance := state.DayInCycle - ovulationDay
	if distance < 0 {
		distance = -distance
	}
	if distance < len(forecast.OvulationLikelihood) {
		outlook.Likelihood = forecast.OvulationLikelihood[distance]
	}
	outlook.InFertileWindow = state.DayInCycle >= ovulationDay-forecast.FertileWindowDays && state.DayInCycle <= ovulationDay
	return outlook
}

func (analyzer *CycleAnalyzer) confidenceLevel(confidence int) ConfidenceLevel {
	forecast := analyzer.thresholds.Forecast
	switch {
	case confidence >= forecast.HighConfidence:
		return ConfidenceHigh
	case confidence >= forecast.MediumConfidence:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
