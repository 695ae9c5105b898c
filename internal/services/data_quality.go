package services

import (
	"math"
	"time"

	"github.com/terraincognita07/cyclesense/internal/models"
)

const (
	completenessFullCycles     = 40
	completenessSomeCycles     = 20
	completenessFullSymptoms   = 30
	completenessSomeSymptoms   = 15
	completenessFullNotes      = 30
	completenessSomeNotes      = 15
	consistencyStableVariation = 50
	consistencyMixedVariation  = 30
	consistencyHighVariation   = 15
	consistencyRecentData      = 50
	consistencyStaleData       = 20
	maxQualityComponent        = 100
)

const (
	suggestionMoreCycles   = "Log at least 3 cycles to enable regularity analysis."
	suggestionFirstCycle   = "Log your first period to start building predictions."
	suggestionSymptoms     = "Log symptoms a few times per cycle to reveal patterns."
	suggestionNotes        = "Add short daily notes to give your data more context."
	suggestionVariation    = "Cycle lengths vary a lot; keep logging every period start to refine predictions."
	suggestionRecentPeriod = "Log your most recent period so predictions stay current."
)

func (analyzer *CycleAnalyzer) assessDataQuality(cycles []models.CycleRecord, symptoms []models.SymptomRecord, notes []models.DailyNote, variation float64, today time.Time) DataQuality {
	rules := analyzer.thresholds.Quality
	suggestions := make([]string, 0, 4)
	cycleCount := len(cycles)

	completeness := 0
	switch {
	case cycleCount >= rules.FullCycleCount:
		completeness += completenessFullCycles
	case cycleCount >= 1:
		completeness += completenessSomeCycles
		suggestions = append(suggestions, suggestionMoreCycles)
	default:
		suggestions = append(suggestions, suggestionFirstCycle)
	}

	switch {
	case cycleCount > 0 && len(symptoms) >= rules.SymptomsPerCycle*cycleCount:
		completeness += completenessFullSymptoms
	case len(symptoms) > 0:
		completeness += completenessSomeSymptoms
		suggestions = append(suggestions, suggestionSymptoms)
	default:
		suggestions = append(suggestions, suggestionSymptoms)
	}

	switch {
	case cycleCount > 0 && len(notes) >= rules.NotesPerCycle*cycleCount:
		completeness += completenessFullNotes
	case len(notes) > 0:
		completeness += completenessSomeNotes
		suggestions = append(suggestions, suggestionNotes)
	default:
		suggestions = append(suggestions, suggestionNotes)
	}
	if completeness > maxQualityComponent {
		completeness = maxQualityComponent
	}

	consistency := 0
	if cycleCount > 0 {
		switch {
		case variation <= rules.StableVariationDays:
			consistency += consistencyStableVariation
		case variation <= rules.UnstableVariationDays:
			consistency += consistencyMixedVariation
			suggestions = append(suggestions, suggestionVariation)
		default:
			consistency += consistencyHighVariation
			suggestions = append(suggestions, suggestionVariation)
		}

		latest := cycles[cycleCount-1].StartDate
		if daysBetween(latest, today) <= rules.RecencyWindowDays {
			consistency += consistencyRecentData
		} else {
			consistency += consistencyStaleData
			suggestions = append(suggestions, suggestionRecentPeriod)
		}
	}
	if consistency > maxQualityComponent {
		consistency = maxQualityComponent
	}

	score := int(math.Round(float64(completeness+consistency) / 2))
	return DataQuality{
		Score:        score,
		Completeness: completeness,
		Consistency:  consistency,
		Level:        analyzer.qualityLevel(score),
		Suggestions:  suggestions,
	}
}

func (analyzer *CycleAnalyzer) qualityLevel(score int) QualityLevel {
	rules := analyzer.thresholds.Quality
	switch {
	case score >= rules.ExcellentScore:
		return QualityExcellent
	case score >= rules.GoodScore:
		return QualityGood
	case score >= rules.FairScore:
		return QualityFair
	default:
		return QualityPoor
	}
}

func (analyzer *CycleAnalyzer) predictionReliability(cycleCount int, quality DataQuality) PredictionReliability {
	if cycleCount < analyzer.thresholds.Forecast.MinHistoryCycleCount {
		return ReliabilityInsufficient
	}
	switch quality.Level {
	case QualityExcellent:
		return ReliabilityHigh
	case QualityGood:
		return ReliabilityModerate
	case QualityFair:
		return ReliabilityLow
	default:
		return ReliabilityVeryLow
	}
}

const (
	healthOptimalCycleBonus    = 15
	healthAcceptableCycleBonus = 5
	healthSevereSymptomPenalty = 15
	healthMildSymptomBonus     = 10
)

var regularityHealthBonus = map[RegularityLevel]int{
	RegularityVeryRegular:       15,
	RegularityRegular:           10,
	RegularitySomewhatIrregular: 5,
}

func (analyzer *CycleAnalyzer) healthScore(stats CycleStatistics, regularity RegularityLevel, symptoms []models.SymptomRecord) int {
	rules := analyzer.thresholds.HealthScore
	score := rules.Base

	if stats.CycleCount >= 2 && stats.SampleCount > 0 {
		average := stats.AverageCycleLength
		switch {
		case average >= rules.OptimalMinCycle && average <= rules.OptimalMaxCycle:
			score += healthOptimalCycleBonus
		case average >= rules.AcceptableMinCycle && average <= rules.AcceptableMaxCycle:
			score += healthAcceptableCycleBonus
		}
	}

	score += regularityHealthBonus[regularity]

	if len(symptoms) > 0 {
		severe := 0
		for _, record := range symptoms {
			if hasSevereSymptom(record, analyzer.thresholds.Insights.SevereSymptomIntensity) {
				severe++
			}
		}
		ratio := float64(severe) / float64(len(symptoms))
		switch {
		case ratio > rules.HighSevereRatio:
			score -= healthSevereSymptomPenalty
		case ratio < rules.LowSevereRatio:
			score += healthMildSymptomBonus
		}
	}

	if score < rules.Min {
		return rules.Min
	}
	if score > rules.Max {
		return rules.Max
	}
	return score
}

func hasSevereSymptom(record models.SymptomRecord, severeIntensity int) bool {
	for _, entry := range record.Symptoms {
		if entry.Intensity >= severeIntensity {
			return true
		}
	}
	return false
}
