package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/terraincognita07/cyclesense/internal/models"
)

const (
	priorityIrregularCycles = 9
	priorityCycleLength     = 8
	priorityLongPeriod      = 7
	priorityCommonSymptoms  = 5
	priorityRegularCycles   = 4
	priorityKeepTracking    = 3

	maxListedSymptoms = 3
)

const (
	InsightTitleShortCycles     = "Shorter cycles"
	InsightTitleLongCycles      = "Longer cycles"
	InsightTitleExtendedPeriods = "Extended periods"
	InsightTitleIrregularCycles = "Irregular cycles"
	InsightTitleRegularCycles   = "Regular cycles"
	InsightTitleCommonSymptoms  = "Common symptoms"
	InsightTitleKeepTracking    = "Keep tracking"
)

func (analyzer *CycleAnalyzer) ClassifyRegularity(cycleCount int, variation float64) RegularityLevel {
	if cycleCount < analyzer.thresholds.Statistics.MinVariationCycles {
		return RegularityInsufficientData
	}
	for _, band := range analyzer.thresholds.Insights.RegularityBands {
		if variation <= band.MaxVariation {
			return band.Level
		}
	}
	return RegularityVeryIrregular
}

type symptomCount struct {
	Type  string
	Count int
}

func (analyzer *CycleAnalyzer) buildInsights(stats CycleStatistics, regularity RegularityLevel, symptoms []models.SymptomRecord) []HealthInsight {
	rules := analyzer.thresholds.Insights
	insights := make([]HealthInsight, 0, 4)

	if stats.CycleCount >= 2 && stats.SampleCount > 0 {
		if stats.AverageCycleLength < rules.ShortCycleDays {
			insights = append(insights, HealthInsight{
				Type:       InsightWarning,
				Title:      InsightTitleShortCycles,
				Message:    fmt.Sprintf("Your average cycle is %d days, shorter than typical. Consider mentioning it at your next checkup.", stats.AverageCycleLength),
				Actionable: true,
				Priority:   priorityCycleLength,
			})
		}
		if stats.AverageCycleLength > rules.LongCycleDays {
			insights = append(insights, HealthInsight{
				Type:       InsightWarning,
				Title:      InsightTitleLongCycles,
				Message:    fmt.Sprintf("Your average cycle is %d days, longer than typical. Consider discussing it with a healthcare provider.", stats.AverageCycleLength),
				Actionable: true,
				Priority:   priorityCycleLength,
			})
		}
	}

	if stats.CycleCount > 0 && stats.AveragePeriodLength > rules.LongPeriodDays {
		insights = append(insights, HealthInsight{
			Type:       InsightWarning,
			Title:      InsightTitleExtendedPeriods,
			Message:    fmt.Sprintf("Your periods last %d days on average. Periods longer than %d days are worth discussing with a healthcare provider.", stats.AveragePeriodLength, rules.LongPeriodDays),
			Actionable: true,
			Priority:   priorityLongPeriod,
		})
	}

	switch regularity {
	case RegularityIrregular, RegularityVeryIrregular:
		insights = append(insights, HealthInsight{
			Type:       InsightWarning,
			Title:      InsightTitleIrregularCycles,
			Message:    fmt.Sprintf("Your cycle length varies by about %.1f days. Stress, sleep and health conditions can all play a role.", stats.CycleVariation),
			Actionable: true,
			Priority:   priorityIrregularCycles,
		})
	case RegularityVeryRegular, RegularityRegular:
		insights = append(insights, HealthInsight{
			Type:     InsightPositive,
			Title:    InsightTitleRegularCycles,
			Message:  fmt.Sprintf("Your cycles are consistent, varying by only %.1f days.", stats.CycleVariation),
			Priority: priorityRegularCycles,
		})
	}

	if frequent := analyzer.frequentSymptoms(symptoms); len(frequent) > 0 {
		listed := make([]string, 0, maxListedSymptoms)
		for index, entry := range frequent {
			if index == maxListedSymptoms {
				break
			}
			share := int(math.Round(float64(entry.Count) / float64(len(symptoms)) * 100))
			listed = append(listed, fmt.Sprintf("%s (%d%%)", symptomLabel(entry.Type), share))
		}
		insights = append(insights, HealthInsight{
			Type:       InsightInfo,
			Title:      InsightTitleCommonSymptoms,
			Message:    fmt.Sprintf("You frequently log %s. Tracking intensity helps spot what brings relief.", strings.Join(listed, ", ")),
			Actionable: true,
			Priority:   priorityCommonSymptoms,
		})
	}

	if stats.CycleCount < rules.MinInsightCycles {
		remaining := rules.MinInsightCycles - stats.CycleCount
		insights = append(insights, HealthInsight{
			Type:       InsightTip,
			Title:      InsightTitleKeepTracking,
			Message:    fmt.Sprintf("Log %d more cycle(s) to unlock regularity analysis and more accurate predictions.", remaining),
			Actionable: true,
			Priority:   priorityKeepTracking,
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority > insights[j].Priority
	})
	return insights
}

// frequentSymptoms counts the records each symptom type appears in and keeps
// the types that reach max(min count, records*ratio).
func (analyzer *CycleAnalyzer) frequentSymptoms(symptoms []models.SymptomRecord) []symptomCount {
	rules := analyzer.thresholds.Insights
	if len(symptoms) == 0 {
		return nil
	}

	threshold := math.Max(float64(rules.FrequentSymptomMinCount), float64(len(symptoms))*rules.FrequentSymptomRatio)
	counts := recordCountsByType(symptoms)
	frequent := make([]symptomCount, 0, len(counts))
	for symptomType, count := range counts {
		if float64(count) >= threshold {
			frequent = append(frequent, symptomCount{Type: symptomType, Count: count})
		}
	}

	sort.Slice(frequent, func(i, j int) bool {
		if frequent[i].Count == frequent[j].Count {
			return frequent[i].Type < frequent[j].Type
		}
		return frequent[i].Count > frequent[j].Count
	})
	return frequent
}

func recordCountsByType(symptoms []models.SymptomRecord) map[string]int {
	counts := make(map[string]int)
	for _, record := range symptoms {
		seen := make(map[string]bool, len(record.Symptoms))
		for _, entry := range record.Symptoms {
			if seen[entry.Type] {
				continue
			}
			seen[entry.Type] = true
			counts[entry.Type]++
		}
	}
	return counts
}

type symptomAccumulator struct {
	occurrences    int
	intensityTotal int
	phases         map[CyclePhase]int
}

var correlatedPhases = []CyclePhase{PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal}

func (analyzer *CycleAnalyzer) symptomPatterns(cycles []models.CycleRecord, symptoms []models.SymptomRecord, averageCycleLength int) []SymptomPattern {
	if len(symptoms) == 0 {
		return []SymptomPattern{}
	}

	accumulators := make(map[string]*symptomAccumulator)
	for _, record := range symptoms {
		phase := analyzer.phaseOnDate(cycles, record.Date, averageCycleLength)
		strongest := make(map[string]int, len(record.Symptoms))
		for _, entry := range record.Symptoms {
			if entry.Intensity > strongest[entry.Type] {
				strongest[entry.Type] = entry.Intensity
			}
		}
		for symptomType, intensity := range strongest {
			accumulator, ok := accumulators[symptomType]
			if !ok {
				accumulator = &symptomAccumulator{phases: make(map[CyclePhase]int)}
				accumulators[symptomType] = accumulator
			}
			accumulator.occurrences++
			accumulator.intensityTotal += intensity
			if phase != PhaseUnknown {
				accumulator.phases[phase]++
			}
		}
	}

	total := float64(len(symptoms))
	patterns := make([]SymptomPattern, 0, len(accumulators))
	for symptomType, accumulator := range accumulators {
		frequency := float64(accumulator.occurrences) / total
		if frequency < analyzer.thresholds.Insights.SymptomPatternMinFrequency {
			continue
		}
		patterns = append(patterns, SymptomPattern{
			Type:             symptomType,
			Occurrences:      accumulator.occurrences,
			Frequency:        roundTo(frequency, 2),
			AverageIntensity: roundTo(float64(accumulator.intensityTotal)/float64(accumulator.occurrences), 1),
			MostCommonPhase:  dominantPhase(accumulator.phases),
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Occurrences == patterns[j].Occurrences {
			return patterns[i].Type < patterns[j].Type
		}
		return patterns[i].Occurrences > patterns[j].Occurrences
	})
	return patterns
}

func dominantPhase(counts map[CyclePhase]int) CyclePhase {
	best := PhaseUnknown
	bestCount := 0
	for _, phase := range correlatedPhases {
		if counts[phase] > bestCount {
			best = phase
			bestCount = counts[phase]
		}
	}
	return best
}

func (analyzer *CycleAnalyzer) ClassifyDataMaturity(cycleCount int) DataMaturity {
	maturity := analyzer.thresholds.Maturity
	switch {
	case cycleCount < maturity.DevelopingCycles:
		return MaturityNew
	case cycleCount < maturity.MatureCycles:
		return MaturityDeveloping
	case cycleCount < maturity.ExtensiveCycles:
		return MaturityMature
	default:
		return MaturityExtensive
	}
}

func (analyzer *CycleAnalyzer) buildRecommendations(state CurrentCycleState, nextPeriod PeriodPrediction, regularity RegularityLevel, insights []HealthInsight, quality DataQuality) []string {
	recommendations := make([]string, 0, 4)
	add := func(message string) {
		for _, existing := range recommendations {
			if existing == message {
				return
			}
		}
		recommendations = append(recommendations, message)
	}

	switch state.Phase {
	case PhaseMenstrual:
		add("Rest when you need to and stay hydrated; gentle movement and warmth can ease cramps.")
	case PhaseFollicular:
		add("Energy often rises in this phase, a good time for more demanding workouts.")
	case PhaseOvulatory:
		add("You are likely near ovulation; plan accordingly if you are trying to conceive or avoid pregnancy.")
	case PhaseLuteal:
		add("Prioritize sleep and balanced meals; premenstrual symptoms may appear in the coming days.")
	default:
		add("Log the start of your next period to unlock personalized guidance.")
	}

	if nextPeriod.IsOverdue && nextPeriod.OverdueBy > analyzer.thresholds.Forecast.LateFollowUpDays {
		add(fmt.Sprintf("Your period is %d days later than predicted; consider a pregnancy test or talk to a healthcare provider.", nextPeriod.OverdueBy))
	}

	if regularity == RegularityIrregular || regularity == RegularityVeryIrregular {
		add("Consider discussing your cycle variability with a healthcare provider.")
	}

	for _, insight := range insights {
		if insight.Type == InsightWarning && insight.Title == InsightTitleExtendedPeriods {
			add("Talk to a healthcare provider if periods regularly last longer than a week.")
		}
		if insight.Type == InsightInfo && insight.Title == InsightTitleCommonSymptoms {
			add("Note what you did on low-symptom days to find remedies that work for you.")
		}
	}

	if quality.Score < analyzer.thresholds.Quality.GoodScore {
		add("Log symptoms and notes more regularly to improve prediction accuracy.")
	}
	return recommendations
}

func symptomLabel(symptomType string) string {
	return strings.ReplaceAll(strings.TrimSpace(symptomType), "_", " ")
}
