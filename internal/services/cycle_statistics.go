package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/cyclesense/internal/models"
)

func (analyzer *CycleAnalyzer) AverageCycleLength(cycles []models.CycleRecord) int {
	return analyzer.averageCycleLength(analyzer.validateCycles(cycles))
}

func (analyzer *CycleAnalyzer) CycleVariation(cycles []models.CycleRecord) float64 {
	return analyzer.cycleVariation(analyzer.validateCycles(cycles))
}

func (analyzer *CycleAnalyzer) AveragePeriodLength(cycles []models.CycleRecord) int {
	return analyzer.averagePeriodLength(analyzer.validateCycles(cycles))
}

func (analyzer *CycleAnalyzer) PeriodVariation(cycles []models.CycleRecord) float64 {
	return analyzer.periodVariation(analyzer.validateCycles(cycles))
}

func (analyzer *CycleAnalyzer) MedianCycleLength(cycles []models.CycleRecord) int {
	return analyzer.medianCycleLength(analyzer.validateCycles(cycles))
}

func (analyzer *CycleAnalyzer) ConsistencyIndex(cycles []models.CycleRecord) int {
	return analyzer.consistencyIndex(analyzer.validateCycles(cycles))
}

func (analyzer *CycleAnalyzer) buildStatistics(cycles []models.CycleRecord) CycleStatistics {
	lengths := analyzer.filteredCycleLengths(cycles)
	stats := CycleStatistics{
		CycleCount:          len(cycles),
		SampleCount:         len(lengths),
		AverageCycleLength:  analyzer.averageCycleLength(cycles),
		MedianCycleLength:   analyzer.medianCycleLength(cycles),
		CycleVariation:      analyzer.cycleVariation(cycles),
		AveragePeriodLength: analyzer.averagePeriodLength(cycles),
		PeriodVariation:     analyzer.periodVariation(cycles),
		ConsistencyIndex:    analyzer.consistencyIndex(cycles),
		CycleLengthHistory:  analyzer.cycleLengthSamples(cycles),
	}
	if len(lengths) > 0 {
		stats.MinCycleLength, stats.MaxCycleLength = minMaxInts(lengths)
	}
	return stats
}

// cycleLengthSamples returns consecutive start-date deltas inside the
// plausible cycle range, in chronological order.
func (analyzer *CycleAnalyzer) cycleLengthSamples(cycles []models.CycleRecord) []int {
	bounds := analyzer.thresholds.Statistics
	if len(cycles) < 2 {
		return []int{}
	}

	lengths := make([]int, 0, len(cycles)-1)
	for index := 1; index < len(cycles); index++ {
		length := daysBetween(cycles[index-1].StartDate, cycles[index].StartDate)
		if length < bounds.MinCycleLength || length > bounds.MaxCycleLength {
			continue
		}
		lengths = append(lengths, length)
	}
	return lengths
}

func (analyzer *CycleAnalyzer) filteredCycleLengths(cycles []models.CycleRecord) []int {
	return analyzer.removeOutliers(analyzer.cycleLengthSamples(cycles))
}

func (analyzer *CycleAnalyzer) filteredPeriodLengths(cycles []models.CycleRecord) []int {
	bounds := analyzer.thresholds.Statistics
	lengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		length := len(cycle.PeriodDays)
		if length < bounds.MinPeriodLength || length > bounds.MaxPeriodLength {
			continue
		}
		lengths = append(lengths, length)
	}
	return analyzer.removeOutliers(lengths)
}

func (analyzer *CycleAnalyzer) averageCycleLength(cycles []models.CycleRecord) int {
	lengths := analyzer.filteredCycleLengths(cycles)
	if len(cycles) < 2 || len(lengths) == 0 {
		return analyzer.thresholds.Statistics.DefaultCycleLength
	}
	return int(math.Round(meanInts(lengths)))
}

func (analyzer *CycleAnalyzer) cycleVariation(cycles []models.CycleRecord) float64 {
	lengths := analyzer.filteredCycleLengths(cycles)
	if len(cycles) < analyzer.thresholds.Statistics.MinVariationCycles || len(lengths) == 0 {
		return 0
	}
	return roundTo(populationStdDev(lengths), 1)
}

func (analyzer *CycleAnalyzer) averagePeriodLength(cycles []models.CycleRecord) int {
	lengths := analyzer.filteredPeriodLengths(cycles)
	if len(lengths) == 0 {
		return analyzer.thresholds.Statistics.DefaultPeriodLength
	}
	return int(math.Round(meanInts(lengths)))
}

func (analyzer *CycleAnalyzer) periodVariation(cycles []models.CycleRecord) float64 {
	lengths := analyzer.filteredPeriodLengths(cycles)
	if len(cycles) < analyzer.thresholds.Statistics.MinVariationCycles || len(lengths) == 0 {
		return 0
	}
	return roundTo(populationStdDev(lengths), 1)
}

func (analyzer *CycleAnalyzer) medianCycleLength(cycles []models.CycleRecord) int {
	lengths := analyzer.filteredCycleLengths(cycles)
	if len(cycles) < 2 || len(lengths) == 0 {
		return analyzer.thresholds.Statistics.DefaultCycleLength
	}
	return medianInt(lengths)
}

func (analyzer *CycleAnalyzer) consistencyIndex(cycles []models.CycleRecord) int {
	lengths := analyzer.filteredCycleLengths(cycles)
	if len(cycles) < analyzer.thresholds.Statistics.MinVariationCycles || len(lengths) == 0 {
		return 0
	}
	mean := meanInts(lengths)
	if mean <= 0 {
		return 0
	}
	index := int(math.Round((1 - populationStdDev(lengths)/mean) * 100))
	if index < 0 {
		return 0
	}
	return index
}

// removeOutliers drops values outside Q1-k*IQR..Q3+k*IQR and keeps the
// original order. Small samples are returned unchanged.
func (analyzer *CycleAnalyzer) removeOutliers(values []int) []int {
	bounds := analyzer.thresholds.Statistics
	if len(values) < bounds.MinOutlierSamples {
		return append([]int{}, values...)
	}

	lower, upper := outlierFences(values, bounds.OutlierIQRFactor)
	kept := make([]int, 0, len(values))
	for _, value := range values {
		if float64(value) < lower || float64(value) > upper {
			continue
		}
		kept = append(kept, value)
	}
	return kept
}

func outlierFences(values []int, factor float64) (float64, float64) {
	sorted := append([]int{}, values...)
	sort.Ints(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return q1 - factor*iqr, q3 + factor*iqr
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []int, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	position := float64(len(sorted)-1) * p
	lower := int(math.Floor(position))
	upper := int(math.Ceil(position))
	if lower == upper {
		return float64(sorted[lower])
	}
	weight := position - float64(lower)
	return float64(sorted[lower]) + (float64(sorted[upper])-float64(sorted[lower]))*weight
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func populationStdDev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := meanInts(values)
	var sumSquares float64
	for _, value := range values {
		delta := float64(value) - mean
		sumSquares += delta * delta
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

func medianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]int{}, values...)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return int(math.Round(float64(sorted[mid-1]+sorted[mid]) / 2))
}

func minMaxInts(values []int) (int, int) {
	minValue, maxValue := values[0], values[0]
	for _, value := range values[1:] {
		if value < minValue {
			minValue = value
		}
		if value > maxValue {
			maxValue = value
		}
	}
	return minValue, maxValue
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
