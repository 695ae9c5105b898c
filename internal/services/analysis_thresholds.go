package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/cyclesense/internal/models"
)

var ErrInvalidAnalysisThresholds = errors.New("invalid analysis thresholds")

// VariationBand maps an upper bound on cycle variation (days) to a value.
type VariationBand struct {
	MaxVariation float64 `yaml:"max_variation" json:"max_variation"`
	Value        int     `yaml:"value" json:"value"`
}

type RegularityBand struct {
	MaxVariation float64         `yaml:"max_variation" json:"max_variation"`
	Level        RegularityLevel `yaml:"level" json:"level"`
}

type StatisticsThresholds struct {
	MinCycleLength      int     `yaml:"min_cycle_length"`
	MaxCycleLength      int     `yaml:"max_cycle_length"`
	DefaultCycleLength  int     `yaml:"default_cycle_length"`
	MinPeriodLength     int     `yaml:"min_period_length"`
	MaxPeriodLength     int     `yaml:"max_period_length"`
	DefaultPeriodLength int     `yaml:"default_period_length"`
	OutlierIQRFactor    float64 `yaml:"outlier_iqr_factor"`
	MinOutlierSamples   int     `yaml:"min_outlier_samples"`
	MinVariationCycles  int     `yaml:"min_variation_cycles"`
}

type PhaseThresholds struct {
	FollicularMaxDay  int `yaml:"follicular_max_day"`
	OvulatoryStartDay int `yaml:"ovulatory_start_day"`
	OvulatoryEndDay   int `yaml:"ovulatory_end_day"`
	LutealStartDay    int `yaml:"luteal_start_day"`
	// ScaleBoundaries shifts the ovulatory and luteal boundaries by the
	// difference between the personal average and the default cycle length.
	ScaleBoundaries bool `yaml:"scale_boundaries"`
}

type ForecastThresholds struct {
	LutealPhaseDays          int             `yaml:"luteal_phase_days"`
	FertileWindowDays        int             `yaml:"fertile_window_days"`
	NoHistoryConfidence      int             `yaml:"no_history_confidence"`
	SingleCycleConfidence    int             `yaml:"single_cycle_confidence"`
	OptimalCycleCount        int             `yaml:"optimal_cycle_count"`
	HistoryConfidenceBands   []VariationBand `yaml:"history_confidence_bands"`
	HistoryConfidenceFloor   int             `yaml:"history_confidence_floor"`
	SparseConfidenceBase     int             `yaml:"sparse_confidence_base"`
	SparseConfidencePerCycle int             `yaml:"sparse_confidence_per_cycle"`
	SparseConfidenceCap      int             `yaml:"sparse_confidence_cap"`
	MinWindowUncertainty     int             `yaml:"min_window_uncertainty"`
	OvulationConfidenceBands []VariationBand `yaml:"ovulation_confidence_bands"`
	OvulationConfidenceFloor int             `yaml:"ovulation_confidence_floor"`
	// OvulationLikelihood is indexed by the distance in days from the
	// estimated ovulation day; distances past the end are 0.
	OvulationLikelihood  []int `yaml:"ovulation_likelihood"`
	HighConfidence       int   `yaml:"high_confidence"`
	MediumConfidence     int   `yaml:"medium_confidence"`
	LateFollowUpDays     int   `yaml:"late_follow_up_days"`
	MinOvulationCycles   int   `yaml:"min_ovulation_cycles"`
	MinHistoryCycleCount int   `yaml:"min_history_cycle_count"`
}

type InsightThresholds struct {
	RegularityBands            []RegularityBand `yaml:"regularity_bands"`
	ShortCycleDays             int              `yaml:"short_cycle_days"`
	LongCycleDays              int              `yaml:"long_cycle_days"`
	LongPeriodDays             int              `yaml:"long_period_days"`
	FrequentSymptomRatio       float64          `yaml:"frequent_symptom_ratio"`
	FrequentSymptomMinCount    int              `yaml:"frequent_symptom_min_count"`
	MinInsightCycles           int              `yaml:"min_insight_cycles"`
	SymptomPatternMinFrequency float64          `yaml:"symptom_pattern_min_frequency"`
	SevereSymptomIntensity     int              `yaml:"severe_symptom_intensity"`
}

type QualityThresholds struct {
	FullCycleCount        int     `yaml:"full_cycle_count"`
	SymptomsPerCycle      int     `yaml:"symptoms_per_cycle"`
	NotesPerCycle         int     `yaml:"notes_per_cycle"`
	StableVariationDays   float64 `yaml:"stable_variation_days"`
	UnstableVariationDays float64 `yaml:"unstable_variation_days"`
	RecencyWindowDays     int     `yaml:"recency_window_days"`
	ExcellentScore        int     `yaml:"excellent_score"`
	GoodScore             int     `yaml:"good_score"`
	FairScore             int     `yaml:"fair_score"`
}

type HealthScoreThresholds struct {
	Base               int     `yaml:"base"`
	Min                int     `yaml:"min"`
	Max                int     `yaml:"max"`
	OptimalMinCycle    int     `yaml:"optimal_min_cycle"`
	OptimalMaxCycle    int     `yaml:"optimal_max_cycle"`
	AcceptableMinCycle int     `yaml:"acceptable_min_cycle"`
	AcceptableMaxCycle int     `yaml:"acceptable_max_cycle"`
	HighSevereRatio    float64 `yaml:"high_severe_ratio"`
	LowSevereRatio     float64 `yaml:"low_severe_ratio"`
}

type MaturityThresholds struct {
	DevelopingCycles int `yaml:"developing_cycles"`
	MatureCycles     int `yaml:"mature_cycles"`
	ExtensiveCycles  int `yaml:"extensive_cycles"`
}

// AnalysisThresholds is the complete constant table consumed by CycleAnalyzer.
type AnalysisThresholds struct {
	Statistics  StatisticsThresholds  `yaml:"statistics"`
	Phases      PhaseThresholds       `yaml:"phases"`
	Forecast    ForecastThresholds    `yaml:"forecast"`
	Insights    InsightThresholds     `yaml:"insights"`
	Quality     QualityThresholds     `yaml:"quality"`
	HealthScore HealthScoreThresholds `yaml:"health_score"`
	Maturity    MaturityThresholds    `yaml:"maturity"`
}

func DefaultAnalysisThresholds() AnalysisThresholds {
	return AnalysisThresholds{
		Statistics: StatisticsThresholds{
			MinCycleLength:      21,
			MaxCycleLength:      45,
			DefaultCycleLength:  models.DefaultCycleLength,
			MinPeriodLength:     2,
			MaxPeriodLength:     8,
			DefaultPeriodLength: models.DefaultPeriodLength,
			OutlierIQRFactor:    1.5,
			MinOutlierSamples:   4,
			MinVariationCycles:  3,
		},
		Phases: PhaseThresholds{
			FollicularMaxDay:  7,
			OvulatoryStartDay: 12,
			OvulatoryEndDay:   16,
			LutealStartDay:    17,
		},
		Forecast: ForecastThresholds{
			LutealPhaseDays:       14,
			FertileWindowDays:     5,
			NoHistoryConfidence:   20,
			SingleCycleConfidence: 35,
			OptimalCycleCount:     6,
			HistoryConfidenceBands: []VariationBand{
				{MaxVariation: 3, Value: 90},
				{MaxVariation: 5, Value: 75},
			},
			HistoryConfidenceFloor:   60,
			SparseConfidenceBase:     50,
			SparseConfidencePerCycle: 5,
			SparseConfidenceCap:      70,
			MinWindowUncertainty:     3,
			OvulationConfidenceBands: []VariationBand{
				{MaxVariation: 3, Value: 80},
				{MaxVariation: 5, Value: 65},
			},
			OvulationConfidenceFloor: 45,
			OvulationLikelihood:      []int{95, 70, 40, 20},
			HighConfidence:           80,
			MediumConfidence:         60,
			LateFollowUpDays:         7,
			MinOvulationCycles:       2,
			MinHistoryCycleCount:     2,
		},
		Insights: InsightThresholds{
			RegularityBands: []RegularityBand{
				{MaxVariation: 2, Level: RegularityVeryRegular},
				{MaxVariation: 4, Level: RegularityRegular},
				{MaxVariation: 7, Level: RegularitySomewhatIrregular},
				{MaxVariation: 10, Level: RegularityIrregular},
			},
			ShortCycleDays:             24,
			LongCycleDays:              35,
			LongPeriodDays:             7,
			FrequentSymptomRatio:       0.3,
			FrequentSymptomMinCount:    3,
			MinInsightCycles:           3,
			SymptomPatternMinFrequency: 0.2,
			SevereSymptomIntensity:     4,
		},
		Quality: QualityThresholds{
			FullCycleCount:        3,
			SymptomsPerCycle:      3,
			NotesPerCycle:         5,
			StableVariationDays:   5,
			UnstableVariationDays: 10,
			RecencyWindowDays:     60,
			ExcellentScore:        80,
			GoodScore:             60,
			FairScore:             40,
		},
		HealthScore: HealthScoreThresholds{
			Base:               70,
			Min:                10,
			Max:                100,
			OptimalMinCycle:    26,
			OptimalMaxCycle:    32,
			AcceptableMinCycle: 21,
			AcceptableMaxCycle: 35,
			HighSevereRatio:    0.5,
			LowSevereRatio:     0.2,
		},
		Maturity: MaturityThresholds{
			DevelopingCycles: 2,
			MatureCycles:     4,
			ExtensiveCycles:  12,
		},
	}
}

func (thresholds AnalysisThresholds) Validate() error {
	stats := thresholds.Statistics
	switch {
	case stats.MinCycleLength <= 0 || stats.MinCycleLength > stats.MaxCycleLength:
		return fmt.Errorf("%w: cycle length bounds %d..%d", ErrInvalidAnalysisThresholds, stats.MinCycleLength, stats.MaxCycleLength)
	case stats.DefaultCycleLength < stats.MinCycleLength || stats.DefaultCycleLength > stats.MaxCycleLength:
		return fmt.Errorf("%w: default cycle length %d outside bounds", ErrInvalidAnalysisThresholds, stats.DefaultCycleLength)
	case stats.MinPeriodLength <= 0 || stats.MinPeriodLength > stats.MaxPeriodLength:
		return fmt.Errorf("%w: period length bounds %d..%d", ErrInvalidAnalysisThresholds, stats.MinPeriodLength, stats.MaxPeriodLength)
	case stats.DefaultPeriodLength < stats.MinPeriodLength || stats.DefaultPeriodLength > stats.MaxPeriodLength:
		return fmt.Errorf("%w: default period length %d outside bounds", ErrInvalidAnalysisThresholds, stats.DefaultPeriodLength)
	case stats.OutlierIQRFactor < 0:
		return fmt.Errorf("%w: negative outlier factor", ErrInvalidAnalysisThresholds)
	}

	phases := thresholds.Phases
	if phases.FollicularMaxDay <= 0 || phases.OvulatoryStartDay > phases.OvulatoryEndDay || phases.LutealStartDay <= phases.OvulatoryEndDay {
		return fmt.Errorf("%w: phase boundaries %d/%d/%d/%d", ErrInvalidAnalysisThresholds,
			phases.FollicularMaxDay, phases.OvulatoryStartDay, phases.OvulatoryEndDay, phases.LutealStartDay)
	}

	forecast := thresholds.Forecast
	if forecast.LutealPhaseDays <= 0 || forecast.LutealPhaseDays >= stats.MinCycleLength {
		return fmt.Errorf("%w: luteal phase days %d", ErrInvalidAnalysisThresholds, forecast.LutealPhaseDays)
	}
	if forecast.FertileWindowDays < 0 {
		return fmt.Errorf("%w: fertile window days %d", ErrInvalidAnalysisThresholds, forecast.FertileWindowDays)
	}
	if err := validateVariationBands("history confidence", forecast.HistoryConfidenceBands, forecast.HistoryConfidenceFloor); err != nil {
		return err
	}
	if err := validateVariationBands("ovulation confidence", forecast.OvulationConfidenceBands, forecast.OvulationConfidenceFloor); err != nil {
		return err
	}
	if forecast.MinHistoryCycleCount < 2 {
		return fmt.Errorf("%w: history forecasts need at least two cycles", ErrInvalidAnalysisThresholds)
	}

	bands := thresholds.Insights.RegularityBands
	if len(bands) == 0 {
		return fmt.Errorf("%w: regularity bands are empty", ErrInvalidAnalysisThresholds)
	}
	for index := 1; index < len(bands); index++ {
		if bands[index].MaxVariation <= bands[index-1].MaxVariation {
			return fmt.Errorf("%w: regularity bands must be ascending", ErrInvalidAnalysisThresholds)
		}
	}

	for index, likelihood := range forecast.OvulationLikelihood {
		if likelihood < 0 || likelihood > 100 {
			return fmt.Errorf("%w: ovulation likelihood %d outside 0..100", ErrInvalidAnalysisThresholds, likelihood)
		}
		if index > 0 && likelihood > forecast.OvulationLikelihood[index-1] {
			return fmt.Errorf("%w: ovulation likelihood must not increase with distance", ErrInvalidAnalysisThresholds)
		}
	}

	quality := thresholds.Quality
	if quality.FairScore < 0 || quality.FairScore >= quality.GoodScore || quality.GoodScore >= quality.ExcellentScore || quality.ExcellentScore > 100 {
		return fmt.Errorf("%w: quality score bands %d/%d/%d must descend", ErrInvalidAnalysisThresholds,
			quality.ExcellentScore, quality.GoodScore, quality.FairScore)
	}

	health := thresholds.HealthScore
	if health.Min > health.Max || health.Base < health.Min || health.Base > health.Max {
		return fmt.Errorf("%w: health score range %d..%d base %d", ErrInvalidAnalysisThresholds, health.Min, health.Max, health.Base)
	}

	maturity := thresholds.Maturity
	if maturity.DevelopingCycles <= 0 || maturity.DevelopingCycles >= maturity.MatureCycles || maturity.MatureCycles >= maturity.ExtensiveCycles {
		return fmt.Errorf("%w: maturity bands %d/%d/%d must ascend", ErrInvalidAnalysisThresholds,
			maturity.DevelopingCycles, maturity.MatureCycles, maturity.ExtensiveCycles)
	}
	return nil
}

func validateVariationBands(name string, bands []VariationBand, floor int) error {
	for index, band := range bands {
		if band.Value < floor {
			return fmt.Errorf("%w: %s band %d below floor %d", ErrInvalidAnalysisThresholds, name, band.Value, floor)
		}
		if index == 0 {
			continue
		}
		previous := bands[index-1]
		if band.MaxVariation <= previous.MaxVariation || band.Value > previous.Value {
			return fmt.Errorf("%w: %s bands must tighten monotonically", ErrInvalidAnalysisThresholds, name)
		}
	}
	return nil
}

func (thresholds AnalysisThresholds) clone() AnalysisThresholds {
	cloned := thresholds
	cloned.Forecast.HistoryConfidenceBands = append([]VariationBand(nil), thresholds.Forecast.HistoryConfidenceBands...)
	cloned.Forecast.OvulationConfidenceBands = append([]VariationBand(nil), thresholds.Forecast.OvulationConfidenceBands...)
	cloned.Forecast.OvulationLikelihood = append([]int(nil), thresholds.Forecast.OvulationLikelihood...)
	cloned.Insights.RegularityBands = append([]RegularityBand(nil), thresholds.Insights.RegularityBands...)
	return cloned
}

func bandValue(bands []VariationBand, variation float64, floor int) int {
	for _, band := range bands {
		if variation <= band.MaxVariation {
			return band.Value
		}
	}
	return floor
}
