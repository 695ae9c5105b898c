package services

import "time"

type CyclePhase string

const (
	PhaseMenstrual  CyclePhase = "menstrual"
	PhaseFollicular CyclePhase = "follicular"
	PhaseOvulatory  CyclePhase = "ovulatory"
	PhaseLuteal     CyclePhase = "luteal"
	PhaseUnknown    CyclePhase = "unknown"
)

type RegularityLevel string

const (
	RegularityVeryRegular       RegularityLevel = "very_regular"
	RegularityRegular           RegularityLevel = "regular"
	RegularitySomewhatIrregular RegularityLevel = "somewhat_irregular"
	RegularityIrregular         RegularityLevel = "irregular"
	RegularityVeryIrregular     RegularityLevel = "very_irregular"
	RegularityInsufficientData  RegularityLevel = "insufficient_data"
)

type InsightType string

const (
	InsightWarning  InsightType = "warning"
	InsightInfo     InsightType = "info"
	InsightPositive InsightType = "positive"
	InsightTip      InsightType = "tip"
)

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

type PredictionBasis string

const (
	BasisNoHistory      PredictionBasis = "no_history"
	BasisProfileSetting PredictionBasis = "profile_setting"
	BasisDefaultLength  PredictionBasis = "default_length"
	BasisHistory        PredictionBasis = "history"
)

type QualityLevel string

const (
	QualityExcellent QualityLevel = "excellent"
	QualityGood      QualityLevel = "good"
	QualityFair      QualityLevel = "fair"
	QualityPoor      QualityLevel = "poor"
)

type DataMaturity string

const (
	MaturityNew        DataMaturity = "new"
	MaturityDeveloping DataMaturity = "developing"
	MaturityMature     DataMaturity = "mature"
	MaturityExtensive  DataMaturity = "extensive"
)

type PredictionReliability string

const (
	ReliabilityHigh         PredictionReliability = "high"
	ReliabilityModerate     PredictionReliability = "moderate"
	ReliabilityLow          PredictionReliability = "low"
	ReliabilityVeryLow      PredictionReliability = "very_low"
	ReliabilityInsufficient PredictionReliability = "insufficient"
)

type CycleStatistics struct {
	CycleCount          int     `json:"cycle_count"`
	SampleCount         int     `json:"sample_count"`
	AverageCycleLength  int     `json:"average_cycle_length"`
	MedianCycleLength   int     `json:"median_cycle_length"`
	CycleVariation      float64 `json:"cycle_variation"`
	MinCycleLength      int     `json:"min_cycle_length"`
	MaxCycleLength      int     `json:"max_cycle_length"`
	AveragePeriodLength int     `json:"average_period_length"`
	PeriodVariation     float64 `json:"period_variation"`
	ConsistencyIndex    int     `json:"consistency_index"`
	CycleLengthHistory  []int   `json:"cycle_length_history"`
}

type CurrentCycleState struct {
	Phase      CyclePhase `json:"phase"`
	DayInCycle int        `json:"day_in_cycle"`
	IsOnPeriod bool       `json:"is_on_period"`
	PeriodDay  int        `json:"period_day"`
	CycleStart time.Time  `json:"cycle_start"`
}

type PeriodPrediction struct {
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	WindowStart     time.Time       `json:"window_start"`
	WindowEnd       time.Time       `json:"window_end"`
	UncertaintyDays int             `json:"uncertainty_days"`
	DaysUntil       int             `json:"days_until"`
	IsOverdue       bool            `json:"is_overdue"`
	OverdueBy       int             `json:"overdue_by"`
	Confidence      int             `json:"confidence"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	Basis           PredictionBasis `json:"basis"`
	Reason          string          `json:"reason"`
}

type OvulationPrediction struct {
	Date               time.Time       `json:"date"`
	FertileWindowStart time.Time       `json:"fertile_window_start"`
	FertileWindowEnd   time.Time       `json:"fertile_window_end"`
	DaysUntil          int             `json:"days_until"`
	Confidence         int             `json:"confidence"`
	ConfidenceLevel    ConfidenceLevel `json:"confidence_level"`
}

type FertilityOutlook struct {
	OvulationDay    int  `json:"ovulation_day"`
	Likelihood      int  `json:"likelihood"`
	InFertileWindow bool `json:"in_fertile_window"`
}

type HealthInsight struct {
	Type       InsightType `json:"type"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Actionable bool        `json:"actionable"`
	Priority   int         `json:"priority"`
}

type DataQuality struct {
	Score        int          `json:"score"`
	Completeness int          `json:"completeness"`
	Consistency  int          `json:"consistency"`
	Level        QualityLevel `json:"level"`
	Suggestions  []string     `json:"suggestions"`
}

type SymptomPattern struct {
	Type             string     `json:"type"`
	Occurrences      int        `json:"occurrences"`
	Frequency        float64    `json:"frequency"`
	AverageIntensity float64    `json:"average_intensity"`
	MostCommonPhase  CyclePhase `json:"most_common_phase"`
}

// CycleAnalysis is the snapshot produced by one Analyze call. Ovulation is nil
// when fewer cycles than needed for an ovulation forecast were logged.
type CycleAnalysis struct {
	GeneratedAt           time.Time             `json:"generated_at"`
	Today                 time.Time             `json:"today"`
	Current               CurrentCycleState     `json:"current"`
	Statistics            CycleStatistics       `json:"statistics"`
	NextPeriod            PeriodPrediction      `json:"next_period"`
	Ovulation             *OvulationPrediction  `json:"ovulation,omitempty"`
	Fertility             FertilityOutlook      `json:"fertility"`
	Regularity            RegularityLevel       `json:"regularity"`
	Insights              []HealthInsight       `json:"insights"`
	DataQuality           DataQuality           `json:"data_quality"`
	HealthScore           int                   `json:"health_score"`
	SymptomPatterns       []SymptomPattern      `json:"symptom_patterns"`
	DataMaturity          DataMaturity          `json:"data_maturity"`
	PredictionReliability PredictionReliability `json:"prediction_reliability"`
	Recommendations       []string              `json:"recommendations"`
}

func (analysis CycleAnalysis) HasOvulationPrediction() bool {
	return analysis.Ovulation != nil
}
