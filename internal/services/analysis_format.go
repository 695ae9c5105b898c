package services

import "time"

const DisplayDateLayout = "Jan 02, 2006"

func DescribePhase(phase CyclePhase) string {
	switch phase {
	case PhaseMenstrual:
		return "Menstrual phase"
	case PhaseFollicular:
		return "Follicular phase"
	case PhaseOvulatory:
		return "Ovulatory phase"
	case PhaseLuteal:
		return "Luteal phase"
	default:
		return "Unknown phase"
	}
}

func DescribeRegularity(level RegularityLevel) string {
	switch level {
	case RegularityVeryRegular:
		return "Very regular"
	case RegularityRegular:
		return "Regular"
	case RegularitySomewhatIrregular:
		return "Somewhat irregular"
	case RegularityIrregular:
		return "Irregular"
	case RegularityVeryIrregular:
		return "Very irregular"
	default:
		return "Not enough data"
	}
}

func FormatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(DisplayDateLayout)
}
