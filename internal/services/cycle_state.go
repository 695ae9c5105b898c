package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/cyclesense/internal/models"
)

func (analyzer *CycleAnalyzer) resolveCurrentState(cycles []models.CycleRecord, today time.Time, averageCycleLength int) CurrentCycleState {
	state := CurrentCycleState{Phase: PhaseUnknown}
	if len(cycles) == 0 {
		return state
	}

	last := cycles[len(cycles)-1]
	dayInCycle := daysBetween(last.StartDate, today) + 1
	if dayInCycle < 1 {
		return state
	}

	state.CycleStart = last.StartDate
	state.DayInCycle = dayInCycle
	state.IsOnPeriod = containsDay(last.PeriodDays, today)
	if state.IsOnPeriod {
		state.PeriodDay = daysBetween(last.PeriodDays[0], today) + 1
	}
	state.Phase = analyzer.ClassifyPhase(dayInCycle, state.IsOnPeriod, averageCycleLength)
	return state
}

// ClassifyPhase maps a cycle day to a phase. averageCycleLength only matters
// when boundary scaling is enabled.
func (analyzer *CycleAnalyzer) ClassifyPhase(dayInCycle int, isOnPeriod bool, averageCycleLength int) CyclePhase {
	if isOnPeriod {
		return PhaseMenstrual
	}
	if dayInCycle <= 0 {
		return PhaseUnknown
	}

	phases := analyzer.thresholds.Phases
	shift := 0
	if phases.ScaleBoundaries && averageCycleLength > 0 {
		shift = averageCycleLength - analyzer.thresholds.Statistics.DefaultCycleLength
	}

	switch {
	case dayInCycle <= phases.FollicularMaxDay:
		return PhaseFollicular
	case dayInCycle >= phases.OvulatoryStartDay+shift && dayInCycle <= phases.OvulatoryEndDay+shift:
		return PhaseOvulatory
	case dayInCycle >= phases.LutealStartDay+shift:
		return PhaseLuteal
	default:
		return PhaseFollicular
	}
}

// phaseOnDate resolves the phase of day within the cycle that contains it.
func (analyzer *CycleAnalyzer) phaseOnDate(cycles []models.CycleRecord, day time.Time, averageCycleLength int) CyclePhase {
	index := sort.Search(len(cycles), func(i int) bool {
		return cycles[i].StartDate.After(day)
	}) - 1
	if index < 0 {
		return PhaseUnknown
	}

	cycle := cycles[index]
	dayInCycle := daysBetween(cycle.StartDate, day) + 1
	return analyzer.ClassifyPhase(dayInCycle, containsDay(cycle.PeriodDays, day), averageCycleLength)
}
