package services

import (
	"testing"
	"time"
)

func TestDescribePhaseAndRegularity(t *testing.T) {
	t.Parallel()

	if got := DescribePhase(PhaseOvulatory); got != "Ovulatory phase" {
		t.Fatalf("expected Ovulatory phase, got %q", got)
	}
	if got := DescribePhase(CyclePhase("other")); got != "Unknown phase" {
		t.Fatalf("expected Unknown phase, got %q", got)
	}
	if got := DescribeRegularity(RegularitySomewhatIrregular); got != "Somewhat irregular" {
		t.Fatalf("expected Somewhat irregular, got %q", got)
	}
	if got := DescribeRegularity(RegularityInsufficientData); got != "Not enough data" {
		t.Fatalf("expected Not enough data, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	if got := FormatDate(mustParseDay(t, "2026-03-09")); got != "Mar 09, 2026" {
		t.Fatalf("expected Mar 09, 2026, got %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
}
