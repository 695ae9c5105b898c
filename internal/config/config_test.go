package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/cyclesense/internal/services"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "TZ", "LOG_LEVEL", "ENVIRONMENT", "DEFAULT_LANGUAGE", "ANALYSIS_THRESHOLDS_FILE"} {
		t.Setenv(key, "")
	}
	chdirForTest(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.DBPath != filepath.Join("data", "cyclesense.db") {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Location.String() != "UTC" {
		t.Fatalf("expected UTC location, got %s", cfg.Location)
	}
	if cfg.LogLevel != "info" || cfg.Environment != "development" || cfg.DefaultLanguage != "en" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.AnalysisThresholdsFile != "" {
		t.Fatalf("expected no thresholds file, got %q", cfg.AnalysisThresholdsFile)
	}
}

func TestLoadReadsEnvironmentAndDotEnv(t *testing.T) {
	directory := t.TempDir()
	chdirForTest(t, directory)
	if err := os.WriteFile(filepath.Join(directory, ".env"), []byte("PORT=9090\nDEFAULT_LANGUAGE=RU\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_LANGUAGE", "")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TZ", "Europe/Berlin")
	t.Setenv("ANALYSIS_THRESHOLDS_FILE", " thresholds.yaml ")
	os.Unsetenv("PORT")
	os.Unsetenv("DEFAULT_LANGUAGE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.DefaultLanguage != "ru" {
		t.Fatalf("expected .env values, got port=%q language=%q", cfg.Port, cfg.DefaultLanguage)
	}
	if cfg.LogLevel != "debug" || cfg.Environment != "production" {
		t.Fatalf("expected normalized env values, got %q/%q", cfg.LogLevel, cfg.Environment)
	}
	if cfg.Location.String() != "Europe/Berlin" {
		t.Fatalf("expected Europe/Berlin, got %s", cfg.Location)
	}
	if cfg.AnalysisThresholdsFile != "thresholds.yaml" {
		t.Fatalf("expected trimmed thresholds path, got %q", cfg.AnalysisThresholdsFile)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("TZ", "Mars/Olympus")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "invalid TZ") {
		t.Fatalf("expected invalid TZ error, got %v", err)
	}
}

func TestLoadAnalysisThresholdsOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	document := `
statistics:
  default_cycle_length: 30
phases:
  scale_boundaries: true
forecast:
  history_confidence_bands:
    - max_variation: 2
      value: 92
`
	if err := os.WriteFile(path, []byte(document), 0o600); err != nil {
		t.Fatalf("write thresholds: %v", err)
	}

	thresholds, err := LoadAnalysisThresholds(path)
	if err != nil {
		t.Fatalf("LoadAnalysisThresholds() unexpected error: %v", err)
	}
	if thresholds.Statistics.DefaultCycleLength != 30 || !thresholds.Phases.ScaleBoundaries {
		t.Fatalf("expected overlaid values, got %#v", thresholds.Statistics)
	}
	if thresholds.Statistics.MinCycleLength != 21 || thresholds.Forecast.LutealPhaseDays != 14 {
		t.Fatal("expected untouched fields to keep their defaults")
	}
	if len(thresholds.Forecast.HistoryConfidenceBands) != 1 || thresholds.Forecast.HistoryConfidenceBands[0].Value != 92 {
		t.Fatalf("expected bands to be replaced, got %#v", thresholds.Forecast.HistoryConfidenceBands)
	}
}

func TestLoadAnalysisThresholdsErrors(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	invalid := filepath.Join(directory, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("statistics:\n  min_cycle_length: 60\n"), 0o600); err != nil {
		t.Fatalf("write thresholds: %v", err)
	}
	if _, err := LoadAnalysisThresholds(invalid); !errors.Is(err, services.ErrInvalidAnalysisThresholds) {
		t.Fatalf("expected ErrInvalidAnalysisThresholds, got %v", err)
	}

	unknown := filepath.Join(directory, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("statistics:\n  shortest_cycle: 20\n"), 0o600); err != nil {
		t.Fatalf("write thresholds: %v", err)
	}
	if _, err := LoadAnalysisThresholds(unknown); err == nil || !strings.Contains(err.Error(), "parse thresholds") {
		t.Fatalf("expected parse error for unknown field, got %v", err)
	}

	if _, err := LoadAnalysisThresholds(filepath.Join(directory, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestLoadAnalysisThresholdsEmptyInputs(t *testing.T) {
	t.Parallel()

	defaults, err := LoadAnalysisThresholds("")
	if err != nil {
		t.Fatalf("LoadAnalysisThresholds() unexpected error: %v", err)
	}
	if defaults.Statistics.DefaultCycleLength != 28 {
		t.Fatalf("expected defaults, got %#v", defaults.Statistics)
	}

	empty, err := ParseAnalysisThresholds(nil)
	if err != nil {
		t.Fatalf("ParseAnalysisThresholds() unexpected error: %v", err)
	}
	if empty.Forecast.NoHistoryConfidence != 20 {
		t.Fatalf("expected defaults for an empty document, got %#v", empty.Forecast)
	}
}

func TestMarshalAnalysisThresholdsRoundTrips(t *testing.T) {
	t.Parallel()

	data, err := MarshalAnalysisThresholds(services.DefaultAnalysisThresholds())
	if err != nil {
		t.Fatalf("MarshalAnalysisThresholds() unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "luteal_phase_days: 14") {
		t.Fatalf("expected yaml keys in output, got:\n%s", data)
	}

	parsed, err := ParseAnalysisThresholds(data)
	if err != nil {
		t.Fatalf("ParseAnalysisThresholds() unexpected error: %v", err)
	}
	if parsed.Insights.RegularityBands[2].Level != services.RegularitySomewhatIrregular {
		t.Fatalf("expected regularity bands to survive encoding, got %#v", parsed.Insights.RegularityBands)
	}
}
