package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/cyclesense/internal/config"
	"github.com/terraincognita07/cyclesense/internal/db"
	"github.com/terraincognita07/cyclesense/internal/models"
	"github.com/terraincognita07/cyclesense/internal/services"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func isolateEnvironment(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("TZ", "UTC")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_PATH", filepath.Join(dir, "cyclesense.db"))
	t.Setenv("ANALYSIS_THRESHOLDS_FILE", "")
	t.Setenv("DEFAULT_LANGUAGE", "en")
	return dir
}

func seedProfile(t *testing.T, dbPath string, starts ...string) models.Profile {
	t.Helper()

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	defer sqlDB.Close()

	repositories := db.NewRepositories(database)
	profile := models.Profile{Name: "Nika", Language: "en"}
	if err := repositories.Profiles.Create(&profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	for _, raw := range starts {
		start, err := services.ParseDay(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		cycle := models.CycleRecord{ProfileID: profile.ID, StartDate: start}
		for offset := 0; offset < 5; offset++ {
			cycle.PeriodDays = append(cycle.PeriodDays, start.AddDate(0, 0, offset))
		}
		if err := repositories.Cycles.Create(&cycle); err != nil {
			t.Fatalf("create cycle: %v", err)
		}
	}
	return profile
}

func TestThresholdsCommandPrintsEffectiveTable(t *testing.T) {
	dir := isolateEnvironment(t)

	overlay := filepath.Join(dir, "thresholds.yaml")
	if err := os.WriteFile(overlay, []byte("statistics:\n  default_cycle_length: 30\n"), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	output, err := runCommand(t, "thresholds", "--thresholds", overlay)
	if err != nil {
		t.Fatalf("thresholds command failed: %v", err)
	}

	parsed, err := config.ParseAnalysisThresholds([]byte(output))
	if err != nil {
		t.Fatalf("printed thresholds do not parse: %v", err)
	}
	if parsed.Statistics.DefaultCycleLength != 30 {
		t.Fatalf("expected overlay to apply, got %d", parsed.Statistics.DefaultCycleLength)
	}
}

func TestThresholdsCommandRejectsInvalidOverlay(t *testing.T) {
	dir := isolateEnvironment(t)

	overlay := filepath.Join(dir, "thresholds.yaml")
	if err := os.WriteFile(overlay, []byte("statistics:\n  unknown_knob: 1\n"), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	t.Setenv("ANALYSIS_THRESHOLDS_FILE", overlay)

	if _, err := runCommand(t, "thresholds"); err == nil || !strings.Contains(err.Error(), "analysis thresholds") {
		t.Fatalf("expected thresholds error, got %v", err)
	}
}

func TestAnalyzeCommandJSON(t *testing.T) {
	dir := isolateEnvironment(t)
	dbPath := filepath.Join(dir, "cyclesense.db")
	profile := seedProfile(t, dbPath, "2026-01-01", "2026-01-29", "2026-02-26", "2026-03-26")

	output, err := runCommand(t, "analyze", "--profile", "1", "--now", "2026-03-28", "--format", "json")
	if err != nil {
		t.Fatalf("analyze command failed: %v", err)
	}

	var analysis services.CycleAnalysis
	if err := json.Unmarshal([]byte(output), &analysis); err != nil {
		t.Fatalf("decode analysis json: %v", err)
	}
	if profile.ID != 1 {
		t.Fatalf("expected first profile id 1, got %d", profile.ID)
	}
	if analysis.Current.Phase != services.PhaseMenstrual {
		t.Fatalf("expected menstrual phase, got %q", analysis.Current.Phase)
	}
	wantToday := time.Date(2026, time.March, 28, 0, 0, 0, 0, time.UTC)
	if !analysis.Today.Equal(wantToday) {
		t.Fatalf("expected today %s, got %s", wantToday, analysis.Today)
	}
	if analysis.Statistics.CycleCount != 4 {
		t.Fatalf("expected 4 cycles, got %d", analysis.Statistics.CycleCount)
	}
}

func TestAnalyzeCommandPretty(t *testing.T) {
	dir := isolateEnvironment(t)
	seedProfile(t, filepath.Join(dir, "cyclesense.db"), "2026-01-01", "2026-01-29", "2026-02-26", "2026-03-26")

	output, err := runCommand(t, "analyze", "-p", "1", "--now", "2026-03-28", "--lang", "ru")
	if err != nil {
		t.Fatalf("analyze command failed: %v", err)
	}
	for _, want := range []string{"Profile:      Nika (#1)", "Менструальная фаза (cycle day 3)", "Next period:  Apr 23, 2026", "Ovulation:"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestAnalyzeCommandErrors(t *testing.T) {
	dir := isolateEnvironment(t)
	seedProfile(t, filepath.Join(dir, "cyclesense.db"))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing profile flag", args: []string{"analyze"}, want: `required flag(s) "profile" not set`},
		{name: "unknown profile", args: []string{"analyze", "-p", "42"}, want: "profile 42 not found"},
		{name: "bad day", args: []string{"analyze", "-p", "1", "--now", "03/28/2026"}, want: "invalid --now"},
		{name: "bad format", args: []string{"analyze", "-p", "1", "--format", "xml"}, want: "unsupported format"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			_, err := runCommand(t, testCase.args...)
			if err == nil || !strings.Contains(err.Error(), testCase.want) {
				t.Fatalf("expected error containing %q, got %v", testCase.want, err)
			}
		})
	}
}

func TestAnalyzeCommandPlaceholderForEmptyProfile(t *testing.T) {
	dir := isolateEnvironment(t)
	seedProfile(t, filepath.Join(dir, "cyclesense.db"))

	output, err := runCommand(t, "analyze", "-p", "1", "--now", "2026-03-28")
	if err != nil {
		t.Fatalf("analyze command failed: %v", err)
	}
	if !strings.Contains(output, "Welcome") || !strings.Contains(output, "Unknown phase") {
		t.Fatalf("expected placeholder output, got:\n%s", output)
	}
}
