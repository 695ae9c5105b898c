package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclesense/internal/db"
	"github.com/terraincognita07/cyclesense/internal/i18n"
	"github.com/terraincognita07/cyclesense/internal/services"
)

var testClock = time.Date(2026, time.March, 28, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()
	return newTestAppWithLocation(t, time.UTC)
}

func newTestAppWithLocation(t *testing.T, location *time.Location) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclesense-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewDefaultManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, services.DefaultCycleAnalyzer(), location, i18nManager)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testClock }

	return NewApp(handler), handler
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	return payload["error"]
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d (%s)", want, response.StatusCode, body)
	}
}

type profileResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	AverageCycleLength int    `json:"average_cycle_length"`
	Language           string `json:"language"`
}

func createProfileForTest(t *testing.T, app *fiber.App, payload map[string]any) profileResponse {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/profiles", payload)
	expectStatus(t, response, http.StatusCreated)

	var profile profileResponse
	decodeJSON(t, response, &profile)
	if profile.ID == 0 {
		t.Fatal("expected created profile to have an id")
	}
	return profile
}

func cyclePayload(start string, periodDays ...string) map[string]any {
	return map[string]any{
		"start_date":  start,
		"period_days": periodDays,
	}
}

func fiveDayPeriod(t *testing.T, start string) []string {
	t.Helper()

	first, err := services.ParseDay(start)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	days := make([]string, 0, 5)
	for offset := 0; offset < 5; offset++ {
		days = append(days, first.AddDate(0, 0, offset).Format("2006-01-02"))
	}
	return days
}
