package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port                   string
	DBPath                 string
	Location               *time.Location
	LogLevel               string
	Environment            string
	DefaultLanguage        string
	AnalysisThresholdsFile string
}

// Load reads configuration from the environment, after merging a .env file
// when one exists. Variables already set in the environment win.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	timezone := getEnv("TZ", "UTC")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", timezone, err)
	}

	return &AppConfig{
		Port:                   getEnv("PORT", "8080"),
		DBPath:                 getEnv("DB_PATH", filepath.Join("data", "cyclesense.db")),
		Location:               location,
		LogLevel:               strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment:            strings.ToLower(getEnv("ENVIRONMENT", "development")),
		DefaultLanguage:        strings.ToLower(getEnv("DEFAULT_LANGUAGE", "en")),
		AnalysisThresholdsFile: strings.TrimSpace(os.Getenv("ANALYSIS_THRESHOLDS_FILE")),
	}, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
