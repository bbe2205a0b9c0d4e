// Package config centralizes configuration, loaded from environment
// variables with validation and defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/example/pawlog/internal/db"
)

const (
	// DefaultConfidenceThreshold gates the retake diversion. Earlier builds
	// shipped with 0.9; current default is 0.85. Override with
	// PAWLOG_CONFIDENCE_THRESHOLD.
	DefaultConfidenceThreshold = 0.85

	// DefaultMonthlyCredits is the monthly cap on AI-assisted analyses.
	DefaultMonthlyCredits = 30

	// DefaultOpenAIModel is the vision model used for analysis.
	DefaultOpenAIModel = "gpt-4o"

	// DefaultStorageBucket is the object storage bucket for uploaded photos.
	DefaultStorageBucket = "poo-photos"
)

// Config holds all configuration for the app.
type Config struct {
	// DBPath is the SQLite file location.
	DBPath string

	// ConfidenceThreshold diverts a save into the retake flow when analysis
	// confidence falls below it.
	ConfidenceThreshold float64

	// MonthlyCredits is the AI analysis quota per calendar month.
	MonthlyCredits int

	// OpenAI settings for the analyzer.
	OpenAIKey   string
	OpenAIModel string

	// Object storage settings for photo uploads.
	StorageURL    string
	StorageBucket string
	StorageToken  string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dbPath := os.Getenv("PAWLOG_DB_PATH")
	if dbPath == "" {
		var err error
		dbPath, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		DBPath:              dbPath,
		ConfidenceThreshold: getEnvFloat("PAWLOG_CONFIDENCE_THRESHOLD", DefaultConfidenceThreshold),
		MonthlyCredits:      getEnvInt("PAWLOG_MONTHLY_CREDITS", DefaultMonthlyCredits),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         getEnv("PAWLOG_OPENAI_MODEL", DefaultOpenAIModel),
		StorageURL:          os.Getenv("PAWLOG_STORAGE_URL"),
		StorageBucket:       getEnv("PAWLOG_STORAGE_BUCKET", DefaultStorageBucket),
		StorageToken:        os.Getenv("PAWLOG_STORAGE_TOKEN"),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("PAWLOG_CONFIDENCE_THRESHOLD must be 0-1, got %f", c.ConfidenceThreshold)
	}
	if c.MonthlyCredits < 0 {
		return fmt.Errorf("PAWLOG_MONTHLY_CREDITS must not be negative, got %d", c.MonthlyCredits)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
