package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	DatabaseURL      string
	HTTPAddr         string
	LogLevel         string
	Environment      string
	Timezone         string
	Location         *time.Location
	CronSpecDigest   string
	DigestWindowDays int
	ExportProdID     string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	// Stored event times are local civil times, so the server needs a fixed
	// reference zone for normalizing incoming UTC timestamps.
	cfg.Timezone = os.Getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = "Europe/Madrid"
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	cfg.CronSpecDigest = os.Getenv("CRON_SPEC_DIGEST")
	if cfg.CronSpecDigest == "" {
		cfg.CronSpecDigest = "0 8 * * *" // Default: 8:00 AM daily
	}

	cfg.DigestWindowDays = 7
	if s := os.Getenv("DIGEST_WINDOW_DAYS"); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("invalid DIGEST_WINDOW_DAYS: %q", s)
		}
		cfg.DigestWindowDays = days
	}

	cfg.ExportProdID = os.Getenv("EXPORT_PRODID")

	return cfg, nil
}
