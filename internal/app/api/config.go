package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port               string
	ClinicBaseURL      string
	ClinicTimeout      time.Duration
	SessionTTL         time.Duration
	SessionSweepPeriod time.Duration
	GinReleaseMode     bool
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		ClinicBaseURL:      strings.TrimSpace(os.Getenv("CLINIC_API_BASE_URL")),
		ClinicTimeout:      10 * time.Second,
		SessionTTL:         60 * time.Minute,
		SessionSweepPeriod: 5 * time.Minute,
		GinReleaseMode:     isTruthy(os.Getenv("GIN_RELEASE_MODE")),
	}
	if cfg.ClinicBaseURL == "" {
		return Config{}, fmt.Errorf("CLINIC_API_BASE_URL is required")
	}
	if raw := strings.TrimSpace(os.Getenv("CLINIC_API_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("CLINIC_API_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.ClinicTimeout = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_MINUTES must be a positive integer")
		}
		cfg.SessionTTL = time.Duration(minutes) * time.Minute
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_SWEEP_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("SESSION_SWEEP_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.SessionSweepPeriod = time.Duration(minutes) * time.Minute
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
