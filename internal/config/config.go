// Package config provides centralized configuration for the e2e harness.
// It loads settings from environment variables (optionally seeded from a
// .env file), validates required fields, and provides hard-coded defaults
// for everything else.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all harness configuration.
type Config struct {
	// Target application
	BaseURL  string // QUORUM_BASE_URL; empty means "drive the built-in stub app"
	Email    string // QUORUM_EMAIL
	Password string // QUORUM_PASSWORD

	// Meeting parameters used by the meeting suites
	MeetingTitle    string
	MeetingDuration time.Duration

	// Browser
	Headless      bool
	ActionTimeout time.Duration // per-interaction bound
	NavTimeout    time.Duration // per-navigation bound

	// Retry policy defaults for asynchronously rendered UI
	RetryAttempts int
	RetryDelay    time.Duration

	// NavRate throttles navigations per second against the shared account.
	// Zero disables pacing; the stub never needs it, live deployments do.
	NavRate float64 // QUORUM_NAV_RATE

	// Artifacts
	ArtifactDir   string
	ArtifactsS3   S3Config
	HistoryDBPath string

	// MasterKey encrypts saved session storage state and, when set, the run
	// history database. 64 hex characters (32 bytes); empty disables
	// encryption at rest.
	MasterKey string
}

// S3Config configures optional artifact upload.
type S3Config struct {
	Endpoint  string // ARTIFACTS_S3_ENDPOINT; empty disables upload
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether artifact upload is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("QUORUM_BASE_URL")), "/")
	cfg.Email = strings.TrimSpace(os.Getenv("QUORUM_EMAIL"))
	cfg.Password = os.Getenv("QUORUM_PASSWORD")

	cfg.MeetingTitle = getEnvOrDefault("QUORUM_MEETING_TITLE", "Weekly sync")
	cfg.MeetingDuration = parseDurationOrDefault("QUORUM_MEETING_DURATION", 30*time.Minute)

	cfg.Headless = os.Getenv("HEADLESS") != "false"
	cfg.ActionTimeout = parseDurationOrDefault("ACTION_TIMEOUT", 5*time.Second)
	cfg.NavTimeout = parseDurationOrDefault("NAV_TIMEOUT", 10*time.Second)

	cfg.RetryAttempts = parseIntOrDefault("RETRY_ATTEMPTS", 3)
	cfg.RetryDelay = parseDurationOrDefault("RETRY_DELAY", 500*time.Millisecond)
	cfg.NavRate = parseFloatOrDefault("QUORUM_NAV_RATE", 0)

	cfg.ArtifactDir = getEnvOrDefault("ARTIFACT_DIR", "./artifacts")
	cfg.HistoryDBPath = getEnvOrDefault("HISTORY_DB_PATH", "./artifacts/history.db")
	cfg.MasterKey = strings.TrimSpace(os.Getenv("MASTER_KEY"))

	cfg.ArtifactsS3 = S3Config{
		Endpoint:  strings.TrimSpace(os.Getenv("ARTIFACTS_S3_ENDPOINT")),
		Region:    getEnvOrDefault("ARTIFACTS_S3_REGION", "auto"),
		Bucket:    strings.TrimSpace(os.Getenv("ARTIFACTS_S3_BUCKET")),
		AccessKey: strings.TrimSpace(os.Getenv("AWS_ACCESS_KEY_ID")),
		SecretKey: strings.TrimSpace(os.Getenv("AWS_SECRET_ACCESS_KEY")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise surface mid-run.
func (c *Config) Validate() error {
	var errs []string

	if c.BaseURL != "" && c.Email == "" {
		errs = append(errs, "QUORUM_EMAIL is required when QUORUM_BASE_URL is set")
	}
	if c.BaseURL != "" && c.Password == "" {
		errs = append(errs, "QUORUM_PASSWORD is required when QUORUM_BASE_URL is set")
	}
	if c.RetryAttempts < 1 {
		errs = append(errs, "RETRY_ATTEMPTS must be at least 1")
	}
	if c.ActionTimeout <= 0 {
		errs = append(errs, "ACTION_TIMEOUT must be positive")
	}
	if c.NavRate < 0 {
		errs = append(errs, "QUORUM_NAV_RATE must not be negative")
	}
	if c.MasterKey != "" && len(c.MasterKey) != 64 {
		errs = append(errs, "MASTER_KEY must be 64 hex characters (32 bytes)")
	}
	if c.ArtifactsS3.Enabled() && c.ArtifactsS3.AccessKey == "" {
		errs = append(errs, "AWS_ACCESS_KEY_ID is required when ARTIFACTS_S3_BUCKET is set")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// TargetsRealApp reports whether the harness points at a live deployment
// rather than the built-in stub.
func (c *Config) TargetsRealApp() bool {
	return c.BaseURL != ""
}

func getEnvOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func parseIntOrDefault(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloatOrDefault(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}
