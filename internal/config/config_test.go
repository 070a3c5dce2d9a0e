package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"QUORUM_BASE_URL", "QUORUM_EMAIL", "QUORUM_PASSWORD",
		"ACTION_TIMEOUT", "RETRY_ATTEMPTS", "RETRY_DELAY",
		"ARTIFACT_DIR", "MASTER_KEY", "ARTIFACTS_S3_BUCKET",
		"QUORUM_NAV_RATE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with empty env: %v", err)
	}
	if cfg.TargetsRealApp() {
		t.Error("empty QUORUM_BASE_URL must mean stub mode")
	}
	if cfg.ActionTimeout != 5*time.Second {
		t.Errorf("ActionTimeout = %v, want 5s", cfg.ActionTimeout)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.RetryAttempts)
	}
	if cfg.RetryDelay != 500*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 500ms", cfg.RetryDelay)
	}
	if cfg.ArtifactDir != "./artifacts" {
		t.Errorf("ArtifactDir = %q", cfg.ArtifactDir)
	}
	if cfg.ArtifactsS3.Enabled() {
		t.Error("S3 upload must be disabled by default")
	}
	if cfg.NavRate != 0 {
		t.Errorf("NavRate = %v, pacing must be off by default", cfg.NavRate)
	}
}

func TestLoad_NavRate(t *testing.T) {
	t.Setenv("QUORUM_BASE_URL", "")
	t.Setenv("MASTER_KEY", "")
	t.Setenv("QUORUM_NAV_RATE", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NavRate != 2.5 {
		t.Errorf("NavRate = %v, want 2.5", cfg.NavRate)
	}
}

func TestLoad_NegativeNavRateRejected(t *testing.T) {
	t.Setenv("QUORUM_BASE_URL", "")
	t.Setenv("MASTER_KEY", "")
	t.Setenv("QUORUM_NAV_RATE", "-1")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error for negative QUORUM_NAV_RATE")
	}
	if !strings.Contains(err.Error(), "QUORUM_NAV_RATE") {
		t.Errorf("error does not name QUORUM_NAV_RATE: %v", err)
	}
}

func TestLoad_RealTargetRequiresCredentials(t *testing.T) {
	t.Setenv("QUORUM_BASE_URL", "https://app.quorum.example")
	t.Setenv("QUORUM_EMAIL", "")
	t.Setenv("QUORUM_PASSWORD", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error for missing credentials")
	}
	if !strings.Contains(err.Error(), "QUORUM_EMAIL") {
		t.Errorf("error does not name QUORUM_EMAIL: %v", err)
	}
	if !strings.Contains(err.Error(), "QUORUM_PASSWORD") {
		t.Errorf("error does not name QUORUM_PASSWORD: %v", err)
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("QUORUM_BASE_URL", "https://app.quorum.example/")
	t.Setenv("QUORUM_EMAIL", "qa@quorum.example")
	t.Setenv("QUORUM_PASSWORD", "hunter2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://app.quorum.example" {
		t.Errorf("BaseURL = %q, trailing slash kept", cfg.BaseURL)
	}
}

func TestLoad_BadMasterKeyLength(t *testing.T) {
	t.Setenv("QUORUM_BASE_URL", "")
	t.Setenv("MASTER_KEY", "deadbeef")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error for short MASTER_KEY")
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("QUORUM_BASE_URL", "")
	t.Setenv("MASTER_KEY", "")
	t.Setenv("ACTION_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ActionTimeout != 5*time.Second {
		t.Errorf("invalid duration must fall back to default, got %v", cfg.ActionTimeout)
	}
}
