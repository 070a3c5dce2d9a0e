package browser

import "testing"

// With QUORUM_BASE_URL set, Setup must drive the configured deployment with
// the configured account instead of spawning a stub.
func TestSetup_TargetsConfiguredDeployment(t *testing.T) {
	t.Setenv("QUORUM_BASE_URL", "https://app.quorum.example/")
	t.Setenv("QUORUM_EMAIL", "qa@quorum.example")
	t.Setenv("QUORUM_PASSWORD", "hunter2")
	t.Setenv("QUORUM_NAV_RATE", "0.5")
	t.Setenv("RETRY_ATTEMPTS", "5")

	env := Setup(t)
	if env.App != nil {
		t.Error("a configured deployment must not boot the stub app")
	}
	if env.BaseURL != "https://app.quorum.example" {
		t.Errorf("BaseURL = %q, want the configured deployment", env.BaseURL)
	}
	if env.Cfg.Email != "qa@quorum.example" {
		t.Errorf("Email = %q, want the configured account", env.Cfg.Email)
	}
	if env.Cfg.NavRate != 0.5 {
		t.Errorf("NavRate = %v, want 0.5", env.Cfg.NavRate)
	}
	if env.Cfg.RetryAttempts != 5 {
		t.Errorf("RetryAttempts = %d, want 5", env.Cfg.RetryAttempts)
	}
}

// Without QUORUM_BASE_URL the suite is self-contained: a stub boots with the
// standard account.
func TestSetup_DefaultsToStub(t *testing.T) {
	t.Setenv("QUORUM_BASE_URL", "")
	t.Setenv("QUORUM_EMAIL", "")
	t.Setenv("QUORUM_PASSWORD", "")

	env := Setup(t)
	if env.App == nil {
		t.Fatal("empty QUORUM_BASE_URL must boot the stub app")
	}
	if env.BaseURL != env.Server.URL {
		t.Errorf("BaseURL = %q, want the stub server %q", env.BaseURL, env.Server.URL)
	}
	if env.Cfg.Email != stubEmail || env.Cfg.Password != stubPassword {
		t.Error("stub mode must use the registered stub account")
	}
}
