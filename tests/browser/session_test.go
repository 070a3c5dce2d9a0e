package browser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/quorumhq/quorum-e2e/internal/session"
)

const stateMasterKey = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

// Storage state captured after login, sealed with the master key, must boot
// a brand-new context straight onto the dashboard with no login flow.
func TestSession_EncryptedStateRoundTrip(t *testing.T) {
	env := Setup(t)
	sess := env.NewSession(t)
	app, _ := env.NewApp(t, sess)
	env.SignIn(t, app)

	store, err := session.NewStore(stateMasterKey)
	if err != nil {
		t.Fatalf("create state store: %v", err)
	}
	statePath := filepath.Join(t.TempDir(), "state.bin")
	if err := store.Save(sess.Context(), statePath); err != nil {
		t.Fatalf("save storage state: %v", err)
	}

	options, err := store.ContextOptions(statePath)
	if err != nil {
		t.Fatalf("load storage state: %v", err)
	}
	restored := env.NewSessionWithOptions(t, options)
	restoredApp, _ := env.NewApp(t, restored)

	if err := restoredApp.Home().Open(t.Context()); err != nil {
		t.Fatalf("open dashboard with restored session: %v", err)
	}
	welcome, err := restoredApp.Home().WelcomeText(t.Context())
	if err != nil {
		t.Fatalf("read welcome heading: %v", err)
	}
	if env.App != nil && !strings.Contains(welcome, stubName) {
		t.Errorf("restored session landed on %q, want the dashboard greeting", welcome)
	}
}

// The wrong master key must fail loudly rather than silently starting an
// anonymous session.
func TestSession_WrongKeyRejectsState(t *testing.T) {
	env := Setup(t)
	sess := env.NewSession(t)
	app, _ := env.NewApp(t, sess)
	env.SignIn(t, app)

	store, err := session.NewStore(stateMasterKey)
	if err != nil {
		t.Fatalf("create state store: %v", err)
	}
	statePath := filepath.Join(t.TempDir(), "state.bin")
	if err := store.Save(sess.Context(), statePath); err != nil {
		t.Fatalf("save storage state: %v", err)
	}

	other, err := session.NewStore(strings.Repeat("b", 64))
	if err != nil {
		t.Fatalf("create second store: %v", err)
	}
	if _, err := other.ContextOptions(statePath); err == nil {
		t.Fatal("loading state with the wrong key should fail")
	}
}
