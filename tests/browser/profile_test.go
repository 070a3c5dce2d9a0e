package browser

import (
	"strings"
	"testing"
)

// The profile form sits under a fixed consent overlay, so the natural click
// on Save is intercepted and the one-shot force fallback has to carry it.
func TestProfile_SaveThroughConsentOverlay(t *testing.T) {
	env := Setup(t)
	env.RequireStub(t)
	sess := env.NewSession(t)
	app, _ := env.NewApp(t, sess)
	env.SignIn(t, app)

	profile := app.Profile()
	if err := profile.Open(t.Context()); err != nil {
		t.Fatalf("open profile: %v", err)
	}
	if !profile.ConsentBannerVisible() {
		t.Fatal("consent banner should cover the form on first visit")
	}

	if err := profile.SetDisplayName(t.Context(), "Renamed Bot"); err != nil {
		t.Fatalf("set display name: %v", err)
	}
	if err := profile.Save(t.Context()); err != nil {
		t.Fatalf("save through overlay: %v", err)
	}

	name, err := profile.DisplayName(t.Context())
	if err != nil {
		t.Fatalf("read display name after save: %v", err)
	}
	if !strings.Contains(name, "Renamed Bot") {
		t.Errorf("display name = %q after save, want %q", name, "Renamed Bot")
	}
}

func TestProfile_SaveAfterAcceptingCookies(t *testing.T) {
	env := Setup(t)
	env.RequireStub(t)
	sess := env.NewSession(t)
	app, _ := env.NewApp(t, sess)
	env.SignIn(t, app)

	profile := app.Profile()
	if err := profile.Open(t.Context()); err != nil {
		t.Fatalf("open profile: %v", err)
	}

	dismissed, err := profile.AcceptCookies(t.Context())
	if err != nil {
		t.Fatalf("accept cookies: %v", err)
	}
	if !dismissed {
		t.Fatal("consent banner should be present to dismiss")
	}
	if profile.ConsentBannerVisible() {
		t.Fatal("consent banner still visible after accept")
	}

	if err := profile.SetDisplayName(t.Context(), "Unblocked Bot"); err != nil {
		t.Fatalf("set display name: %v", err)
	}
	if err := profile.Save(t.Context()); err != nil {
		t.Fatalf("save with banner dismissed: %v", err)
	}
}
