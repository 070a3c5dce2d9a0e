package browser

import (
	"strings"
	"testing"
)

func TestLogin_PasswordHappyPath(t *testing.T) {
	env := Setup(t)
	sess := env.NewSession(t)
	app, _ := env.NewApp(t, sess)

	env.SignIn(t, app)

	welcome, err := app.Home().WelcomeText(t.Context())
	if err != nil {
		t.Fatalf("read welcome heading: %v", err)
	}
	if welcome == "" {
		t.Error("welcome heading is empty after sign-in")
	}
	if env.App != nil && !strings.Contains(welcome, stubName) {
		t.Errorf("welcome heading %q does not mention %q", welcome, stubName)
	}
}

func TestLogin_WrongPasswordShowsError(t *testing.T) {
	env := Setup(t)
	sess := env.NewSession(t)
	app, _ := env.NewApp(t, sess)

	login := app.Login()
	if err := login.Open(t.Context()); err != nil {
		t.Fatalf("open login page: %v", err)
	}
	msg, err := login.SignInExpectingRejection(t.Context(), env.Cfg.Email, "wrong-password")
	if err != nil {
		t.Fatalf("expected inline error banner: %v", err)
	}
	if !strings.Contains(msg, "Invalid email or password") {
		t.Errorf("unexpected error banner text: %q", msg)
	}
}

func TestLogin_SSOFlow(t *testing.T) {
	env := Setup(t)
	env.RequireStub(t)
	env.Provider.QueueUser("ana@example.com", "Ana QA")

	sess := env.NewSession(t)
	app, _ := env.NewApp(t, sess)

	login := app.Login()
	if err := login.Open(t.Context()); err != nil {
		t.Fatalf("open login page: %v", err)
	}
	if err := login.SignInWithSSO(t.Context()); err != nil {
		t.Fatalf("sso sign in: %v", err)
	}

	welcome, err := app.Home().WelcomeText(t.Context())
	if err != nil {
		t.Fatalf("read welcome heading: %v", err)
	}
	if !strings.Contains(welcome, "Ana QA") {
		t.Errorf("welcome heading %q does not mention the federated identity", welcome)
	}
}
