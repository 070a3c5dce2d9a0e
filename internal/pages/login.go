package pages

import (
	"context"
)

// LoginPage drives /onboarding/Login.
type LoginPage struct {
	app *App
}

// Login returns the login page object.
func (a *App) Login() *LoginPage {
	return &LoginPage{app: a}
}

// Open navigates to the login form.
func (p *LoginPage) Open(ctx context.Context) error {
	return p.app.Goto(ctx, "/onboarding/Login")
}

// SignIn submits the password form and waits for the dashboard.
func (p *LoginPage) SignIn(ctx context.Context, email, password string) error {
	if err := p.app.fill(ctx, loginEmail, email); err != nil {
		return err
	}
	if err := p.app.fill(ctx, loginPassword, password); err != nil {
		return err
	}
	if err := p.app.click(ctx, loginSubmit); err != nil {
		return err
	}
	_, err := p.app.await(ctx, welcomeHeading)
	return err
}

// SignInExpectingRejection submits bad credentials and waits for the inline
// error banner instead of the dashboard.
func (p *LoginPage) SignInExpectingRejection(ctx context.Context, email, password string) (string, error) {
	if err := p.app.fill(ctx, loginEmail, email); err != nil {
		return "", err
	}
	if err := p.app.fill(ctx, loginPassword, password); err != nil {
		return "", err
	}
	if err := p.app.click(ctx, loginSubmit); err != nil {
		return "", err
	}
	return p.app.textOf(ctx, loginError)
}

// SignInWithSSO clicks through the federated flow. The provider redirects
// straight back, so the whole journey stays in one tab; the method returns
// once the dashboard heading renders.
func (p *LoginPage) SignInWithSSO(ctx context.Context) error {
	if err := p.app.click(ctx, ssoLogin); err != nil {
		return err
	}
	_, err := p.app.await(ctx, welcomeHeading)
	return err
}
