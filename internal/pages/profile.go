package pages

import (
	"context"
)

// ProfilePage drives the profile editor. The page ships with a fixed
// cookie-consent overlay covering the form, so saving exercises the
// force-click fallback unless the banner is dismissed first.
type ProfilePage struct {
	app *App
}

// Profile returns the profile page object.
func (a *App) Profile() *ProfilePage {
	return &ProfilePage{app: a}
}

// Open navigates to the profile editor.
func (p *ProfilePage) Open(ctx context.Context) error {
	if err := p.app.Goto(ctx, "/profile"); err != nil {
		return err
	}
	_, err := p.app.await(ctx, displayNameField)
	return err
}

// SetDisplayName replaces the display name field.
func (p *ProfilePage) SetDisplayName(ctx context.Context, name string) error {
	return p.app.fill(ctx, displayNameField, name)
}

// Save submits the form and waits for the server flash. The consent banner
// usually intercepts the pointer, so the click goes through the force path.
func (p *ProfilePage) Save(ctx context.Context) error {
	if err := p.app.click(ctx, saveProfileButton); err != nil {
		return err
	}
	_, err := p.app.await(ctx, profileSavedFlash)
	return err
}

// AcceptCookies dismisses the consent banner when present.
func (p *ProfilePage) AcceptCookies(ctx context.Context) (bool, error) {
	if !p.app.res.IsVisible(consentBanner) {
		return false, nil
	}
	if err := p.app.click(ctx, acceptCookiesButton); err != nil {
		return false, err
	}
	return true, nil
}

// ConsentBannerVisible reports whether the overlay is up.
func (p *ProfilePage) ConsentBannerVisible() bool {
	return p.app.res.IsVisible(consentBanner)
}

// DisplayName returns the current value of the name field.
func (p *ProfilePage) DisplayName(ctx context.Context) (string, error) {
	el, err := p.app.await(ctx, displayNameField)
	if err != nil {
		return "", err
	}
	return el.InputValue()
}
