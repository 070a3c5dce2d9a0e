package pages

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"
)

// HomePage drives the dashboard.
type HomePage struct {
	app *App
}

// Home returns the dashboard page object.
func (a *App) Home() *HomePage {
	return &HomePage{app: a}
}

// Open navigates to the dashboard.
func (p *HomePage) Open(ctx context.Context) error {
	if err := p.app.Goto(ctx, "/home"); err != nil {
		return err
	}
	_, err := p.app.await(ctx, welcomeHeading)
	return err
}

// WelcomeText returns the dashboard greeting.
func (p *HomePage) WelcomeText(ctx context.Context) (string, error) {
	return p.app.textOf(ctx, welcomeHeading)
}

// WaitForMeetingList waits until the asynchronously hydrated list settles.
// The list starts in data-state="loading" and flips to "ready" only after
// the meetings API responds, so this is where the retry policy earns its keep.
func (p *HomePage) WaitForMeetingList(ctx context.Context) error {
	_, err := p.app.await(ctx, meetingListReady)
	return err
}

// IsEmpty reports whether the hydrated list shows the empty state.
func (p *HomePage) IsEmpty() bool {
	return p.app.res.IsVisible(meetingListEmpty)
}

// MeetingTitles returns the titles in the hydrated list, in page order.
func (p *HomePage) MeetingTitles(ctx context.Context) ([]string, error) {
	if err := p.WaitForMeetingList(ctx); err != nil {
		return nil, err
	}
	rows := p.app.page.Query("#meeting-list .meeting-title")
	n, err := rows.Count()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, n)
	for i := 0; i < n; i++ {
		text, err := rows.Nth(i).TextContent()
		if err != nil {
			return nil, err
		}
		titles = append(titles, text)
	}
	return titles, nil
}

// GotoNewMeeting clicks through to the scheduling form.
func (p *HomePage) GotoNewMeeting(ctx context.Context) error {
	if err := p.app.click(ctx, newMeetingButton); err != nil {
		return err
	}
	_, err := p.app.await(ctx, meetingTitleField)
	return err
}

// OpenMeetingInNewTab clicks the row link for title, which targets a new
// tab, and returns the page object for that tab once it appears.
func (p *HomePage) OpenMeetingInNewTab(ctx context.Context, title string) (playwright.Page, error) {
	if err := p.WaitForMeetingList(ctx); err != nil {
		return nil, err
	}
	before := len(p.app.sess.Pages())
	if err := p.app.click(ctx, meetingRowLink(title)); err != nil {
		return nil, err
	}
	return p.app.WaitForNewPage(ctx, before, 10*time.Second)
}
