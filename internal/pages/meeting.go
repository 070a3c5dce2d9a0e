package pages

import (
	"context"
)

// MeetingPage drives a single meeting's page.
type MeetingPage struct {
	app *App
}

// Meeting returns the meeting page object.
func (a *App) Meeting() *MeetingPage {
	return &MeetingPage{app: a}
}

// Create fills the scheduling form and submits it, landing on the new
// meeting's page. The duration select keeps its default.
func (p *MeetingPage) Create(ctx context.Context, title string) error {
	if err := p.app.fill(ctx, meetingTitleField, title); err != nil {
		return err
	}
	if err := p.app.click(ctx, createMeetingButton); err != nil {
		return err
	}
	_, err := p.app.await(ctx, joinMeetingButton)
	return err
}

// Title returns the meeting heading.
func (p *MeetingPage) Title(ctx context.Context) (string, error) {
	return p.app.textOf(ctx, meetingHeading)
}

// Join clicks the join control and waits for the in-meeting banner.
func (p *MeetingPage) Join(ctx context.Context) error {
	if err := p.app.click(ctx, joinMeetingButton); err != nil {
		return err
	}
	_, err := p.app.await(ctx, meetingRoomBanner)
	return err
}

// Leave clicks the leave control and waits for the join button to return.
func (p *MeetingPage) Leave(ctx context.Context) error {
	if err := p.app.click(ctx, leaveMeetingButton); err != nil {
		return err
	}
	_, err := p.app.await(ctx, joinMeetingButton)
	return err
}

// InMeeting reports whether the in-meeting banner is showing.
func (p *MeetingPage) InMeeting() bool {
	return p.app.res.IsVisible(meetingRoomBanner)
}
