package pages

import (
	"context"
)

// NotificationsPage drives the inbox.
type NotificationsPage struct {
	app *App
}

// Notifications returns the inbox page object.
func (a *App) Notifications() *NotificationsPage {
	return &NotificationsPage{app: a}
}

// Open navigates to the inbox.
func (p *NotificationsPage) Open(ctx context.Context) error {
	if err := p.app.Goto(ctx, "/notifications"); err != nil {
		return err
	}
	_, err := p.app.await(ctx, notificationsHeading)
	return err
}

// Filter clicks the tab for filter ("all", "mention", "invite").
func (p *NotificationsPage) Filter(ctx context.Context, filter, label string) error {
	return p.app.click(ctx, filterTab(filter, label))
}

// VisibleCount returns how many inbox entries are currently showing.
func (p *NotificationsPage) VisibleCount() (int, error) {
	items := p.app.page.Query("li.notification")
	n, err := items.Count()
	if err != nil {
		return 0, err
	}
	visible := 0
	for i := 0; i < n; i++ {
		ok, err := items.Nth(i).IsVisible()
		if err != nil {
			return 0, err
		}
		if ok {
			visible++
		}
	}
	return visible, nil
}

// MarkAllRead clicks the bulk action when it exists. Empty inboxes don't
// render the button; that absence is a skip, not a failure.
func (p *NotificationsPage) MarkAllRead(ctx context.Context) (bool, error) {
	if !p.app.res.IsVisible(markAllReadButton) {
		log.Info("mark-all-read not present, continuing")
		return false, nil
	}
	if err := p.app.click(ctx, markAllReadButton); err != nil {
		return false, err
	}
	return true, nil
}

// IsCaughtUp reports whether the empty-inbox hint is showing.
func (p *NotificationsPage) IsCaughtUp() bool {
	return p.app.res.IsVisible(caughtUpHint)
}
