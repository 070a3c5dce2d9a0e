// Package session makes the authenticated browser session an explicit,
// passed-in object instead of ambient global state. One session owns one
// browser context; the login flow mutates it, every later step only reads
// it, and runs are serialized on the shared external account.
package session

import (
	"context"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/time/rate"

	"github.com/quorumhq/quorum-e2e/internal/obs"
)

var log = obs.Pkg("session")

// Session wraps one authenticated browser context.
type Session struct {
	browserCtx playwright.BrowserContext
	pacer      *rate.Limiter
}

// New wraps a browser context. navPerSecond throttles navigations against
// the shared account; zero or negative disables pacing.
func New(browserCtx playwright.BrowserContext, navPerSecond float64) *Session {
	var pacer *rate.Limiter
	if navPerSecond > 0 {
		pacer = rate.NewLimiter(rate.Limit(navPerSecond), 1)
	}
	return &Session{browserCtx: browserCtx, pacer: pacer}
}

// Context returns the underlying browser context.
func (s *Session) Context() playwright.BrowserContext {
	return s.browserCtx
}

// NewPage opens a page in the session's context.
func (s *Session) NewPage() (playwright.Page, error) {
	return s.browserCtx.NewPage()
}

// Pace blocks until the next navigation is allowed.
func (s *Session) Pace(ctx context.Context) error {
	if s.pacer == nil {
		return nil
	}
	return s.pacer.Wait(ctx)
}

// Pages returns the currently open pages. New tabs and OAuth popups are
// discovered by polling this set rather than subscribing to events.
func (s *Session) Pages() []playwright.Page {
	return s.browserCtx.Pages()
}

// Close tears the context down. Teardown is explicit: callers defer this in
// the test that created the session.
func (s *Session) Close() error {
	log.Debug("closing session context")
	return s.browserCtx.Close()
}
