// Package pages holds the page objects for the Quorum UI. Each page object
// is a thin veneer: declarative candidate tables plus flows that compose
// resolve, interact and retry. All knowledge about the product's markup
// lives here, never in the tests.
package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/quorumhq/quorum-e2e/internal/action"
	"github.com/quorumhq/quorum-e2e/internal/config"
	"github.com/quorumhq/quorum-e2e/internal/errs"
	"github.com/quorumhq/quorum-e2e/internal/locator"
	"github.com/quorumhq/quorum-e2e/internal/obs"
	"github.com/quorumhq/quorum-e2e/internal/retry"
	"github.com/quorumhq/quorum-e2e/internal/session"
)

var log = obs.Pkg("pages")

// App drives one page of the product. It owns the resolver and the retry
// policy so page objects stay declarative.
type App struct {
	sess *session.Session
	pw   playwright.Page
	page locator.Page
	res  *locator.Resolver

	policy     retry.Policy
	baseURL    string
	navTimeout time.Duration
}

// New builds an App around an open page. shots may be nil to disable
// failure screenshots.
func New(sess *session.Session, pw playwright.Page, cfg *config.Config, shots locator.ScreenshotSink) *App {
	page := locator.FromPlaywright(pw)
	return &App{
		sess: sess,
		pw:   pw,
		page: page,
		res:  locator.NewResolver(page, cfg.ActionTimeout, shots),
		policy: retry.Policy{
			Attempts: cfg.RetryAttempts,
			Delay:    cfg.RetryDelay,
		},
		baseURL:    cfg.BaseURL,
		navTimeout: cfg.NavTimeout,
	}
}

// Page returns the underlying driver page.
func (a *App) Page() playwright.Page {
	return a.pw
}

// Resolver exposes the resolver for one-off queries in tests.
func (a *App) Resolver() *locator.Resolver {
	return a.res
}

// Goto navigates to path under the configured base URL, paced against the
// shared account.
func (a *App) Goto(ctx context.Context, path string) error {
	if err := a.sess.Pace(ctx); err != nil {
		return errs.Wrap(errs.Navigation, "navigation pacing interrupted", err)
	}
	_, err := a.pw.Goto(a.baseURL+path, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(a.navTimeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	if err != nil {
		return errs.Wrap(errs.Navigation, fmt.Sprintf("goto %s failed", path), err)
	}
	obs.From(ctx).Debug("navigated", "path", path, "url", a.pw.URL())
	return nil
}

// click resolves chain and clicks it, retrying the whole resolve+click unit.
func (a *App) click(ctx context.Context, chain locator.Chain) error {
	return a.policy.Do(ctx, func(ctx context.Context) error {
		el, err := a.res.Resolve(chain)
		if err != nil {
			return err
		}
		return action.Click(ctx, el)
	})
}

// fill resolves chain and replaces its value, retrying resolve+fill.
func (a *App) fill(ctx context.Context, chain locator.Chain, text string) error {
	return a.policy.Do(ctx, func(ctx context.Context) error {
		el, err := a.res.Resolve(chain)
		if err != nil {
			return err
		}
		return action.Fill(ctx, el, text)
	})
}

// await retries resolution until chain matches, returning the element.
func (a *App) await(ctx context.Context, chain locator.Chain) (locator.Element, error) {
	var el locator.Element
	err := a.policy.Do(ctx, func(ctx context.Context) error {
		var rerr error
		el, rerr = a.res.Resolve(chain)
		return rerr
	})
	return el, err
}

// textOf returns the text content of the resolved chain.
func (a *App) textOf(ctx context.Context, chain locator.Chain) (string, error) {
	el, err := a.await(ctx, chain)
	if err != nil {
		return "", err
	}
	return el.TextContent()
}

// WaitForNewPage polls the session's page set until a page beyond the first
// before pages appears. New tabs and auth popups surface here.
func (a *App) WaitForNewPage(ctx context.Context, before int, timeout time.Duration) (playwright.Page, error) {
	deadline := time.Now().Add(timeout)
	for {
		pages := a.sess.Pages()
		if len(pages) > before {
			p := pages[len(pages)-1]
			if err := p.WaitForLoadState(); err != nil {
				return nil, errs.Wrap(errs.Navigation, "new page failed to load", err)
			}
			log.Debug("new page discovered", "url", p.URL(), "open_pages", len(pages))
			return p, nil
		}
		if time.Now().After(deadline) {
			return nil, errs.New(errs.Timeout,
				fmt.Sprintf("no new page appeared within %s", timeout))
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}
