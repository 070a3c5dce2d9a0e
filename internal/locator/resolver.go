package locator

import (
	"fmt"
	"strings"
	"time"

	"github.com/quorumhq/quorum-e2e/internal/errs"
	"github.com/quorumhq/quorum-e2e/internal/obs"
)

// Element is a resolved handle the action layer interacts with.
type Element interface {
	Click(force bool) error
	Fill(text string, force bool) error
	Hover(force bool) error
	Check(force bool) error
	TextContent() (string, error)
	InputValue() (string, error)
	GetAttribute(name string) (string, error)
	IsVisible() (bool, error)
}

// Handle is a lazily evaluated element query.
type Handle interface {
	Element
	Count() (int, error)
	First() Handle
	Nth(index int) Handle
	WaitVisible(timeout time.Duration) error
}

// Page is the subset of the driver surface resolution needs.
type Page interface {
	Query(selector string) Handle
	Screenshot() ([]byte, error)
	URL() string
}

// ScreenshotSink receives the diagnostic screenshot captured when a chain
// exhausts. The artifacts package implements this.
type ScreenshotSink interface {
	SaveScreenshot(name string, png []byte) (string, error)
}

// NotFoundError carries the full attempted candidate list for diagnostics.
type NotFoundError struct {
	Target    string
	Attempted []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no candidate for %q resolved; attempted: %s",
		e.Target, strings.Join(e.Attempted, " | "))
}

// Resolver resolves chains against one page.
type Resolver struct {
	page    Page
	timeout time.Duration
	shots   ScreenshotSink
}

// NewResolver creates a resolver with a per-candidate visibility timeout.
// shots may be nil; exhaustion then skips the diagnostic screenshot.
func NewResolver(page Page, timeout time.Duration, shots ScreenshotSink) *Resolver {
	return &Resolver{page: page, timeout: timeout, shots: shots}
}

var log = obs.Pkg("locator")

// Resolve tries each candidate in chain order and returns a handle to the
// first visible match of the first candidate that succeeds. A candidate
// succeeds when its query matches at least one element and the first match
// becomes visible within the timeout. Presence without visibility (zero
// size, display:none, visibility:hidden) does not count.
//
// On exhaustion it captures exactly one full-page screenshot and returns an
// element_not_found error wrapping a *NotFoundError with the attempted list.
func (r *Resolver) Resolve(chain Chain) (Element, error) {
	attempted := make([]string, 0, len(chain.Candidates))
	for _, cand := range chain.Candidates {
		sel := cand.Selector()
		attempted = append(attempted, sel)

		h := r.page.Query(sel)
		n, err := h.Count()
		if err != nil || n == 0 {
			continue
		}
		first := h.First()
		if err := first.WaitVisible(r.timeout); err != nil {
			log.Debug("candidate present but not visible",
				"target", chain.Name, "selector", sel, "matches", n)
			continue
		}
		log.Debug("resolved", "target", chain.Name, "selector", sel, "kind", cand.Kind.String())
		return first, nil
	}

	r.captureFailure(chain.Name)
	return nil, errs.Wrap(errs.ElementNotFound,
		fmt.Sprintf("element %q not found", chain.Name),
		&NotFoundError{Target: chain.Name, Attempted: attempted})
}

// IsVisible is the recoverable-absence form of Resolve: it reports whether
// any candidate resolves, swallowing failure into a boolean so callers can
// branch on optional features. No screenshot is taken.
func (r *Resolver) IsVisible(chain Chain) bool {
	for _, cand := range chain.Candidates {
		h := r.page.Query(cand.Selector())
		n, err := h.Count()
		if err != nil || n == 0 {
			continue
		}
		visible, err := h.First().IsVisible()
		if err == nil && visible {
			return true
		}
	}
	return false
}

// ScanButtons is the known-brittle last resort: enumerate every button on
// the page and match by class-name substring or visible text. It encodes
// knowledge of one specific UI build and must stay opt-in; prefer adding a
// candidate to the chain.
func (r *Resolver) ScanButtons(classHint, textHint string) (Element, bool) {
	buttons := r.page.Query("button")
	n, err := buttons.Count()
	if err != nil {
		return nil, false
	}
	for i := 0; i < n; i++ {
		b := buttons.Nth(i)
		visible, err := b.IsVisible()
		if err != nil || !visible {
			continue
		}
		if classHint != "" {
			class, err := b.GetAttribute("class")
			if err == nil && strings.Contains(class, classHint) {
				log.Warn("button scan matched by class hint", "hint", classHint, "index", i)
				return b, true
			}
		}
		if textHint != "" {
			text, err := b.TextContent()
			if err == nil && strings.Contains(text, textHint) {
				log.Warn("button scan matched by text hint", "hint", textHint, "index", i)
				return b, true
			}
		}
	}
	return nil, false
}

func (r *Resolver) captureFailure(target string) {
	if r.shots == nil {
		return
	}
	png, err := r.page.Screenshot()
	if err != nil {
		log.Error("failure screenshot capture failed", "target", target, "error", err)
		return
	}
	name := "notfound-" + sanitize(target)
	path, err := r.shots.SaveScreenshot(name, png)
	if err != nil {
		log.Error("failure screenshot save failed", "target", target, "error", err)
		return
	}
	log.Info("captured failure screenshot", "target", target, "path", path, "url", r.page.URL())
}

func sanitize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, s)
	return strings.Trim(mapped, "-")
}
