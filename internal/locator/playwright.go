package locator

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// FromPlaywright adapts a Playwright page to the resolver's Page interface.
func FromPlaywright(p playwright.Page) Page {
	return pwPage{p: p}
}

type pwPage struct {
	p playwright.Page
}

func (pg pwPage) Query(selector string) Handle {
	return pwHandle{l: pg.p.Locator(selector)}
}

func (pg pwPage) Screenshot() ([]byte, error) {
	return pg.p.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

func (pg pwPage) URL() string {
	return pg.p.URL()
}

type pwHandle struct {
	l playwright.Locator
}

func (h pwHandle) Count() (int, error) {
	return h.l.Count()
}

func (h pwHandle) First() Handle {
	return pwHandle{l: h.l.First()}
}

func (h pwHandle) Nth(index int) Handle {
	return pwHandle{l: h.l.Nth(index)}
}

func (h pwHandle) WaitVisible(timeout time.Duration) error {
	return h.l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (h pwHandle) IsVisible() (bool, error) {
	return h.l.IsVisible()
}

func (h pwHandle) Click(force bool) error {
	if force {
		return h.l.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
	}
	return h.l.Click()
}

func (h pwHandle) Fill(text string, force bool) error {
	if force {
		return h.l.Fill(text, playwright.LocatorFillOptions{Force: playwright.Bool(true)})
	}
	return h.l.Fill(text)
}

func (h pwHandle) Hover(force bool) error {
	if force {
		return h.l.Hover(playwright.LocatorHoverOptions{Force: playwright.Bool(true)})
	}
	return h.l.Hover()
}

func (h pwHandle) Check(force bool) error {
	if force {
		return h.l.Check(playwright.LocatorCheckOptions{Force: playwright.Bool(true)})
	}
	return h.l.Check()
}

func (h pwHandle) TextContent() (string, error) {
	return h.l.TextContent()
}

func (h pwHandle) InputValue() (string, error) {
	return h.l.InputValue()
}

func (h pwHandle) GetAttribute(name string) (string, error) {
	return h.l.GetAttribute(name)
}
