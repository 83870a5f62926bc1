// Package browser adapts the Playwright automation driver to the harness's
// session-injection surface.
package browser

import (
	"context"

	"clubharness/internal/domain/entity"
	"clubharness/internal/domain/service"
	"clubharness/internal/errors"

	"github.com/playwright-community/playwright-go"
)

// Fixture manages Playwright browser instances for tests.
type Fixture struct {
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// NewFixture starts Playwright and launches a Chromium browser. Pass
// headless=false to watch the browser while debugging a suite.
func NewFixture(headless bool) (*Fixture, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Wrap(err, "start playwright")
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()

		return nil, errors.Wrap(err, "launch browser")
	}

	return &Fixture{PW: pw, Browser: browser}, nil
}

// NewContext creates a browser context with isolated cookies and storage.
// Each context is independent, which is what makes per-test session
// injection safe.
func (f *Fixture) NewContext() (playwright.BrowserContext, error) {
	browserContext, err := f.Browser.NewContext()
	if err != nil {
		return nil, errors.Wrap(err, "create browser context")
	}

	return browserContext, nil
}

// Close releases all Playwright resources.
func (f *Fixture) Close() error {
	if err := f.Browser.Close(); err != nil {
		return errors.Wrap(err, "close browser")
	}

	return errors.Wrap(f.PW.Stop(), "stop playwright")
}

// contextTarget adapts a Playwright browser context to the CookieTarget
// interface.
type contextTarget struct {
	browserContext playwright.BrowserContext
}

// NewContextTarget wraps a Playwright browser context as a CookieTarget.
func NewContextTarget(browserContext playwright.BrowserContext) service.CookieTarget {
	return &contextTarget{browserContext: browserContext}
}

// AddSessionCookie installs the session cookie into the context's cookie jar.
func (t *contextTarget) AddSessionCookie(_ context.Context, cookie entity.SessionCookie) error {
	sameSite := playwright.SameSiteAttributeLax
	switch cookie.SameSite {
	case "Strict":
		sameSite = playwright.SameSiteAttributeStrict
	case "None":
		sameSite = playwright.SameSiteAttributeNone
	}

	err := t.browserContext.AddCookies([]playwright.OptionalCookie{{
		Name:     cookie.Name,
		Value:    cookie.Value,
		Domain:   playwright.String(cookie.Domain),
		Path:     playwright.String(cookie.Path),
		Secure:   playwright.Bool(cookie.Secure),
		HttpOnly: playwright.Bool(cookie.HTTPOnly),
		SameSite: sameSite,
	}})

	return errors.Wrap(err, "add session cookie")
}
