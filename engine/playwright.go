package engine

import (
	"errors"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"

	"github.com/Chandima-Prabhath/Aura/apperrors"
)

// Launch ladder: an installed Chrome blends in better than the bundled
// Chromium, Edge is the common fallback on Windows, the downloaded
// Chromium always works.
var browserChannels = []string{"chrome", "msedge", ""}

const stealthInitScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
`

// PlaywrightConfig holds the browser-facing settings of the session.
type PlaywrightConfig struct {
	Headless  bool
	UserAgent string
	// NavigationTimeout bounds every Goto; zero means 60s.
	NavigationTimeout time.Duration
}

// PlaywrightDriver implements Driver on a Playwright-managed Chromium
// context with stealth configuration and media blocking.
type PlaywrightDriver struct {
	cfg PlaywrightConfig
	log zerolog.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
}

// NewPlaywrightDriver creates an unstarted driver.
func NewPlaywrightDriver(cfg PlaywrightConfig, log zerolog.Logger) *PlaywrightDriver {
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 60 * time.Second
	}
	return &PlaywrightDriver{
		cfg: cfg,
		log: log.With().Str("component", "browser").Logger(),
	}
}

// Start installs the Playwright runtime if needed, launches a browser and
// prepares the shared context: spoofed user agent, fixed viewport, en-US
// locale, webdriver-flag suppression and the media-blocking route.
func (d *PlaywrightDriver) Start() error {
	d.log.Info().Msg("Installing browser runtime if needed")
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return apperrors.NewLaunchError("chromium", err)
	}

	pw, err := playwright.Run(&playwright.RunOptions{Browsers: []string{"chromium"}})
	if err != nil {
		return apperrors.NewLaunchError("chromium", err)
	}
	d.pw = pw

	launchArgs := []string{"--disable-blink-features=AutomationControlled"}

	var browser playwright.Browser
	var lastErr error
	for _, channel := range browserChannels {
		opts := playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(d.cfg.Headless),
			Args:     launchArgs,
		}
		name := "chromium"
		if channel != "" {
			opts.Channel = playwright.String(channel)
			name = channel
		}

		browser, lastErr = pw.Chromium.Launch(opts)
		if lastErr == nil {
			d.log.Info().Str("browser", name).Msg("Browser launched")
			break
		}
		d.log.Debug().Err(lastErr).Str("browser", name).Msg("Launch attempt failed")
	}
	if browser == nil {
		_ = pw.Stop()
		d.pw = nil
		return apperrors.NewLaunchError("chromium", lastErr)
	}
	d.browser = browser

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(d.cfg.UserAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
		Locale:    playwright.String("en-US"),
	})
	if err != nil {
		d.teardown()
		return apperrors.NewLaunchError("browser context", err)
	}
	d.context = context

	if err := context.Route("**/*", func(route playwright.Route) {
		request := route.Request()
		if BlockedRequest(request.ResourceType(), request.URL()) {
			if err := route.Abort(); err != nil {
				d.log.Debug().Err(err).Msg("Could not abort blocked request")
			}
			return
		}
		if err := route.Continue(); err != nil {
			d.log.Debug().Err(err).Msg("Could not continue request")
		}
	}); err != nil {
		d.teardown()
		return apperrors.NewLaunchError("browser context", err)
	}

	if err := context.AddInitScript(playwright.Script{Content: playwright.String(stealthInitScript)}); err != nil {
		d.teardown()
		return apperrors.NewLaunchError("browser context", err)
	}

	d.log.Info().Bool("headless", d.cfg.Headless).Msg("Browser ready")
	return nil
}

// NewPage opens a tab in the shared context.
func (d *PlaywrightDriver) NewPage() (Page, error) {
	page, err := d.context.NewPage()
	if err != nil {
		return nil, err
	}
	return &playwrightPage{page: page, timeout: d.cfg.NavigationTimeout}, nil
}

// SetCookie injects a cookie into the shared context.
func (d *PlaywrightDriver) SetCookie(name, value, domain string) error {
	return d.context.AddCookies([]playwright.OptionalCookie{{
		Name:   name,
		Value:  value,
		Domain: playwright.String(domain),
		Path:   playwright.String("/"),
	}})
}

// Close releases the context, the browser and the Playwright process.
// Extra calls are no-ops.
func (d *PlaywrightDriver) Close() error {
	if d.pw == nil && d.browser == nil && d.context == nil {
		return nil
	}
	d.log.Info().Msg("Closing browser")
	d.teardown()
	return nil
}

func (d *PlaywrightDriver) teardown() {
	if d.context != nil {
		if err := d.context.Close(); err != nil {
			d.log.Warn().Err(err).Msg("Could not close browser context")
		}
		d.context = nil
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil {
			d.log.Warn().Err(err).Msg("Could not close browser")
		}
		d.browser = nil
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			d.log.Warn().Err(err).Msg("Could not stop playwright")
		}
		d.pw = nil
	}
}

// BlockedRequest is the media-blocking predicate installed into the
// context route: deny media-typed requests and raw .mp4 fetches so
// scraping never pulls stream bandwidth.
func BlockedRequest(resourceType, url string) bool {
	switch resourceType {
	case "media", "video", "audio", "font":
		return true
	}
	return strings.Contains(url, ".mp4")
}

type playwrightPage struct {
	page    playwright.Page
	timeout time.Duration
}

func (p *playwrightPage) Goto(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(p.timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return apperrors.NewNavigationTimeoutError(url, p.timeout, err)
		}
		return err
	}
	return nil
}

func (p *playwrightPage) Fill(selector, value string) error {
	return p.page.Locator(selector).First().Fill(value)
}

func (p *playwrightPage) Press(selector, key string) error {
	return p.page.Locator(selector).First().Press(key)
}

func (p *playwrightPage) WaitFor(selector string, timeout time.Duration) error {
	err := p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil && errors.Is(err, playwright.ErrTimeout) {
		return apperrors.NewNavigationTimeoutError(p.page.URL(), timeout, err)
	}
	return err
}

func (p *playwrightPage) Content() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
