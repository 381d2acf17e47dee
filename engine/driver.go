package engine

import "time"

// Page is the slice of a browser tab the workflow drives. Implementations
// wrap a real Playwright page; tests substitute a fake serving fixture HTML.
type Page interface {
	// Goto navigates and waits for domcontentloaded.
	Goto(url string) error
	// Fill types value into the first element matching selector.
	Fill(selector, value string) error
	// Press sends a key to the first element matching selector.
	Press(selector, key string) error
	// WaitFor blocks until selector is attached or the timeout elapses.
	WaitFor(selector string, timeout time.Duration) error
	// Content returns the current page HTML.
	Content() (string, error)
	Close() error
}

// Driver owns the browser context: launch, page creation, cookie
// injection and teardown.
type Driver interface {
	// Start acquires the browser context with stealth configuration and
	// the media-blocking route installed. Failure is fatal.
	Start() error
	NewPage() (Page, error)
	// SetCookie injects a cookie into the shared context.
	SetCookie(name, value, domain string) error
	// Close releases all pages and the context. Safe to call once; extra
	// calls are no-ops.
	Close() error
}
