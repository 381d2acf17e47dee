// Package apperrors defines the typed errors surfaced by the scraping
// workflow: launch failures, navigation timeouts, missing page structure
// and invalid episode selections.
package apperrors

import (
	"fmt"
	"time"
)

// LaunchError reports that the browser or its context failed to
// initialize. It is fatal; callers are not expected to retry.
type LaunchError struct {
	Browser string
	Err     error
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	if e.Browser != "" {
		return fmt.Sprintf("failed to launch %s: %v", e.Browser, e.Err)
	}
	return fmt.Sprintf("failed to launch browser: %v", e.Err)
}

// Unwrap returns the underlying launch failure.
func (e *LaunchError) Unwrap() error { return e.Err }

// Is allows for error checking with errors.Is().
func (e *LaunchError) Is(target error) bool {
	_, ok := target.(*LaunchError)
	return ok
}

// NewLaunchError creates a new LaunchError.
func NewLaunchError(browser string, err error) *LaunchError {
	return &LaunchError{Browser: browser, Err: err}
}

// NavigationTimeoutError reports that a page did not respond within the
// configured timeout. It is surfaced per operation; the caller may retry.
type NavigationTimeoutError struct {
	URL     string
	Timeout time.Duration
	Err     error
}

// Error implements the error interface.
func (e *NavigationTimeoutError) Error() string {
	return fmt.Sprintf("navigation to %s timed out after %s", e.URL, e.Timeout)
}

// Unwrap returns the driver error that signalled the timeout.
func (e *NavigationTimeoutError) Unwrap() error { return e.Err }

// Is allows for error checking with errors.Is().
func (e *NavigationTimeoutError) Is(target error) bool {
	_, ok := target.(*NavigationTimeoutError)
	return ok
}

// NewNavigationTimeoutError creates a new NavigationTimeoutError.
func NewNavigationTimeoutError(url string, timeout time.Duration, err error) *NavigationTimeoutError {
	return &NavigationTimeoutError{URL: url, Timeout: timeout, Err: err}
}

// NotFoundError reports that an expected page structure is absent: the show
// URL is wrong, the listing is empty, or the site layout changed. It is not
// retried automatically.
type NotFoundError struct {
	Resource string
	Ref      string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s not found at %s", e.Resource, e.Ref)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, ref string) *NotFoundError {
	return &NotFoundError{Resource: resource, Ref: ref}
}

// ValidationError reports a malformed or out-of-range episode selection
// expression. It is raised before any navigation occurs.
type ValidationError struct {
	Expr   string
	Token  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid selection %q: token %q: %s", e.Expr, e.Token, e.Reason)
	}
	return fmt.Sprintf("invalid selection %q: %s", e.Expr, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new ValidationError.
func NewValidationError(expr, token, reason string) *ValidationError {
	return &ValidationError{Expr: expr, Token: token, Reason: reason}
}
