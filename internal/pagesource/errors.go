package pagesource

import "fmt"

// PageAccessError reports that a page's content could not be read.
// It is recovered locally by substituting a degraded verdict and is
// never surfaced to the user as a hard failure.
type PageAccessError struct {
	// URL is the page that could not be read.
	URL string

	// Cause is the underlying failure.
	Cause error
}

// Error implements the error interface.
func (e *PageAccessError) Error() string {
	return fmt.Sprintf("page not accessible: %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying failure.
func (e *PageAccessError) Unwrap() error {
	return e.Cause
}
