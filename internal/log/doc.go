// Package log provides privacy-aware logging built on top of the standard
// slog package.
//
// Scanned pages are untrusted input: their URLs can carry session tokens in
// query strings, and their visible text can run to hundreds of kilobytes.
// The SanitizeHandler strips query strings and fragments from URL-valued
// attributes and truncates oversized string attributes before the record
// reaches the underlying handler, so log output stays shareable and
// readable even in verbose mode.
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Info("scan complete",
//	    "url", "https://example.com/reset?token=abc",  // logged without the query string
//	    "score", 85,
//	)
package log
