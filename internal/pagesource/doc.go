// Package pagesource provides access to rendered page content: the
// SnapshotProvider interface, an HTTP-backed implementation, and a
// local-file implementation for offline use and tests.
//
// All failures to read a page surface as *PageAccessError so that
// callers can substitute a degraded verdict instead of failing the
// scan.
package pagesource
