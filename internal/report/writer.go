package report

import (
	"io"
	"time"

	"github.com/trustlens/trustlens/internal/model"
)

// Scan is one renderable scan result. It pairs the verdict with the
// presentation-only data the panel surface needs.
type Scan struct {
	// URL is the scanned page URL.
	URL string `json:"url"`

	// ScannedAt is when the scan completed.
	ScannedAt time.Time `json:"scanned_at"`

	// Trusted is true for allow-listed URLs; Verdict is nil then.
	Trusted bool `json:"trusted"`

	// Verdict is the scoring result, nil only for trusted URLs.
	Verdict *model.Verdict `json:"verdict,omitempty"`

	// Degraded marks a verdict substituted for an unreadable page.
	Degraded bool `json:"degraded,omitempty"`

	// Signals are informational content patterns that matched without
	// affecting the score.
	Signals []string `json:"signals,omitempty"`

	// History holds the recent records shown alongside the result.
	History []model.HistoryRecord `json:"history,omitempty"`
}

// Writer renders scan results to a configured destination.
type Writer interface {
	// Write outputs the scan result.
	// Returns the number of bytes written and any error encountered.
	Write(scan *Scan) (int, error)
}

// baseWriter provides the shared output destination.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
