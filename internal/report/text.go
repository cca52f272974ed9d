package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/trustlens/trustlens/internal/model"
)

// TextWriter outputs human-readable text reports for terminal display.
// Plain text without ANSI colors keeps the output pipeable to files and
// other tools.
type TextWriter struct {
	baseWriter

	// verbose enables the informational signal section.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with informational signals.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// riskBadges maps risk levels to their display badges.
var riskBadges = map[model.RiskLevel]string{
	model.RiskSafe:   "SAFE",
	model.RiskLow:    "LOW RISK",
	model.RiskMedium: "MEDIUM RISK",
	model.RiskHigh:   "HIGH RISK",
}

// Write outputs the scan result in human-readable form.
func (w *TextWriter) Write(scan *Scan) (int, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("URL: %s\n", scan.URL))
	sb.WriteString(fmt.Sprintf("Scanned: %s\n", scan.ScannedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	if scan.Trusted {
		sb.WriteString("This site is on your trusted list. No scan was performed.\n")
		return w.flush(sb.String())
	}

	verdict := scan.Verdict
	sb.WriteString(fmt.Sprintf("Trust Score: %d/100\n", verdict.TrustScore))
	sb.WriteString(fmt.Sprintf("Risk Level:  %s\n", riskBadges[verdict.RiskLevel]))
	if scan.Degraded {
		sb.WriteString("Note: the page could not be fully read; this is a limited result.\n")
	}

	sb.WriteString("\nRed Flags:\n")
	for _, flag := range verdict.RedFlags {
		sb.WriteString(fmt.Sprintf("  - %s\n", flag))
	}

	if w.verbose && len(scan.Signals) > 0 {
		sb.WriteString("\nContent Signals (informational):\n")
		for _, signal := range scan.Signals {
			sb.WriteString(fmt.Sprintf("  - %s\n", signal))
		}
	}

	sb.WriteString(fmt.Sprintf("\n%s\n", verdict.Analysis))

	if len(scan.History) > 0 {
		sb.WriteString("\nRecent Scans:\n")
		for i, record := range scan.History {
			sb.WriteString(fmt.Sprintf("  %d. Score: %d | Risk: %s | %s\n",
				i+1, record.Score, record.Risk.String(), record.URL))
		}
	}

	return w.flush(sb.String())
}

// WriteHistory outputs only a history listing.
func (w *TextWriter) WriteHistory(records []model.HistoryRecord) (int, error) {
	if len(records) == 0 {
		return w.flush("No scan history yet.\n")
	}

	var sb strings.Builder
	sb.WriteString("Recent Scans:\n")
	for i, record := range records {
		sb.WriteString(fmt.Sprintf("  %d. %s | Score: %d | Risk: %s\n     %s\n",
			i+1, record.Timestamp.Format("2006-01-02 15:04"), record.Score,
			record.Risk.String(), record.URL))
	}
	return w.flush(sb.String())
}

// flush writes the assembled text to the destination.
func (w *TextWriter) flush(s string) (int, error) {
	return io.WriteString(w.output, s)
}
