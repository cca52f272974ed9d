// Package panel implements the user-facing panel context.
//
// The panel orchestrates a scan in strict sequence: allow-list check,
// snapshot, evaluate, persist history, and conditionally route the
// result over the bus. Persistence and routing depend on the verdict,
// so the sequence is never reordered; across overlapping scans no
// ordering guarantee exists beyond the store's own append ordering.
package panel

import (
	"context"
	"errors"
	"log/slog"

	"github.com/trustlens/trustlens/internal/bus"
	"github.com/trustlens/trustlens/internal/engine"
	"github.com/trustlens/trustlens/internal/model"
	"github.com/trustlens/trustlens/internal/pagesource"
	"github.com/trustlens/trustlens/internal/store"
)

// RecentDisplayLimit is how many history records the panel shows.
const RecentDisplayLimit = 5

// ScanResult is what the panel renders after a scan attempt.
type ScanResult struct {
	// URL is the scanned page URL.
	URL string

	// Trusted is true when the URL is allow-listed; the verdict is nil
	// in that case because scoring never ran.
	Trusted bool

	// Verdict is the scoring result. Nil only when Trusted.
	Verdict *model.Verdict

	// Degraded is true when the page could not be fully read and the
	// verdict is the substitute one.
	Degraded bool

	// Signals are informational content patterns that matched; they do
	// not affect the score.
	Signals []string
}

// Panel coordinates scans on behalf of the user-facing surface.
type Panel struct {
	source  pagesource.SnapshotProvider
	engine  *engine.Engine
	allow   *store.AllowList
	history *store.History
	bus     *bus.Bus
	logger  *slog.Logger
}

// Option configures a Panel.
type Option func(*Panel)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Panel) {
		p.logger = logger
	}
}

// New creates a Panel. All collaborators are required except the
// logger.
func New(source pagesource.SnapshotProvider, eng *engine.Engine, kv *store.KV, b *bus.Bus, opts ...Option) *Panel {
	p := &Panel{
		source:  source,
		engine:  eng,
		allow:   store.NewAllowList(kv),
		history: store.NewHistory(kv),
		bus:     b,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scan runs one full scan of url.
//
// An allow-listed URL short-circuits to a trusted result without
// scoring. A page-access failure substitutes the degraded verdict; the
// user always receives some verdict for a scan attempt. A history
// persistence failure is logged and does not abort the scan, since the
// verdict is already computed and the user should still see it.
func (p *Panel) Scan(ctx context.Context, url string) (*ScanResult, error) {
	trusted, err := p.allow.Contains(ctx, url)
	if err != nil {
		return nil, err
	}
	if trusted {
		p.logger.Debug("url is allow-listed, skipping scan", "url", url)
		return &ScanResult{URL: url, Trusted: true}, nil
	}

	result := &ScanResult{URL: url}

	snap, err := p.source.ActiveSnapshot(ctx, url)
	var accessErr *pagesource.PageAccessError
	switch {
	case errors.As(err, &accessErr):
		p.logger.Warn("page not fully readable, using degraded verdict", "url", url, "cause", accessErr.Cause)
		verdict := engine.DegradedVerdict()
		result.Verdict = &verdict
		result.Degraded = true
	case err != nil:
		return nil, err
	default:
		verdict := p.engine.Evaluate(snap)
		result.Verdict = &verdict
		result.Signals = p.engine.Catalog().MatchPatterns(snap.VisibleText)
	}

	record := model.NewHistoryRecord(url, *result.Verdict)
	if err := p.history.Append(ctx, record); err != nil {
		p.logger.Error("failed to persist scan history", "url", url, "error", err)
	}

	p.bus.Publish(model.NewScanComplete(result.Verdict.RiskLevel))

	return result, nil
}

// MarkSafe adds url to the allow-list. The panel then shows the
// trusted state without re-scoring.
func (p *Panel) MarkSafe(ctx context.Context, url string) error {
	return p.allow.Add(ctx, url)
}

// UnmarkSafe removes url from the allow-list and immediately re-scans
// it, mirroring the panel surface behavior.
func (p *Panel) UnmarkSafe(ctx context.Context, url string) (*ScanResult, error) {
	if err := p.allow.Remove(ctx, url); err != nil {
		return nil, err
	}
	return p.Scan(ctx, url)
}

// RecentHistory returns up to n recent records, bounded by the panel
// display limit when n is larger.
func (p *Panel) RecentHistory(ctx context.Context, n int) ([]model.HistoryRecord, error) {
	if n <= 0 || n > RecentDisplayLimit {
		n = RecentDisplayLimit
	}
	return p.history.Recent(ctx, n)
}
