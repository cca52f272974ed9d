package panel

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/trustlens/trustlens/internal/bus"
	"github.com/trustlens/trustlens/internal/coordinator"
	"github.com/trustlens/trustlens/internal/engine"
	"github.com/trustlens/trustlens/internal/model"
	"github.com/trustlens/trustlens/internal/observer"
	"github.com/trustlens/trustlens/internal/pagesource"
	"github.com/trustlens/trustlens/internal/store"
)

// fakeSource returns a canned snapshot or a page-access failure.
type fakeSource struct {
	text  string
	links []string
	fail  bool
}

func (f *fakeSource) ActiveSnapshot(_ context.Context, url string) (model.PageSnapshot, error) {
	if f.fail {
		return model.PageSnapshot{}, &pagesource.PageAccessError{URL: url, Cause: context.DeadlineExceeded}
	}
	return model.NewPageSnapshot(url, f.text, f.links), nil
}

// newTestPanel wires a panel with a fake source over a fresh store.
func newTestPanel(t *testing.T, source pagesource.SnapshotProvider) (*Panel, *store.KV, *bus.Bus) {
	t.Helper()

	kv, err := store.Open(t.TempDir(), store.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	b := bus.New()
	t.Cleanup(b.Close)

	return New(source, engine.New(nil), kv, b), kv, b
}

// TestScanPersistsAndRoutes tests the strict scan sequence: evaluate,
// persist history, publish ScanComplete to the coordinator.
func TestScanPersistsAndRoutes(t *testing.T) {
	t.Parallel()

	p, kv, b := newTestPanel(t, &fakeSource{text: "welcome to our site"})
	ctx := context.Background()

	var mu sync.Mutex
	routed := make([]model.Message, 0)
	b.Subscribe(model.ContextCoordinator, func(msg model.Message) {
		mu.Lock()
		routed = append(routed, msg)
		mu.Unlock()
	})

	result, err := p.Scan(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	b.Drain()

	if result.Trusted || result.Degraded {
		t.Errorf("unexpected result state: %+v", result)
	}
	if result.Verdict == nil || result.Verdict.TrustScore != 100 {
		t.Fatalf("unexpected verdict: %+v", result.Verdict)
	}

	records, err := store.NewHistory(kv).Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 1 || records[0].URL != "https://example.com" || records[0].Score != 100 {
		t.Errorf("history record not persisted correctly: %v", records)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(routed) != 1 || routed[0].Action != model.ActionScanComplete {
		t.Errorf("expected one ScanComplete, got %v", routed)
	}
}

// TestScanTrustedShortCircuit tests that allow-listed URLs skip
// scoring entirely.
func TestScanTrustedShortCircuit(t *testing.T) {
	t.Parallel()

	p, kv, _ := newTestPanel(t, &fakeSource{text: "urgent act now"})
	ctx := context.Background()

	if err := p.MarkSafe(ctx, "https://trusted.example.com"); err != nil {
		t.Fatalf("MarkSafe returned error: %v", err)
	}

	result, err := p.Scan(ctx, "https://trusted.example.com")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if !result.Trusted {
		t.Error("expected trusted result")
	}
	if result.Verdict != nil {
		t.Error("trusted result must not carry a verdict")
	}

	// A trusted short-circuit records no history.
	records, err := store.NewHistory(kv).Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("trusted scan must not append history, got %d records", len(records))
	}
}

// TestScanDegradedOnPageAccessError tests the degraded verdict path:
// the user still receives a verdict and it is still persisted.
func TestScanDegradedOnPageAccessError(t *testing.T) {
	t.Parallel()

	p, kv, _ := newTestPanel(t, &fakeSource{fail: true})
	ctx := context.Background()

	result, err := p.Scan(ctx, "https://unreadable.example.com")
	if err != nil {
		t.Fatalf("Scan must not fail on page access errors, got: %v", err)
	}
	if !result.Degraded {
		t.Error("expected degraded result")
	}
	if result.Verdict.TrustScore != 50 || result.Verdict.RiskLevel != model.RiskMedium {
		t.Errorf("unexpected degraded verdict: %+v", result.Verdict)
	}

	records, err := store.NewHistory(kv).Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 1 || records[0].Score != 50 {
		t.Errorf("degraded verdict not persisted: %v", records)
	}
}

// TestUnmarkSafeRescans tests that removing a URL from the allow-list
// immediately re-scans it.
func TestUnmarkSafeRescans(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPanel(t, &fakeSource{text: "plain content"})
	ctx := context.Background()

	if err := p.MarkSafe(ctx, "https://example.com"); err != nil {
		t.Fatalf("MarkSafe returned error: %v", err)
	}
	result, err := p.UnmarkSafe(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("UnmarkSafe returned error: %v", err)
	}
	if result.Trusted {
		t.Error("re-scan after unmark must not be trusted")
	}
	if result.Verdict == nil {
		t.Error("re-scan must produce a verdict")
	}
}

// TestScanReportsSignals tests that informational content patterns are
// attached to the result without affecting the score.
func TestScanReportsSignals(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPanel(t, &fakeSource{text: "please enter your password"})
	result, err := p.Scan(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if result.Verdict.TrustScore != 100 {
		t.Errorf("signals must not affect the score, got %d", result.Verdict.TrustScore)
	}
	if len(result.Signals) != 1 || !strings.Contains(result.Signals[0], "password") {
		t.Errorf("expected a password signal, got %v", result.Signals)
	}
}

// TestScanEndToEndHighRisk tests the full flow across contexts: a
// high-risk page leads to a shown banner via coordinator relay.
func TestScanEndToEndHighRisk(t *testing.T) {
	t.Parallel()

	// Insecure login + brand mismatch + financial mismatch + urgency
	// cluster pushes the score to 20, which is high risk.
	source := &fakeSource{text: "urgent act now paypal bank"}
	p, _, b := newTestPanel(t, source)

	banner := observer.New()
	b.Subscribe(model.ContextObserver, banner.HandleMessage)
	coord := coordinator.New(b)
	b.Subscribe(model.ContextCoordinator, coord.HandleMessage)

	result, err := p.Scan(context.Background(), "http://example.com/login")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	b.Drain()

	if result.Verdict.RiskLevel != model.RiskHigh {
		t.Fatalf("expected high risk, got %+v", result.Verdict)
	}
	if !banner.Shown() {
		t.Error("high-risk scan must end with a shown banner")
	}
}

// TestScanEndToEndMediumRisk tests the routing asymmetry: medium risk
// is relayed to the observer but never rendered.
func TestScanEndToEndMediumRisk(t *testing.T) {
	t.Parallel()

	// Insecure login (30) + brand mismatch (20) + financial
	// mismatch (15) gives score 35, which is medium risk.
	source := &fakeSource{text: "paypal bank"}
	p, _, b := newTestPanel(t, source)

	var mu sync.Mutex
	relayed := 0
	banner := observer.New()
	b.Subscribe(model.ContextObserver, func(msg model.Message) {
		mu.Lock()
		relayed++
		mu.Unlock()
		banner.HandleMessage(msg)
	})
	coord := coordinator.New(b)
	b.Subscribe(model.ContextCoordinator, coord.HandleMessage)

	result, err := p.Scan(context.Background(), "http://example.com/login")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	b.Drain()

	if result.Verdict.RiskLevel != model.RiskMedium {
		t.Fatalf("expected medium risk, got %+v", result.Verdict)
	}
	mu.Lock()
	defer mu.Unlock()
	if relayed != 1 {
		t.Errorf("medium risk must be relayed to the observer, got %d messages", relayed)
	}
	if banner.Shown() {
		t.Error("medium risk must never render a banner")
	}
}
