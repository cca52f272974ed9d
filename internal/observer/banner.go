// Package observer implements the page-observer context: the banner
// state machine that turns routed AnalyzeComplete messages into a
// user-visible warning.
package observer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/trustlens/trustlens/internal/model"
)

// DefaultDisplayWindow is how long a banner stays shown before it is
// dismissed automatically.
const DefaultDisplayWindow = 10 * time.Second

// DismissReason records why a banner transitioned from shown to absent.
type DismissReason string

const (
	// DismissedByUser means the user closed the banner explicitly.
	DismissedByUser DismissReason = "user"

	// DismissedByTimeout means the display window elapsed.
	DismissedByTimeout DismissReason = "timeout"
)

// Banner is the page-observer banner state machine with two states,
// absent and shown.
//
// Transitions: absent -> shown only on an AnalyzeComplete message with
// high risk (lower levels are routed but intentionally never rendered);
// shown -> absent on explicit dismissal or after the display window.
// Only one banner exists at a time: AnalyzeComplete while shown is a
// no-op.
type Banner struct {
	mu     sync.Mutex
	shown  bool
	timer  *time.Timer
	window time.Duration

	// notifications gates rendering entirely. When the user disables
	// notifications, messages are consumed but nothing is shown.
	notifications bool

	onShow    func(model.RiskLevel)
	onDismiss func(DismissReason)
	logger    *slog.Logger
}

// Option configures a Banner.
type Option func(*Banner)

// WithDisplayWindow overrides the automatic dismissal window.
func WithDisplayWindow(window time.Duration) Option {
	return func(b *Banner) {
		b.window = window
	}
}

// WithNotifications sets whether banners may be rendered at all.
func WithNotifications(enabled bool) Option {
	return func(b *Banner) {
		b.notifications = enabled
	}
}

// WithShowFunc sets the render callback invoked on absent -> shown.
func WithShowFunc(fn func(model.RiskLevel)) Option {
	return func(b *Banner) {
		b.onShow = fn
	}
}

// WithDismissFunc sets the callback invoked on shown -> absent.
func WithDismissFunc(fn func(DismissReason)) Option {
	return func(b *Banner) {
		b.onDismiss = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Banner) {
		b.logger = logger
	}
}

// New creates a Banner in the absent state.
func New(opts ...Option) *Banner {
	b := &Banner{
		window:        DefaultDisplayWindow,
		notifications: true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// HandleMessage is the observer's event-loop handler. It consumes
// AnalyzeComplete messages and ignores every other message kind.
func (b *Banner) HandleMessage(msg model.Message) {
	if msg.Action != model.ActionAnalyzeComplete {
		return
	}
	if msg.RiskLevel != model.RiskHigh {
		// Medium risk is routed to the observer but never rendered.
		b.logger.Debug("banner suppressed below high risk", "risk", msg.RiskLevel.String())
		return
	}
	if !b.notifications {
		b.logger.Debug("banner suppressed: notifications disabled")
		return
	}

	b.mu.Lock()
	if b.shown {
		b.mu.Unlock()
		return
	}
	b.shown = true
	b.timer = time.AfterFunc(b.window, func() {
		b.dismiss(DismissedByTimeout)
	})
	onShow := b.onShow
	b.mu.Unlock()

	if onShow != nil {
		onShow(msg.RiskLevel)
	}
}

// Dismiss closes the banner on explicit user action. Dismissing an
// absent banner is a no-op.
func (b *Banner) Dismiss() {
	b.dismiss(DismissedByUser)
}

// Shown reports whether a banner is currently displayed.
func (b *Banner) Shown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shown
}

// dismiss performs the shown -> absent transition exactly once per
// shown banner, whichever of user action and timeout comes first.
func (b *Banner) dismiss(reason DismissReason) {
	b.mu.Lock()
	if !b.shown {
		b.mu.Unlock()
		return
	}
	b.shown = false
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	onDismiss := b.onDismiss
	b.mu.Unlock()

	if onDismiss != nil {
		onDismiss(reason)
	}
}
