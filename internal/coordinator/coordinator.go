// Package coordinator implements the background coordinator context.
//
// The coordinator consumes ScanComplete messages from the panel and
// relays a warning instruction to the page observer, but only for
// medium and high risk levels. Safe and low verdicts are never
// relayed.
package coordinator

import (
	"log/slog"

	"github.com/trustlens/trustlens/internal/bus"
	"github.com/trustlens/trustlens/internal/model"
)

// Coordinator relays scan results to the page observer.
type Coordinator struct {
	bus    *bus.Bus
	logger *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// New creates a Coordinator publishing on the given bus.
func New(b *bus.Bus, opts ...Option) *Coordinator {
	c := &Coordinator{
		bus:    b,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleMessage is the coordinator's event-loop handler. ScanComplete
// with medium or high risk is forwarded to the observer as
// AnalyzeComplete; everything else is ignored.
func (c *Coordinator) HandleMessage(msg model.Message) {
	if msg.Action != model.ActionScanComplete {
		return
	}
	if msg.RiskLevel < model.RiskMedium {
		c.logger.Debug("scan result not relayed", "risk", msg.RiskLevel.String())
		return
	}

	c.logger.Debug("relaying warning to observer", "risk", msg.RiskLevel.String())
	c.bus.Publish(model.NewAnalyzeComplete(msg.RiskLevel))
}
