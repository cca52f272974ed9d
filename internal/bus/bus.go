// Package bus implements the fire-and-forget message router between
// the three execution contexts.
//
// Each subscribed context runs a single-goroutine event loop fed by a
// buffered channel, so handlers for one context never run concurrently
// with each other. Delivery is best-effort: a message addressed to a
// context with no subscriber is dropped, a full queue drops the
// message, and there is no acknowledgment or retry.
package bus

import (
	"log/slog"
	"sync"

	"github.com/trustlens/trustlens/internal/model"
)

// DefaultQueueSize is the per-context message queue capacity.
const DefaultQueueSize = 16

// Handler processes one message inside a context's event loop.
type Handler func(model.Message)

// Bus routes messages between contexts.
type Bus struct {
	mu     sync.RWMutex
	subs   map[model.ContextID]*subscriber
	logger *slog.Logger
	closed bool

	// inflight tracks enqueued-but-unhandled messages so that Drain can
	// wait for cascading deliveries to settle.
	inflight sync.WaitGroup
}

// subscriber is one context's event loop.
type subscriber struct {
	queue chan model.Message
	done  chan struct{}
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used for dropped-message diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// New creates an empty Bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		subs:   make(map[model.ContextID]*subscriber),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler as the event loop for a context and
// starts the loop. Subscribing a context that already has a loop
// replaces the previous subscription after stopping its loop.
func (b *Bus) Subscribe(contextID model.ContextID, handler Handler) {
	sub := &subscriber{
		queue: make(chan model.Message, DefaultQueueSize),
		done:  make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	prev := b.subs[contextID]
	b.subs[contextID] = sub
	b.mu.Unlock()

	// Stop the previous loop outside the lock: its handler may be
	// publishing, which needs the read lock.
	if prev != nil {
		close(prev.queue)
		<-prev.done
	}

	go func() {
		defer close(sub.done)
		for msg := range sub.queue {
			handler(msg)
			b.inflight.Done()
		}
	}()
}

// Unsubscribe removes a context's event loop. Pending queued messages
// are still handled before the loop exits.
func (b *Bus) Unsubscribe(contextID model.ContextID) {
	b.mu.Lock()
	sub, ok := b.subs[contextID]
	if ok {
		delete(b.subs, contextID)
	}
	b.mu.Unlock()

	if ok {
		close(sub.queue)
		<-sub.done
	}
}

// Publish delivers a message to its destination context.
// The call never blocks: if the destination has no subscriber or its
// queue is full, the message is dropped.
func (b *Bus) Publish(msg model.Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	sub, ok := b.subs[msg.To]
	if !ok {
		b.logger.Debug("message dropped: no subscriber",
			"action", string(msg.Action), "to", string(msg.To))
		return
	}

	b.inflight.Add(1)
	select {
	case sub.queue <- msg:
	default:
		b.inflight.Done()
		b.logger.Debug("message dropped: queue full",
			"action", string(msg.Action), "to", string(msg.To))
	}
}

// Drain blocks until every message accepted so far has been handled,
// including messages published by handlers during the drain.
func (b *Bus) Drain() {
	b.inflight.Wait()
}

// Close drains the bus and stops all event loops. Publishing after
// Close is a silent drop.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.inflight.Wait()

	b.mu.Lock()
	subs := make([]*subscriber, 0, len(b.subs))
	for id, sub := range b.subs {
		subs = append(subs, sub)
		delete(b.subs, id)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		close(sub.queue)
		<-sub.done
	}
}
