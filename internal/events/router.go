package events

import (
	"log/slog"
	"sync"
)

// DefaultBufferSize is the channel buffer size used when none is given.
// A full reveal of a typical flag emits well under this many events.
const DefaultBufferSize = 256

// Router fans transition events out to subscribers over channels.
// Emit never blocks the orchestrator: a full subscriber loses the event.
type Router struct {
	subscribers []chan Event
	bufferSize  int
	logger      *slog.Logger
	mu          sync.RWMutex
	closed      bool
}

// NewRouter creates a router. A bufferSize of 0 or less uses
// DefaultBufferSize; a nil logger uses slog.Default().
func NewRouter(bufferSize int, logger *slog.Logger) *Router {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Emit publishes an event to all subscribers. It is safe to call
// concurrently and after Close, where it does nothing.
func (r *Router) Emit(event Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	for _, ch := range r.subscribers {
		select {
		case ch <- event:
		default:
			r.logger.Warn("event dropped: subscriber channel full",
				"event_type", event.Type(),
				"source", event.Source(),
			)
		}
	}
}

// Subscribe returns a channel that receives every emitted event. The channel
// is closed by Unsubscribe or Close.
func (r *Router) Subscribe() <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Event, r.bufferSize)
	if r.closed {
		close(ch)
		return ch
	}
	r.subscribers = append(r.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel. Unknown
// channels are ignored.
func (r *Router) Unsubscribe(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subscribers {
		if sub == ch {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close closes all subscriber channels. Later Emits are no-ops and later
// Subscribes return closed channels. Close is idempotent.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.closed = true
	for _, ch := range r.subscribers {
		close(ch)
	}
	r.subscribers = nil
}
