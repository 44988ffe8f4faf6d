// Package events defines the transition events emitted by the display
// orchestrator, a channel-based router to fan them out, and a JSON lines
// sink that records them.
package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the transition an event records.
type EventType string

const (
	// Retrieval events
	EventRetrievalStart   EventType = "retrieval.start"
	EventRetrievalSuccess EventType = "retrieval.success"
	EventRetrievalFailure EventType = "retrieval.failure"

	// Reveal events
	EventRevealSeed     EventType = "reveal.seed"
	EventRevealAdvance  EventType = "reveal.advance"
	EventRevealComplete EventType = "reveal.complete"
)

// Source constants identify the state machine an event belongs to.
const (
	SourceRetrieval = "retrieval"
	SourceReveal    = "reveal"
)

// Event is the base interface for all events in the system.
type Event interface {
	Type() EventType
	Timestamp() time.Time
	Source() string
}

// BaseEvent provides the common fields for all events.
type BaseEvent struct {
	EventType EventType `json:"type"`
	Time      time.Time `json:"timestamp"`
	Src       string    `json:"source"`
	Run       string    `json:"run,omitempty"`
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// Source returns the origin of the event.
func (e BaseEvent) Source() string {
	return e.Src
}

// RunID returns the run the event belongs to, if stamped.
func (e BaseEvent) RunID() string {
	return e.Run
}

// SetRun stamps the event with a run ID.
func (e *BaseEvent) SetRun(id string) {
	e.Run = id
}

// RetrievalStartEvent is emitted when the retrieval coordinator is invoked.
type RetrievalStartEvent struct {
	BaseEvent
	Endpoint string `json:"endpoint,omitempty"`
}

// RetrievalSuccessEvent is emitted when the flag text arrives.
type RetrievalSuccessEvent struct {
	BaseEvent
	Length int `json:"length"`
}

// RetrievalFailureEvent is emitted when retrieval records an error.
type RetrievalFailureEvent struct {
	BaseEvent
	Error string `json:"error"`
}

// RevealSeedEvent is emitted when a reveal sequence is seeded.
type RevealSeedEvent struct {
	BaseEvent
	Total int `json:"total"`
}

// RevealAdvanceEvent is emitted after each accepted reveal step.
type RevealAdvanceEvent struct {
	BaseEvent
	Revealed int `json:"revealed"`
	Pending  int `json:"pending"`
}

// RevealCompleteEvent is emitted when nothing is left to reveal.
type RevealCompleteEvent struct {
	BaseEvent
	Total int `json:"total"`
}

// NewEvent creates a BaseEvent with the current timestamp.
func NewEvent(eventType EventType, source string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Src:       source,
	}
}

// NewRetrievalEvent creates a BaseEvent sourced from retrieval.
func NewRetrievalEvent(eventType EventType) BaseEvent {
	return NewEvent(eventType, SourceRetrieval)
}

// NewRevealEvent creates a BaseEvent sourced from reveal.
func NewRevealEvent(eventType EventType) BaseEvent {
	return NewEvent(eventType, SourceReveal)
}

// Emitter accepts events. *Router satisfies it.
type Emitter interface {
	Emit(event Event)
}

// Discard is an Emitter that drops every event.
var Discard Emitter = discard{}

type discard struct{}

func (discard) Emit(Event) {}

// NewRunID returns a fresh identifier for one run of the display.
func NewRunID() string {
	return uuid.NewString()
}

// WithRun returns an Emitter that stamps every event with run before
// passing it to next.
func WithRun(next Emitter, run string) Emitter {
	return runEmitter{next: next, run: run}
}

type runEmitter struct {
	next Emitter
	run  string
}

func (r runEmitter) Emit(event Event) {
	if s, ok := event.(interface{ SetRun(string) }); ok {
		s.SetRun(r.run)
	}
	r.next.Emit(event)
}
