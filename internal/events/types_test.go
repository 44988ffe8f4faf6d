package events

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type captureEmitter struct {
	events []Event
}

func (c *captureEmitter) Emit(e Event) {
	c.events = append(c.events, e)
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == b {
		t.Error("run IDs should be unique")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", a, err)
	}
}

func TestWithRun(t *testing.T) {
	capture := &captureEmitter{}
	emitter := WithRun(capture, "run-1")

	emitter.Emit(&RetrievalSuccessEvent{
		BaseEvent: NewRetrievalEvent(EventRetrievalSuccess),
		Length:    4,
	})

	if len(capture.events) != 1 {
		t.Fatalf("got %d events, want 1", len(capture.events))
	}
	ev := capture.events[0].(*RetrievalSuccessEvent)
	if ev.RunID() != "run-1" {
		t.Errorf("RunID() = %q, want %q", ev.RunID(), "run-1")
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, want := range []string{`"run":"run-1"`, `"type":"retrieval.success"`, `"source":"retrieval"`, `"length":4`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON %s missing %s", data, want)
		}
	}
}

func TestBaseEvent_RunOmittedWhenUnset(t *testing.T) {
	data, err := json.Marshal(&RevealSeedEvent{BaseEvent: NewRevealEvent(EventRevealSeed), Total: 3})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), `"run"`) {
		t.Errorf("unstamped event should omit run, got %s", data)
	}
}
