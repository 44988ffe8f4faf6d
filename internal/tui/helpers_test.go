package tui

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/flagreveal/internal/display"
	"github.com/npratt/flagreveal/internal/events"
	"github.com/npratt/flagreveal/internal/retrieval"
)

// recordingEmitter captures emitted events in order.
type recordingEmitter struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEmitter) Emit(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingEmitter) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

// staticCoordinator returns a coordinator whose fetch yields content or err.
func staticCoordinator(content string, err error) *retrieval.Coordinator {
	fetcher := retrieval.FetcherFunc(func(ctx context.Context) (string, error) {
		return content, err
	})
	return retrieval.NewCoordinator(retrieval.NewExecutor(fetcher, nil), nil)
}

// blockingCoordinator returns a coordinator whose fetch blocks until its
// context is canceled, then closes canceled.
func blockingCoordinator(canceled chan<- struct{}) *retrieval.Coordinator {
	fetcher := retrieval.FetcherFunc(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		close(canceled)
		return "", ctx.Err()
	})
	return retrieval.NewCoordinator(retrieval.NewExecutor(fetcher, nil), nil)
}

// testSettings returns settings with a short interval and the given emitter.
func testSettings(emitter events.Emitter) settings {
	if emitter == nil {
		emitter = events.Discard
	}
	return settings{
		interval: 10 * time.Millisecond,
		emitter:  emitter,
		logger:   discardLogger(),
	}
}

// update applies msg and returns the concrete model.
func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", next)
	}
	return nm, cmd
}

// isQuit reports whether cmd produces tea.QuitMsg.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// viewRecorder collects views passed to onView.
type viewRecorder struct {
	views []display.View
}

func (v *viewRecorder) record(view display.View) {
	v.views = append(v.views, view)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
