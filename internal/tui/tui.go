// Package tui hosts the flag display orchestrator as a bubbletea program.
// The model owns the retrieval and reveal states; every state replacement is
// followed by an explicit decision about the next asynchronous or timed step.
package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/flagreveal/internal/display"
	"github.com/npratt/flagreveal/internal/events"
	"github.com/npratt/flagreveal/internal/retrieval"
)

// DefaultInterval is the reveal step delay used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// settings carries everything the model needs besides the coordinator.
type settings struct {
	interval       time.Duration
	endpoint       string
	exitOnComplete bool
	plain          bool
	output         io.Writer
	emitter        events.Emitter
	logger         *slog.Logger
	onView         func(display.View)
	onQuit         func()
}

// TUI runs the flag display.
type TUI struct {
	coordinator *retrieval.Coordinator
	settings    settings
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a TUI that retrieves through coordinator.
func New(coordinator *retrieval.Coordinator, opts ...Option) *TUI {
	t := &TUI{
		coordinator: coordinator,
		settings: settings{
			interval: DefaultInterval,
			emitter:  events.Discard,
			logger:   slog.Default(),
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithInterval sets the reveal step delay. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(t *TUI) {
		if d > 0 {
			t.settings.interval = d
		}
	}
}

// WithEndpoint records the endpoint in the retrieval start event.
func WithEndpoint(endpoint string) Option {
	return func(t *TUI) {
		t.settings.endpoint = endpoint
	}
}

// WithExitOnComplete makes the program quit once the reveal completes or
// retrieval fails.
func WithExitOnComplete(exit bool) Option {
	return func(t *TUI) {
		t.settings.exitOnComplete = exit
	}
}

// WithPlain runs without a renderer or keyboard input. Combine with
// WithOnView to present progress.
func WithPlain(plain bool) Option {
	return func(t *TUI) {
		t.settings.plain = plain
	}
}

// WithOutput sets the program output (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(t *TUI) {
		t.settings.output = w
	}
}

// WithEmitter sets the destination for transition events.
func WithEmitter(e events.Emitter) Option {
	return func(t *TUI) {
		if e != nil {
			t.settings.emitter = e
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *TUI) {
		if l != nil {
			t.settings.logger = l
		}
	}
}

// WithOnView sets a callback invoked with the derived view after every
// state replacement.
func WithOnView(fn func(display.View)) Option {
	return func(t *TUI) {
		t.settings.onView = fn
	}
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.settings.onQuit = fn
	}
}

// Run starts the program and blocks until it exits. It returns the view of
// the final state. Canceling ctx tears the program down.
func (t *TUI) Run(ctx context.Context) (display.View, error) {
	m := newModel(ctx, t.coordinator, t.settings)

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	}
	if t.settings.plain {
		opts = append(opts, tea.WithoutRenderer(), tea.WithInput(nil))
	}
	if t.settings.output != nil {
		opts = append(opts, tea.WithOutput(t.settings.output))
	}

	p := tea.NewProgram(m, opts...)
	final, err := p.Run()

	if fm, ok := final.(model); ok {
		return fm.currentView(), err
	}
	return m.currentView(), err
}
