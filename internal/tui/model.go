package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/flagreveal/internal/display"
	"github.com/npratt/flagreveal/internal/retrieval"
	"github.com/npratt/flagreveal/internal/reveal"
)

// model is the display orchestrator. It exclusively owns the retrieval state
// and the optional reveal state; both are replaced wholesale, never mutated.
type model struct {
	ctx         context.Context
	cancel      context.CancelFunc
	coordinator *retrieval.Coordinator
	settings    settings

	// State cells
	retrieval retrieval.State
	reveal    *reveal.State

	// generation identifies the current reveal state. A scheduled tick only
	// applies if it carries the generation it was scheduled for.
	generation uint64

	// closed is set on teardown; late results are discarded once it is set.
	closed bool

	// UI state
	spinner spinner.Model
	width   int
	height  int
}

// newModel creates a model in the initial state. The fetch context is
// derived from ctx and canceled on teardown.
func newModel(ctx context.Context, coordinator *retrieval.Coordinator, s settings) model {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	runCtx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return model{
		ctx:         runCtx,
		cancel:      cancel,
		coordinator: coordinator,
		settings:    s,
		retrieval:   retrieval.Initial(),
		spinner:     sp,
	}
}

// Init implements tea.Model. The initial retrieval state always permits a
// retrieval, so this starts the fetch alongside the loading spinner.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.afterRetrievalChange(),
	)
}

// currentView derives the view for the held states.
func (m model) currentView() display.View {
	return display.Compute(m.retrieval, m.reveal)
}

// Update and the transition helpers are implemented in update.go
// View is implemented in view.go
