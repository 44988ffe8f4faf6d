package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/flagreveal/internal/display"
	"github.com/npratt/flagreveal/internal/events"
	"github.com/npratt/flagreveal/internal/retrieval"
	"github.com/npratt/flagreveal/internal/reveal"
)

// retrievalResultMsg carries the state produced by the retrieval coordinator.
type retrievalResultMsg struct {
	state retrieval.State
}

// revealTickMsg fires one reveal interval after it was scheduled.
type revealTickMsg struct {
	generation uint64
}

// retrieve runs the coordinator off the update loop.
func retrieve(m model, s retrieval.State) tea.Cmd {
	ctx, coord := m.ctx, m.coordinator
	return func() tea.Msg {
		return retrievalResultMsg{state: coord.Run(ctx, s)}
	}
}

// scheduleReveal waits one interval and reports the generation it was
// scheduled for.
func scheduleReveal(interval time.Duration, generation uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return revealTickMsg{generation: generation}
	})
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case retrievalResultMsg:
		if m.closed {
			m.settings.logger.Debug("discarding retrieval result after teardown")
			return m, nil
		}
		return m.setRetrieval(msg.state)

	case revealTickMsg:
		if m.closed || m.reveal == nil || msg.generation != m.generation {
			m.settings.logger.Debug("discarding stale reveal tick",
				"tick_generation", msg.generation,
				"current_generation", m.generation)
			return m, nil
		}
		return m.setReveal(reveal.Run(*m.reveal))

	case spinner.TickMsg:
		// The spinner only runs while loading.
		if m.closed || m.currentView().Kind != display.KindLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// handleKey processes keyboard input.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		if m.settings.onQuit != nil {
			m.settings.onQuit()
		}
		return m.teardown(), tea.Quit
	default:
		return m, nil
	}
}

// teardown marks the model closed, cancels any in-flight fetch and
// invalidates any scheduled reveal tick.
func (m model) teardown() model {
	if m.closed {
		return m
	}
	m.closed = true
	m.generation++
	m.cancel()
	return m
}

// setRetrieval replaces the held retrieval state and decides what follows.
func (m model) setRetrieval(s retrieval.State) (tea.Model, tea.Cmd) {
	m.retrieval = s

	if msg, ok := s.Err(); ok {
		m.settings.emitter.Emit(&events.RetrievalFailureEvent{
			BaseEvent: events.NewRetrievalEvent(events.EventRetrievalFailure),
			Error:     msg,
		})
		m.settings.logger.Debug("showing retrieval error", "error", msg)
		m.notifyView()
		if m.settings.exitOnComplete {
			return m.teardown(), tea.Quit
		}
		return m, nil
	}

	if content, ok := s.Content(); ok {
		m.settings.emitter.Emit(&events.RetrievalSuccessEvent{
			BaseEvent: events.NewRetrievalEvent(events.EventRetrievalSuccess),
			Length:    len(content),
		})
		return m.setReveal(reveal.Seed(content))
	}

	m.notifyView()
	return m, m.afterRetrievalChange()
}

// afterRetrievalChange starts the coordinator when the guard permits.
func (m model) afterRetrievalChange() tea.Cmd {
	if !retrieval.Permits(m.retrieval) {
		return nil
	}
	m.settings.emitter.Emit(&events.RetrievalStartEvent{
		BaseEvent: events.NewRetrievalEvent(events.EventRetrievalStart),
		Endpoint:  m.settings.endpoint,
	})
	m.settings.logger.Debug("starting retrieval", "endpoint", m.settings.endpoint)
	return retrieve(m, m.retrieval)
}

// setReveal replaces the held reveal state, invalidating any tick scheduled
// for the previous one, and decides what follows.
func (m model) setReveal(s reveal.State) (tea.Model, tea.Cmd) {
	seeded := m.reveal == nil
	m.reveal = &s
	m.generation++

	if seeded {
		m.settings.emitter.Emit(&events.RevealSeedEvent{
			BaseEvent: events.NewRevealEvent(events.EventRevealSeed),
			Total:     len(s.Pending()),
		})
	} else {
		m.settings.emitter.Emit(&events.RevealAdvanceEvent{
			BaseEvent: events.NewRevealEvent(events.EventRevealAdvance),
			Revealed:  len(s.Revealed()),
			Pending:   len(s.Pending()),
		})
	}

	m.notifyView()

	if s.Complete() {
		m.settings.emitter.Emit(&events.RevealCompleteEvent{
			BaseEvent: events.NewRevealEvent(events.EventRevealComplete),
			Total:     len(s.Revealed()),
		})
		m.settings.logger.Info("reveal complete", "characters", len(s.Revealed()))
		if m.settings.exitOnComplete {
			return m.teardown(), tea.Quit
		}
		return m, nil
	}

	return m, m.afterRevealChange()
}

// afterRevealChange schedules the next step when the guard permits.
func (m model) afterRevealChange() tea.Cmd {
	if m.reveal == nil || !reveal.Permits(*m.reveal) {
		return nil
	}
	return scheduleReveal(m.settings.interval, m.generation)
}

// notifyView hands the current view to the onView callback, if any.
func (m model) notifyView() {
	if m.settings.onView != nil {
		m.settings.onView(m.currentView())
	}
}
