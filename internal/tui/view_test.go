package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/flagreveal/internal/retrieval"
)

func TestView_Loading(t *testing.T) {
	m := newModel(context.Background(), staticCoordinator("abc", nil), testSettings(nil))

	out := m.View()
	if !strings.Contains(out, "Loading...") {
		t.Errorf("loading view should contain %q, got:\n%s", "Loading...", out)
	}
	if !strings.Contains(out, "q: quit") {
		t.Errorf("view should contain key help, got:\n%s", out)
	}
}

func TestView_Error(t *testing.T) {
	m := newModel(context.Background(), staticCoordinator("", nil), testSettings(nil))
	m, _ = update(t, m, retrievalResultMsg{state: retrieval.Failed("network down")})

	out := m.View()
	if !strings.Contains(out, "Error: network down") {
		t.Errorf("error view should contain the message, got:\n%s", out)
	}
	if strings.Contains(out, "Loading...") {
		t.Errorf("error view should not show loading, got:\n%s", out)
	}
}

func TestView_CharactersAndProgress(t *testing.T) {
	m := newModel(context.Background(), staticCoordinator("abc", nil), testSettings(nil))
	m, _ = update(t, m, retrievalResultMsg{state: retrieval.Succeeded("abc")})
	m, _ = update(t, m, revealTickMsg{generation: m.generation})

	out := m.View()
	if !strings.Contains(out, "1/3") {
		t.Errorf("view should show progress 1/3, got:\n%s", out)
	}
	if !strings.Contains(out, "a") {
		t.Errorf("view should show the revealed character, got:\n%s", out)
	}
	if strings.Contains(out, "Loading...") {
		t.Errorf("characters view should not show loading, got:\n%s", out)
	}

	m, _ = update(t, m, revealTickMsg{generation: m.generation})
	m, _ = update(t, m, revealTickMsg{generation: m.generation})

	out = m.View()
	if !strings.Contains(out, "complete (3)") {
		t.Errorf("view should show completion, got:\n%s", out)
	}
}

func TestView_PlacedWhenSized(t *testing.T) {
	m := newModel(context.Background(), staticCoordinator("abc", nil), testSettings(nil))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 10})

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 10 {
		t.Errorf("placed view has %d lines, want 10", len(lines))
	}
}

func TestRenderCharacters(t *testing.T) {
	if got := renderCharacters(nil); got != "" {
		t.Errorf("renderCharacters(nil) = %q, want empty", got)
	}

	got := renderCharacters([]string{"x", "y"})
	if !strings.Contains(got, "x") || !strings.Contains(got, "y") {
		t.Errorf("renderCharacters = %q, want both characters", got)
	}
}
