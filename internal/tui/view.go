package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/flagreveal/internal/display"
)

// characterGap separates revealed characters on screen.
const characterGap = " "

// View implements tea.Model.
func (m model) View() string {
	content := strings.Join([]string{
		m.renderBody(m.currentView()),
		"",
		m.renderFooter(),
	}, "\n")

	rendered := styles.Container.Render(content)

	if m.width == 0 || m.height == 0 {
		return rendered
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

// renderBody renders the error, loading or characters view.
func (m model) renderBody(v display.View) string {
	switch v.Kind {
	case display.KindError:
		return styles.Error.Render("Error: " + v.Message)

	case display.KindLoading:
		return m.spinner.View() + " " + styles.Loading.Render("Loading...")

	default:
		return renderCharacters(v.Characters)
	}
}

// renderCharacters renders revealed characters with a gap between each.
func renderCharacters(chars []string) string {
	if len(chars) == 0 {
		return ""
	}
	rendered := make([]string, len(chars))
	for i, c := range chars {
		rendered[i] = styles.Character.Render(c)
	}
	return strings.Join(rendered, characterGap)
}

// renderFooter renders the reveal progress and keyboard help.
func (m model) renderFooter() string {
	var status string
	switch {
	case m.reveal == nil:
		status = ""
	case m.reveal.Complete():
		status = styles.Complete.Render(fmt.Sprintf("complete (%d)", len(m.reveal.Revealed())))
	default:
		revealed := len(m.reveal.Revealed())
		total := revealed + len(m.reveal.Pending())
		status = styles.Status.Render(fmt.Sprintf("%d/%d", revealed, total))
	}

	help := styles.Footer.Render("q: quit")
	if status == "" {
		return help
	}
	return status + "  " + help
}
