package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style

	// View styles
	Character lipgloss.Style
	Loading   lipgloss.Style
	Spinner   lipgloss.Style
	Error     lipgloss.Style

	// Status line
	Status   lipgloss.Style
	Complete lipgloss.Style
	Footer   lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2),

	Character: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	Loading: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Spinner: lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")),

	Error: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196")),

	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")),

	Complete: lipgloss.NewStyle().
		Foreground(lipgloss.Color("114")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
}
