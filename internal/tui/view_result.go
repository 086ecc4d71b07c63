package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true).
		Render("Saved")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	pathBox := styleBox.
		Width(min(70, a.width-4)).
		BorderForeground(colorSuccess).
		Render(a.state.savedPath)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, pathBox))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[n] New deck  [Esc] Quit  any other key: back to deck")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
