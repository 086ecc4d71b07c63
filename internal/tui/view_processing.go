package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderProcessing() string {
	label := a.state.processing
	if label == "" {
		label = "Working"
	}

	line := fmt.Sprintf("%s %s...", a.state.spin.View(), label)
	box := styleBox.
		Width(min(50, a.width-4)).
		BorderForeground(colorSecondary).
		Render(lipgloss.PlaceHorizontal(min(46, a.width-8), lipgloss.Center, line))

	var detail string
	if a.state.config != nil {
		detail = styleSubtitle.Render(fmt.Sprintf("%s / %s", a.state.config.Provider, a.state.config.Model))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, box, "", detail)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}
