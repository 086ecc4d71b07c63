package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderEdit() string {
	d := a.state.deck
	if d == nil || len(d.Slides) == 0 {
		return a.renderDeck()
	}
	s := d.Slides[a.state.selectedSlide]

	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Edit slide")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Current slide content
	var lines []string
	lines = append(lines, lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(truncate(s.Title, 60)))
	for _, bullet := range s.Bullets {
		lines = append(lines, "• "+truncate(bullet.Text, 58))
	}
	slideBox := styleBox.
		Width(min(66, a.width-4)).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, slideBox))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Foreground(colorWhite).
		Render("How should this slide change?")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	inputBox := styleBox.
		Width(min(66, a.width-4)).
		BorderForeground(colorSecondary).
		Render(a.state.instruction.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Enter] Apply  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
