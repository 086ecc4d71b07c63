package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderDeck() string {
	d := a.state.deck
	if d == nil {
		return a.renderWelcome()
	}

	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(d.Title)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	count := styleSubtitle.Render(fmt.Sprintf("%d slides", len(d.Slides)))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, count))
	b.WriteString("\n\n")

	// Slide list on the left, selected slide detail on the right
	var listLines []string
	for i, s := range d.Slides {
		line := fmt.Sprintf("  %2d. %s", i+1, truncate(s.Title, 28))
		if i == a.state.selectedSlide {
			line = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				Render("> " + strings.TrimPrefix(line, "  "))
		} else {
			line = lipgloss.NewStyle().Foreground(colorMuted).Render(line)
		}
		listLines = append(listLines, line)
	}
	if len(listLines) == 0 {
		listLines = append(listLines, styleSubtitle.Render("  (no slides)"))
	}
	listBox := styleBox.
		Width(38).
		Render(strings.Join(listLines, "\n"))

	var detailLines []string
	if len(d.Slides) > 0 {
		s := d.Slides[a.state.selectedSlide]
		detailLines = append(detailLines, lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true).
			Render(truncate(s.Title, 36)))
		detailLines = append(detailLines, "")
		if len(s.Bullets) == 0 {
			detailLines = append(detailLines, styleSubtitle.Render("(no bullets)"))
		}
		for _, bullet := range s.Bullets {
			detailLines = append(detailLines, "• "+truncate(bullet.Text, 34))
		}
	}
	detailBox := styleBox.
		Width(40).
		BorderForeground(colorSecondary).
		Render(strings.Join(detailLines, "\n"))

	row := lipgloss.JoinHorizontal(lipgloss.Top, listBox, " ", detailBox)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, row))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[j/k] Select  [e] Edit slide  [s] Save pptx  [n] New  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
