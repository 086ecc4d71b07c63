package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderSource() string {
	src := a.state.source
	if src == nil {
		return a.renderWelcome()
	}

	var b strings.Builder
	meta := src.Metadata

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(meta.Title)

	metaLine := styleSubtitle.Render(strings.Join([]string{
		strings.ToUpper(meta.SourceFormat),
		meta.FileSizeHuman(),
		fmt.Sprintf("~%d words", meta.WordCount),
	}, "  |  "))

	infoBox := styleBox.
		Width(min(70, a.width-4)).
		BorderForeground(colorSuccess).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, metaLine))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, infoBox))
	b.WriteString("\n\n")

	previewLabel := styleSubtitle.Render("Preview:")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, previewLabel))
	b.WriteString("\n")

	previewBox := styleBox.
		Width(min(70, a.width-4)).
		Foreground(colorMuted).
		Render(src.Preview)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, previewBox))
	b.WriteString("\n\n")

	var status string
	if a.state.providerReady {
		status = styleStatusBar.Render("[Enter] Generate slides  [e] Edit text first  [Esc] Back")
	} else {
		status = styleStatusBar.Render("Waiting for provider...  [e] Edit text  [Esc] Back")
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
