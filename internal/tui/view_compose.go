package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderCompose() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Compose")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	// Loaded-file header, if the text came from disk
	if src := a.state.source; src != nil {
		meta := src.Metadata
		info := fmt.Sprintf("%s  |  %s  |  %s  |  ~%d words",
			truncate(meta.Title, 40),
			strings.ToUpper(meta.SourceFormat),
			meta.FileSizeHuman(),
			meta.WordCount,
		)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(info)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	editorBox := styleBox.
		Width(min(74, a.width-4)).
		BorderForeground(colorSecondary).
		Render(a.state.editor.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, editorBox))
	b.WriteString("\n\n")

	var status string
	if a.state.providerReady {
		status = styleStatusBar.Render("[Ctrl+D] Generate slides  [Esc] Back")
	} else {
		status = styleStatusBar.Render("Waiting for provider...  [Esc] Back")
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
