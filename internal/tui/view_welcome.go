package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
 ███████╗██╗     ██╗██████╗ ███████╗███████╗███╗   ███╗██╗████████╗██╗  ██╗
 ██╔════╝██║     ██║██╔══██╗██╔════╝██╔════╝████╗ ████║██║╚══██╔══╝██║  ██║
 ███████╗██║     ██║██║  ██║█████╗  ███████╗██╔████╔██║██║   ██║   ███████║
 ╚════██║██║     ██║██║  ██║██╔══╝  ╚════██║██║╚██╔╝██║██║   ██║   ██╔══██║
 ███████║███████╗██║██████╔╝███████╗███████║██║ ╚═╝ ██║██║   ██║   ██║  ██║
 ╚══════╝╚══════╝╚═╝╚═════╝ ╚══════╝╚══════╝╚═╝     ╚═╝╚═╝   ╚═╝   ╚═╝  ╚═╝
`

func (a *App) renderWelcome() string {
	var b strings.Builder

	logoRendered := styleLogo.Render(logo)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, logoRendered))
	b.WriteString("\n")

	subtitle := styleSubtitle.Render("Text in, slides out")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	if a.state.providerError != nil {
		warn := lipgloss.NewStyle().
			Foreground(colorError).
			Render("Provider unreachable: " + truncate(a.state.providerError.Error(), 50))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, warn))
		b.WriteString("\n\n")
	} else if !a.state.providerReady {
		connecting := styleSubtitle.Render("Connecting to provider...")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, connecting))
		b.WriteString("\n\n")
	}

	inputBox := styleBox.
		Width(min(70, a.width-4)).
		BorderForeground(colorSecondary).
		Render(a.state.input.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	hint := styleSubtitle.Render("Enter a file path, or press Enter to paste text directly")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Esc] Quit  [?] Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
