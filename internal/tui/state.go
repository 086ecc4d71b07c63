package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/slidesmith/slidesmith/internal/config"
	"github.com/slidesmith/slidesmith/internal/deck"
	"github.com/slidesmith/slidesmith/internal/llm"
	"github.com/slidesmith/slidesmith/internal/pipeline"
	"github.com/slidesmith/slidesmith/internal/source"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Input on the welcome screen: file path or slash command
	input textinput.Model

	// Compose screen
	editor textarea.Model

	// Source text
	source *source.Source

	// Generated deck and slide selection
	deck          *deck.Deck
	selectedSlide int

	// Slide edit screen
	instruction textinput.Model

	// Processing
	spin       spinner.Model
	processing string

	// Result
	savedPath string

	// Provider
	provider      llm.Provider
	generator     *pipeline.Generator
	providerReady bool
	providerError error

	// Last failure shown on the error screen
	lastError error
}

func newState() *state {
	input := textinput.New()
	input.Placeholder = "Path to a text file, or /help for commands..."
	input.CharLimit = 500
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	editor := textarea.New()
	editor.Placeholder = "Paste or type the text to turn into slides..."
	editor.CharLimit = 0
	editor.SetWidth(70)
	editor.SetHeight(12)

	instruction := textinput.New()
	instruction.Placeholder = "e.g. make the bullets punchier, add a risks bullet..."
	instruction.CharLimit = 300
	instruction.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(colorSecondary)

	return &state{
		input:       input,
		apiKeyInput: apiKey,
		editor:      editor,
		instruction: instruction,
		spin:        spin,
	}
}
