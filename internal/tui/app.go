// Package tui is the interactive terminal front end: paste text, review
// the generated deck, rework single slides and save the .pptx.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/slidesmith/slidesmith/internal/config"
	"github.com/slidesmith/slidesmith/internal/llm"
	"github.com/slidesmith/slidesmith/internal/pipeline"
)

type view int

const (
	viewWelcome view = iota
	viewSetup
	viewSource
	viewCompose
	viewProcessing
	viewDeck
	viewEdit
	viewResult
	viewError
	viewHelp
)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool
}

func NewApp() *App {
	s := newState()

	// Check if setup needed
	cfg, _ := config.Load()
	if cfg == nil {
		s.needsSetup = true
		s.config = config.DefaultConfig()
	} else {
		s.config = cfg
	}

	return &App{
		view:  viewWelcome,
		state: s,
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.testProvider(),
	)
}

func (a *App) testProvider() tea.Cmd {
	return func() tea.Msg {
		provider, err := llm.NewProvider(a.state.config)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		return providerReadyMsg{provider}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := a.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.view = viewWelcome
		return a, a.testProvider()

	case setupErrorMsg:
		a.state.lastError = msg.error
		a.view = viewError
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.provider = msg.provider
		a.state.generator = pipeline.NewGenerator(msg.provider, pipeline.Settings{
			Model:       a.state.config.Model,
			Temperature: a.state.config.Temperature,
			MaxTokens:   a.state.config.MaxTokens,
		})
		a.state.input.Focus()
		return a, textinput.Blink

	case providerErrorMsg:
		a.state.providerError = msg.error
		return a, nil

	case sourceLoadedMsg:
		a.state.source = msg.source
		a.state.editor.SetValue(msg.source.Content)
		a.view = viewSource
		return a, nil

	case loadErrorMsg:
		a.state.lastError = msg.error
		a.view = viewError
		return a, nil

	case deckGeneratedMsg:
		a.state.deck = msg.deck
		a.state.selectedSlide = 0
		a.view = viewDeck
		return a, nil

	case generateFailedMsg:
		a.state.lastError = msg.error
		a.view = viewError
		return a, nil

	case slideModifiedMsg:
		if a.state.deck != nil && a.state.selectedSlide < len(a.state.deck.Slides) {
			a.state.deck.Slides[a.state.selectedSlide] = *msg.slide
		}
		a.state.instruction.Reset()
		a.view = viewDeck
		return a, nil

	case deckSavedMsg:
		a.state.savedPath = msg.path
		a.view = viewResult
		return a, nil

	case spinner.TickMsg:
		if a.view == viewProcessing {
			var cmd tea.Cmd
			a.state.spin, cmd = a.state.spin.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Update text widgets based on view
	switch {
	case a.view == viewSetup && a.state.setupStep == 1:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewWelcome:
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewCompose:
		var cmd tea.Cmd
		a.state.editor, cmd = a.state.editor.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewEdit:
		var cmd tea.Cmd
		a.state.instruction, cmd = a.state.instruction.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewWelcome:
		return a.handleWelcomeKey(msg)
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewSource:
		return a.handleSourceKey(msg)
	case viewCompose:
		return a.handleComposeKey(msg)
	case viewDeck:
		return a.handleDeckKey(msg)
	case viewEdit:
		return a.handleEditKey(msg)
	case viewResult:
		return a.handleResultKey(msg)
	case viewError:
		return a.handleErrorKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Quit) {
			a.view = viewWelcome
		}
		return nil
	case viewProcessing:
		// Generation is not cancellable mid-flight; ignore keys.
		return nil
	}

	return nil
}

func (a *App) handleWelcomeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Enter):
		return a.handleWelcomeInput()
	}
	return nil
}

func (a *App) handleWelcomeInput() tea.Cmd {
	input := strings.TrimSpace(a.state.input.Value())
	if input == "" {
		// Empty enter opens the editor directly
		a.state.editor.Focus()
		a.view = viewCompose
		return textarea.Blink
	}

	if strings.HasPrefix(input, "/") {
		cmd := strings.ToLower(input)
		switch {
		case cmd == "/help" || cmd == "/h":
			a.view = viewHelp
			a.state.input.Reset()
			return nil
		case cmd == "/new" || cmd == "/n":
			a.state.input.Reset()
			a.state.editor.Reset()
			a.state.editor.Focus()
			a.view = viewCompose
			return textarea.Blink
		case cmd == "/quit" || cmd == "/q":
			a.quitting = true
			return tea.Quit
		}
		a.state.input.Reset()
		return nil
	}

	// Anything else is treated as a file path
	a.state.input.Reset()
	return loadSourceCmd(input)
}

func (a *App) handleSourceKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.state.source = nil
		a.state.editor.Reset()
		a.view = viewWelcome
		a.state.input.Focus()
		return textinput.Blink
	case "e":
		a.state.editor.Focus()
		a.view = viewCompose
		return textarea.Blink
	case "enter":
		if !a.state.providerReady {
			return nil
		}
		a.state.processing = "Generating slides"
		a.view = viewProcessing
		return tea.Batch(a.spinnerTick(), generateCmd(a.state.generator, a.state.source.Content))
	}
	return nil
}

func (a *App) handleComposeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.view = viewWelcome
		a.state.input.Focus()
		return textinput.Blink
	case "ctrl+d":
		text := strings.TrimSpace(a.state.editor.Value())
		if text == "" || !a.state.providerReady {
			return nil
		}
		a.state.processing = "Generating slides"
		a.view = viewProcessing
		return tea.Batch(a.spinnerTick(), generateCmd(a.state.generator, text))
	}
	return nil
}

func (a *App) handleDeckKey(msg tea.KeyMsg) tea.Cmd {
	d := a.state.deck
	if d == nil {
		a.view = viewWelcome
		return nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Up):
		if a.state.selectedSlide > 0 {
			a.state.selectedSlide--
		}

	case key.Matches(msg, keys.Down):
		if a.state.selectedSlide < len(d.Slides)-1 {
			a.state.selectedSlide++
		}

	case key.Matches(msg, keys.Edit):
		if len(d.Slides) > 0 {
			a.state.instruction.Focus()
			a.view = viewEdit
			return textinput.Blink
		}

	case key.Matches(msg, keys.Save):
		a.state.processing = "Rendering presentation"
		a.view = viewProcessing
		return tea.Batch(a.spinnerTick(), saveDeckCmd(d))

	case key.Matches(msg, keys.New):
		a.state.deck = nil
		a.state.editor.Reset()
		a.state.editor.Focus()
		a.view = viewCompose
		return textarea.Blink
	}
	return nil
}

func (a *App) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.state.instruction.Reset()
		a.view = viewDeck
		return nil
	case "enter":
		instruction := strings.TrimSpace(a.state.instruction.Value())
		if instruction == "" {
			return nil
		}
		slide := a.state.deck.Slides[a.state.selectedSlide]
		a.state.processing = "Reworking slide"
		a.view = viewProcessing
		return tea.Batch(a.spinnerTick(), modifySlideCmd(a.state.generator, slide, instruction))
	}
	return nil
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.New):
		a.state.deck = nil
		a.state.savedPath = ""
		a.state.editor.Reset()
		a.state.editor.Focus()
		a.view = viewCompose
		return textarea.Blink
	default:
		// Any other key returns to the deck
		a.view = viewDeck
	}
	return nil
}

func (a *App) handleErrorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.New):
		a.state.lastError = nil
		a.state.editor.Focus()
		a.view = viewCompose
		return textarea.Blink
	default:
		a.state.lastError = nil
		if a.state.deck != nil {
			a.view = viewDeck
		} else {
			a.view = viewWelcome
			a.state.input.Focus()
			return textinput.Blink
		}
	}
	return nil
}

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch msg.String() {
		case "up", "k":
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case "down", "j":
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case "enter":
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink
			}
			return a.finishSetup()
		case "esc":
			a.quitting = true
			return tea.Quit
		}

	case 1: // API key entry
		switch msg.String() {
		case "enter":
			a.state.config.APIKey = a.state.apiKeyInput.Value()
			return a.finishSetup()
		case "esc":
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
		}
	}

	return nil
}

func (a *App) finishSetup() tea.Cmd {
	return func() tea.Msg {
		if err := a.state.config.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewWelcome:
		return a.renderWelcome()
	case viewSetup:
		return a.renderSetup()
	case viewSource:
		return a.renderSource()
	case viewCompose:
		return a.renderCompose()
	case viewProcessing:
		return a.renderProcessing()
	case viewDeck:
		return a.renderDeck()
	case viewEdit:
		return a.renderEdit()
	case viewResult:
		return a.renderResult()
	case viewError:
		return a.renderError()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderWelcome()
	}
}
