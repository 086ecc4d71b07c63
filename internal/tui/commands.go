package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/slidesmith/slidesmith/internal/deck"
	"github.com/slidesmith/slidesmith/internal/llm"
	"github.com/slidesmith/slidesmith/internal/pipeline"
	"github.com/slidesmith/slidesmith/internal/pptx"
	"github.com/slidesmith/slidesmith/internal/source"
)

const generateTimeout = 2 * time.Minute

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct{ error }
type sourceLoadedMsg struct{ source *source.Source }
type loadErrorMsg struct{ error }
type deckGeneratedMsg struct{ deck *deck.Deck }
type generateFailedMsg struct{ error }
type slideModifiedMsg struct{ slide *deck.Slide }
type deckSavedMsg struct{ path string }

func (a *App) spinnerTick() tea.Cmd {
	return a.state.spin.Tick
}

func loadSourceCmd(path string) tea.Cmd {
	return func() tea.Msg {
		src, err := source.Load(path)
		if err != nil {
			return loadErrorMsg{err}
		}
		return sourceLoadedMsg{src}
	}
}

func generateCmd(gen *pipeline.Generator, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		d, err := gen.Generate(ctx, text)
		if err != nil {
			return generateFailedMsg{err}
		}
		return deckGeneratedMsg{d}
	}
}

func modifySlideCmd(gen *pipeline.Generator, slide deck.Slide, instruction string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		modified, err := gen.ModifySlide(ctx, slide, instruction)
		if err != nil {
			return generateFailedMsg{err}
		}
		return slideModifiedMsg{modified}
	}
}

func saveDeckCmd(d *deck.Deck) tea.Cmd {
	return func() tea.Msg {
		raw, err := pptx.Render(d)
		if err != nil {
			return generateFailedMsg{err}
		}

		name := strings.ReplaceAll(d.Title, " ", "_") + ".pptx"
		if err := os.WriteFile(name, raw, 0644); err != nil {
			return generateFailedMsg{fmt.Errorf("failed to save %s: %w", name, err)}
		}

		abs := name
		if wd, err := os.Getwd(); err == nil {
			abs = filepath.Join(wd, name)
		}
		return deckSavedMsg{abs}
	}
}
