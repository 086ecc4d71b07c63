package pipeline

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/deck"
	"github.com/slidesmith/slidesmith/internal/llm"
	"github.com/slidesmith/slidesmith/internal/prompts"
)

// Settings are the sampling knobs for model calls. They come from config
// at startup and are never mutated afterwards.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Generator runs the two pipeline variants: full-deck generation and
// single-slide modification. Each invocation makes exactly one model
// call; a malformed response is a terminal failure for that request.
type Generator struct {
	provider llm.Provider
	settings Settings
}

func NewGenerator(provider llm.Provider, settings Settings) *Generator {
	return &Generator{
		provider: provider,
		settings: settings,
	}
}

// Generate converts free text into a canonical deck.
func (g *Generator) Generate(ctx context.Context, text string) (*deck.Deck, error) {
	raw, err := g.complete(ctx, prompts.GenerateSystem, prompts.BuildGenerateUser(text))
	if err != nil {
		return nil, &StageError{Op: "generate", Stage: StageCompletion, Err: err}
	}

	value, err := ExtractJSON(raw)
	if err != nil {
		return nil, &StageError{Op: "generate", Stage: StageExtraction, Err: err}
	}

	d, err := deck.Normalize(value)
	if err != nil {
		return nil, &StageError{Op: "generate", Stage: StageNormalization, Err: err}
	}
	return d, nil
}

// ModifySlide rewrites one slide per the instruction. The input slide's
// id survives the round-trip no matter what the model returns.
func (g *Generator) ModifySlide(ctx context.Context, slide deck.Slide, instruction string) (*deck.Slide, error) {
	raw, err := g.complete(ctx, prompts.ModifySystem, prompts.BuildModifyUser(slide, instruction))
	if err != nil {
		return nil, &StageError{Op: "modify", Stage: StageCompletion, Err: err}
	}

	value, err := ExtractJSON(raw)
	if err != nil {
		return nil, &StageError{Op: "modify", Stage: StageExtraction, Err: err}
	}

	modified, err := deck.NormalizeSlide(value, slide.ID)
	if err != nil {
		return nil, &StageError{Op: "modify", Stage: StageNormalization, Err: err}
	}
	return modified, nil
}

func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	req := &llm.CompletionRequest{
		Model: g.settings.Model,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   g.settings.MaxTokens,
		Temperature: g.settings.Temperature,
	}

	resp, err := g.provider.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
