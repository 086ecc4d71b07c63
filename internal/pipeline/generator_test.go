package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/deck"
	"github.com/slidesmith/slidesmith/internal/llm"
)

// stubProvider returns a canned response and records the last request.
type stubProvider struct {
	response string
	err      error
	lastReq  *llm.CompletionRequest
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Ping(ctx context.Context) error { return nil }

func (s *stubProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.response}, nil
}

func testSettings() Settings {
	return Settings{Model: "gpt-4o-mini", Temperature: 0.7, MaxTokens: 2000}
}

func TestGenerate(t *testing.T) {
	stub := &stubProvider{
		response: `{"title":"Growth Review","slides":[
			{"title":"Revenue","bullets":[{"text":"Up 20% this year"}]},
			{"title":"Drivers","bullets":["New product lines"]}]}`,
	}
	g := NewGenerator(stub, testSettings())

	d, err := g.Generate(context.Background(), "Our company grew revenue 20% this year due to new product lines.")
	require.NoError(t, err)

	assert.Equal(t, "Growth Review", d.Title)
	require.Len(t, d.Slides, 2)
	assert.Equal(t, "Revenue", d.Slides[0].Title)
	assert.Equal(t, "New product lines", d.Slides[1].Bullets[0].Text)

	assert.NotEmpty(t, d.Slides[0].ID)
	assert.NotEmpty(t, d.Slides[1].ID)
	assert.NotEqual(t, d.Slides[0].ID, d.Slides[1].ID)

	// One system message plus the user turn, model from settings.
	require.NotNil(t, stub.lastReq)
	assert.Equal(t, "gpt-4o-mini", stub.lastReq.Model)
	require.Len(t, stub.lastReq.Messages, 2)
	assert.Equal(t, "system", stub.lastReq.Messages[0].Role)
	assert.Contains(t, stub.lastReq.Messages[1].Content, "grew revenue 20%")
}

func TestGenerateFencedResponse(t *testing.T) {
	stub := &stubProvider{
		response: "```json\n{\"title\":\"T\",\"slides\":[{\"title\":\"S\",\"bullets\":[\"a\"]}]}\n```",
	}
	g := NewGenerator(stub, testSettings())

	d, err := g.Generate(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, "T", d.Title)
}

func TestGenerateStageErrors(t *testing.T) {
	tests := []struct {
		name      string
		stub      *stubProvider
		wantStage Stage
	}{
		{
			name:      "provider failure",
			stub:      &stubProvider{err: errors.New("connection refused")},
			wantStage: StageCompletion,
		},
		{
			name:      "unparseable output",
			stub:      &stubProvider{response: "I refuse to answer in JSON."},
			wantStage: StageExtraction,
		},
		{
			name:      "parseable but missing title",
			stub:      &stubProvider{response: `{"slides":[]}`},
			wantStage: StageNormalization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(tt.stub, testSettings())
			_, err := g.Generate(context.Background(), "text")
			require.Error(t, err)

			var stageErr *StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, "generate", stageErr.Op)
			assert.Equal(t, tt.wantStage, stageErr.Stage)
		})
	}
}

func TestModifySlidePreservesID(t *testing.T) {
	slide := deck.Slide{
		Title:   "T",
		Bullets: []deck.Bullet{{Text: "x"}},
		ID:      "abc123",
	}

	// The model omits slide_id entirely.
	stub := &stubProvider{response: `{"title":"T (edited)","bullets":[{"text":"x"},{"text":"y"}]}`}
	g := NewGenerator(stub, testSettings())

	got, err := g.ModifySlide(context.Background(), slide, "add a second bullet")
	require.NoError(t, err)

	assert.Equal(t, "abc123", got.ID)
	assert.Equal(t, "T (edited)", got.Title)
	require.Len(t, got.Bullets, 2)

	// Prompt embeds the slide content, its id and the instruction.
	user := stub.lastReq.Messages[1].Content
	assert.Contains(t, user, "Title: T")
	assert.Contains(t, user, "- x")
	assert.Contains(t, user, "abc123")
	assert.Contains(t, user, "add a second bullet")
}

func TestModifySlideIgnoresEchoedID(t *testing.T) {
	slide := deck.Slide{Title: "T", Bullets: []deck.Bullet{{Text: "x"}}, ID: "abc123"}
	stub := &stubProvider{response: `{"title":"T","bullets":["x"],"slide_id":"made-up-by-model"}`}
	g := NewGenerator(stub, testSettings())

	got, err := g.ModifySlide(context.Background(), slide, "tighten wording")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)
}

func TestModifySlideStageError(t *testing.T) {
	slide := deck.Slide{Title: "T", ID: "abc123"}
	stub := &stubProvider{response: "not json at all"}
	g := NewGenerator(stub, testSettings())

	_, err := g.ModifySlide(context.Background(), slide, "do something")
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "modify", stageErr.Op)
	assert.Equal(t, StageExtraction, stageErr.Stage)
}
