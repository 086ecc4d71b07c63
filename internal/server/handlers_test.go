package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/deck"
	"github.com/slidesmith/slidesmith/internal/llm"
	"github.com/slidesmith/slidesmith/internal/pipeline"
)

type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(_ context.Context, _ *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.response}, nil
}

func (s *stubProvider) Ping(context.Context) error { return nil }

const deckJSON = `{
	"title": "Q1 Review",
	"slides": [
		{"title": "Revenue", "bullets": [{"text": "Up 20%"}], "slide_id": "s-1"},
		{"title": "Outlook", "bullets": [{"text": "Strong pipeline"}], "slide_id": "s-2"}
	]
}`

func newTestServer(provider llm.Provider) *httptest.Server {
	gen := pipeline.NewGenerator(provider, pipeline.Settings{Model: "test-model"})
	h := NewHandler(zerolog.Nop(), gen)
	return httptest.NewServer(NewRouter(h))
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubProvider{response: deckJSON})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(&stubProvider{response: deckJSON})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/generate", `{"text": "quarterly numbers"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var d deck.Deck
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	assert.Equal(t, "Q1 Review", d.Title)
	require.Len(t, d.Slides, 2)
	assert.Equal(t, "s-1", d.Slides[0].ID)
	assert.Equal(t, "Up 20%", d.Slides[0].Bullets[0].Text)
}

func TestGenerateBlankInput(t *testing.T) {
	provider := &stubProvider{response: deckJSON}
	srv := newTestServer(provider)
	defer srv.Close()

	for _, body := range []string{`{"text": ""}`, `{"text": "   "}`, `{}`} {
		resp := postJSON(t, srv.URL+"/api/v1/generate", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
	assert.Zero(t, provider.calls, "blank input must not reach the provider")
}

func TestGenerateBadJSONBody(t *testing.T) {
	srv := newTestServer(&stubProvider{response: deckJSON})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/generate", `{"text": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateProviderDown(t *testing.T) {
	srv := newTestServer(&stubProvider{err: errors.New("connection refused")})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/generate", `{"text": "anything"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "completion failed", payload["error"])
}

func TestGenerateUnparseableModelOutput(t *testing.T) {
	srv := newTestServer(&stubProvider{response: "sorry, cannot help with that"})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/generate", `{"text": "anything"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "extraction failed", payload["error"])
}

func TestModifySlide(t *testing.T) {
	srv := newTestServer(&stubProvider{
		response: `{"title": "Revenue (updated)", "bullets": [{"text": "Up 25%"}]}`,
	})
	defer srv.Close()

	body := `{
		"slide_id": "s-1",
		"user_prompt": "make it punchier",
		"current_content": {"title": "Revenue", "bullets": [{"text": "Up 20%"}], "slide_id": "s-1"}
	}`
	resp := postJSON(t, srv.URL+"/api/v1/modify-slide", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ModifySlideResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "s-1", out.SlideID)
	assert.Equal(t, "s-1", out.ModifiedSlide.ID)
	assert.Equal(t, "Revenue (updated)", out.ModifiedSlide.Title)
	require.Len(t, out.ModifiedSlide.Bullets, 1)
	assert.Equal(t, "Up 25%", out.ModifiedSlide.Bullets[0].Text)
}

func TestModifySlideBlankInstruction(t *testing.T) {
	provider := &stubProvider{response: deckJSON}
	srv := newTestServer(provider)
	defer srv.Close()

	body := `{"slide_id": "s-1", "user_prompt": "  ", "current_content": {"title": "Revenue"}}`
	resp := postJSON(t, srv.URL+"/api/v1/modify-slide", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, provider.calls)
}

func TestDownload(t *testing.T) {
	srv := newTestServer(&stubProvider{response: deckJSON})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/download", `{"text": "quarterly numbers"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pptxContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Q1_Review.pptx", resp.Header.Get("Content-Disposition"))

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err, "attachment must be a valid archive")
	slides := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides++
		}
	}
	assert.Equal(t, 3, slides, "title slide plus one per deck slide")
}

func TestPresentationBase64(t *testing.T) {
	srv := newTestServer(&stubProvider{response: deckJSON})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/presentation-base64", `{"text": "quarterly numbers"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out Base64Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Q1 Review", out.Title)
	assert.Len(t, out.Slides, 2)

	raw, err := base64.StdEncoding.DecodeString(out.PPTXBase64)
	require.NoError(t, err)
	_, err = zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	assert.NoError(t, err, "decoded payload must be a valid archive")
}
