// Package server exposes the generation pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/slidesmith/slidesmith/internal/deck"
	"github.com/slidesmith/slidesmith/internal/pipeline"
	"github.com/slidesmith/slidesmith/internal/pptx"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Handler carries the dependencies shared by all routes.
type Handler struct {
	logger zerolog.Logger
	gen    *pipeline.Generator
}

// NewHandler creates a handler backed by the given generator.
func NewHandler(logger zerolog.Logger, gen *pipeline.Generator) *Handler {
	return &Handler{logger: logger, gen: gen}
}

// GenerateRequest is the body for generate, download and
// presentation-base64.
type GenerateRequest struct {
	Text string `json:"text"`
}

// ModifySlideRequest asks for one slide to be rewritten per instruction.
type ModifySlideRequest struct {
	SlideID        string     `json:"slide_id"`
	UserPrompt     string     `json:"user_prompt"`
	CurrentContent deck.Slide `json:"current_content"`
}

// ModifySlideResponse echoes the slide id alongside the rewritten slide.
type ModifySlideResponse struct {
	SlideID       string     `json:"slide_id"`
	ModifiedSlide deck.Slide `json:"modified_slide"`
}

// Base64Response is the deck plus its rendered file in one payload.
type Base64Response struct {
	Title      string       `json:"title"`
	Slides     []deck.Slide `json:"slides"`
	PPTXBase64 string       `json:"pptx_base64"`
}

// Generate handles POST /api/v1/generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.generateDeck(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

// ModifySlide handles POST /api/v1/modify-slide.
func (h *Handler) ModifySlide(w http.ResponseWriter, r *http.Request) {
	var req ModifySlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		h.writeError(w, http.StatusBadRequest, "modification instructions cannot be empty", "")
		return
	}

	slide := req.CurrentContent
	if slide.ID == "" {
		slide.ID = req.SlideID
	}

	modified, err := h.gen.ModifySlide(r.Context(), slide, req.UserPrompt)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ModifySlideResponse{
		SlideID:       modified.ID,
		ModifiedSlide: *modified,
	})
}

// Download handles POST /api/v1/download: generate, render and return the
// file as an attachment named after the deck title.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	d, ok := h.generateDeck(w, r)
	if !ok {
		return
	}

	raw, err := pptx.Render(d)
	if err != nil {
		h.logger.Error().Err(err).Msg("rendering failed")
		h.writeError(w, http.StatusInternalServerError, "rendering failed", err.Error())
		return
	}

	filename := strings.ReplaceAll(d.Title, " ", "_") + ".pptx"
	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		h.logger.Error().Err(err).Msg("writing attachment")
	}
}

// PresentationBase64 handles POST /api/v1/presentation-base64: the deck
// and its rendered file in a single JSON payload.
func (h *Handler) PresentationBase64(w http.ResponseWriter, r *http.Request) {
	d, ok := h.generateDeck(w, r)
	if !ok {
		return
	}

	encoded, err := pptx.RenderBase64(d)
	if err != nil {
		h.logger.Error().Err(err).Msg("rendering failed")
		h.writeError(w, http.StatusInternalServerError, "rendering failed", err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, Base64Response{
		Title:      d.Title,
		Slides:     d.Slides,
		PPTXBase64: encoded,
	})
}

// generateDeck parses a GenerateRequest and runs the full pipeline. On
// failure it writes the response itself and reports ok=false.
func (h *Handler) generateDeck(w http.ResponseWriter, r *http.Request) (*deck.Deck, bool) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}
	if strings.TrimSpace(req.Text) == "" {
		h.writeError(w, http.StatusBadRequest, "input text cannot be empty", "")
		return nil, false
	}

	d, err := h.gen.Generate(r.Context(), req.Text)
	if err != nil {
		h.writePipelineError(w, err)
		return nil, false
	}
	return d, true
}

// writePipelineError maps pipeline failures to status codes: upstream
// model failures are 502, everything else 500.
func (h *Handler) writePipelineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "generation failed"

	var se *pipeline.StageError
	if errors.As(err, &se) {
		message = fmt.Sprintf("%s failed", se.Stage)
		if se.Stage == pipeline.StageCompletion {
			status = http.StatusBadGateway
		}
	}

	h.logger.Error().Err(err).Msg("pipeline failure")
	h.writeError(w, status, message, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("encoding response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("encoding error response")
	}
}
