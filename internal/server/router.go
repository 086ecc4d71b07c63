package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the handler into a chi router with the standard
// middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"slidesmith"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", h.Generate)
		r.Post("/modify-slide", h.ModifySlide)
		r.Post("/download", h.Download)
		r.Post("/presentation-base64", h.PresentationBase64)
	})

	return r
}
