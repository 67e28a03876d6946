package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/documents", h.IngestDocument)
		r.Post("/{id}/analyze", h.Analyze)
		r.Get("/{id}/report", h.GetReport)
		r.Get("/{id}/report/export", h.ExportReport)
	})
}
