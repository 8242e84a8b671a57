package routers

import (
	"jobprep/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func StatusRoutes(r *chi.Mux, h *handlers.StatusHandler) {
	r.Route("/api/statuses", func(r chi.Router) {
		r.Get("/", h.ListHandler)
		r.Post("/", h.CreateHandler)
		r.Get("/{id}", h.GetHandler)
		r.Patch("/{id}", h.UpdateHandler)
		r.Delete("/{id}", h.DeleteHandler)
	})
}
