package routers

import (
	"jobprep/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func TagRoutes(r *chi.Mux, h *handlers.TagHandler) {
	r.Route("/api/tags", func(r chi.Router) {
		r.Get("/", h.ListHandler)
		r.Post("/", h.CreateHandler)
		r.Get("/{id}", h.GetHandler)
		r.Patch("/{id}", h.UpdateHandler)
		r.Delete("/{id}", h.DeleteHandler)
	})
}

func CompanyRoutes(r *chi.Mux, h *handlers.CompanyHandler) {
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", h.ListHandler)
		r.Post("/", h.CreateHandler)
		r.Get("/{id}", h.GetHandler)
		r.Patch("/{id}", h.UpdateHandler)
		r.Delete("/{id}", h.DeleteHandler)
	})
}
