package routers

import (
	"jobprep/internal/handlers"
	"jobprep/internal/models"

	"github.com/go-chi/chi/v5"
)

func ProblemRoutes(r *chi.Mux, h *handlers.ProblemHandler) {
	r.Route("/api/problems", func(r chi.Router) {
		r.Get("/", h.ListHandler)
		r.Post("/", h.CreateHandler)
		r.Get("/{id}", h.GetHandler)
		r.Patch("/{id}", h.UpdateHandler)
		r.Delete("/{id}", h.DeleteHandler)
		r.Post("/{id}/mark_confident", h.MarkHandler(models.ProgressConfident))
		r.Post("/{id}/mark_solved", h.MarkHandler(models.ProgressSolved))
		r.Post("/{id}/mark_tried", h.MarkHandler(models.ProgressTried))
	})
}
