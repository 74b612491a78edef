package subject

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListSubjects)
	return r
}

func SubtopicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.ProvisionSubtopics)
	return r
}
