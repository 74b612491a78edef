package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves /quiz. Item reads are public; everything else needs a
// verified credential.
func Routes(h *Handler, authMw func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/item/{id}", h.GetItem)

	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Post("/generate", h.GenerateQuiz)
		r.Post("/answer", h.SubmitAnswer)
	})
	return r
}

// QuizzesRoutes serves /quizzes.
func QuizzesRoutes(h *Handler, authMw func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(authMw)
	r.Get("/{id}", h.GetQuiz)
	return r
}
