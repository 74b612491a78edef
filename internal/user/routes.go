package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMw func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(authMw).Get("/me", h.GetUser)
	return r
}

// AuthRoutes serves the unauthenticated account endpoints. Logout lives in
// the auth package.
func AuthRoutes(h *Handler, logout http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/logout", logout)
	return r
}
