package auth

import (
	"net/http"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

type Handler struct {
	authenticator *Authenticator
	cookie        CookieSettings
}

func NewHandler(a *Authenticator, cookie CookieSettings) *Handler {
	return &Handler{authenticator: a, cookie: cookie}
}

// Logout always clears the cookie. A still-valid credential is also
// denylisted so a copied token stops working.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if tokenStr := tokenFromRequest(r, h.cookie.Name); tokenStr != "" {
		if claims, err := h.authenticator.Verify(r.Context(), tokenStr); err == nil {
			if err := h.authenticator.Revoke(r.Context(), claims); err != nil {
				log.WithError(err).Error("Erro ao revogar token")
			}
		}
	}

	ClearSessionCookie(w, h.cookie)

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
