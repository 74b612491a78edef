package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

type ctxKey string

const claimsKey ctxKey = "claims"

var ErrNoClaims = errors.New("no user claims in context")

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// ContextWithClaims is what Middleware does after a successful verify.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	return config.WithUserID(ctx, claims.UserID)
}

// Middleware accepts the credential from the session cookie or an
// Authorization: Bearer header.
func (a *Authenticator) Middleware(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := config.WithContext(r.Context())

			tokenStr := tokenFromRequest(r, cookieName)
			if tokenStr == "" {
				log.Debug("Requisição sem token")
				config.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := a.Verify(r.Context(), tokenStr)
			if err != nil {
				log.WithError(err).Warn("Token inválido")
				config.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
