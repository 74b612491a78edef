package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSecret = errors.New("jwt secret is empty")
	ErrRevoked       = errors.New("token has been revoked")
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies the session credential.
type Authenticator struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration, revoker Revoker) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if revoker == nil {
		revoker = NopRevoker{}
	}
	return &Authenticator{
		secret:  []byte(secret),
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}, nil
}

func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}

func (a *Authenticator) Issue(userID, role string) (string, error) {
	return a.issue(userID, role, a.ttl)
}

func (a *Authenticator) issue(userID, role string, ttl time.Duration) (string, error) {
	now := a.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Authenticator) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	revoked, err := a.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrRevoked
	}
	return claims, nil
}

// Revoke denylists the credential until it would have expired anyway.
func (a *Authenticator) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := a.ttl
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(a.now())
	}
	if ttl <= 0 {
		return nil
	}
	return a.revoker.Revoke(ctx, claims.ID, ttl)
}
