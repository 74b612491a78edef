package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NopRevoker never revokes; logout then only clears the cookie.
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }
func (NopRevoker) IsRevoked(context.Context, string) (bool, error)     { return false, nil }

const revokedPrefix = "revoked:"

type RedisRevoker struct {
	client *redis.Client
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.client.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
