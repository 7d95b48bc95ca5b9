package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "auth:revoked:"

// TokenBlacklist records revoked token IDs in redis. Entries expire
// together with the token itself, so the set never needs sweeping.
type TokenBlacklist struct {
	rdb *redis.Client
}

// NewTokenBlacklist creates a new TokenBlacklist
func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

// Revoke marks a token ID as revoked for the given remaining lifetime
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to record
		return nil
	}
	return b.rdb.Set(ctx, blacklistKeyPrefix+jti, 1, ttl).Err()
}

// IsRevoked reports whether a token ID has been revoked
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
