// Package cache provides Redis-backed caching in front of slower collaborators.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/payontime/backend/internal/application/adapter"
)

const identityKeyPrefix = "identity:email:"

// identityCache implements adapter.IdentityProvider by caching another provider's answers.
// Only found addresses are cached; a missing email is asked again on the next lookup.
type identityCache struct {
	next   adapter.IdentityProvider
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityCache wraps next with a Redis cache. Redis failures degrade to direct lookups.
func NewIdentityCache(next adapter.IdentityProvider, client *redis.Client, ttl time.Duration) adapter.IdentityProvider {
	return &identityCache{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// GetUserEmail returns the cached email or resolves and caches it.
func (c *identityCache) GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	key := identityKeyPrefix + userID.String()

	email, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil && email != "":
		return email, nil
	case err != nil && !errors.Is(err, redis.Nil):
		slog.Warn("Identity cache read failed", "user_id", userID, "error", err)
	}

	email, err = c.next.GetUserEmail(ctx, userID)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", nil
	}

	if err := c.client.Set(ctx, key, email, c.ttl).Err(); err != nil {
		slog.Warn("Identity cache write failed", "user_id", userID, "error", err)
	}
	return email, nil
}

// Invalidate drops the cached email of a user.
func Invalidate(ctx context.Context, client *redis.Client, userID uuid.UUID) error {
	return client.Del(ctx, identityKeyPrefix+userID.String()).Err()
}

// identityInvalidator implements adapter.IdentityCache.
type identityInvalidator struct {
	client *redis.Client
}

// NewIdentityInvalidator returns the adapter.IdentityCache view of the same Redis keys.
func NewIdentityInvalidator(client *redis.Client) adapter.IdentityCache {
	return &identityInvalidator{client: client}
}

// Invalidate drops the cached email of a user.
func (i *identityInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return Invalidate(ctx, i.client, userID)
}

// NewRedisClient builds a client from a redis:// URL, overriding password and db when set.
func NewRedisClient(url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return redis.NewClient(opts), nil
}
