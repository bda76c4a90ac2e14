// Package cache is the read-through cache for computed dashboard aggregates.
//
// The cache holds no authoritative state: every value in it is a disposable
// projection of the reservation store, so all failures here are logged and
// swallowed rather than surfaced to the business operation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DashboardTTL bounds staleness of dashboard snapshots.
	DashboardTTL = 120 * time.Second

	// ShortTTL is used for short-lived entries such as OTP codes that
	// share this cache.
	ShortTTL = 60 * time.Second
)

// Store is the cache contract the services depend on. The Redis client
// satisfies it in production; tests substitute an in-memory fake.
type Store interface {
	// Get unmarshals the cached value for key into dest and reports
	// whether the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client in the Store contract.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Invalidator deletes the cache keys affected by a write operation. The
// delete happens synchronously so a caller never reads its own stale data,
// but a cache outage only costs recompute time, never the write itself.
type Invalidator struct {
	store  Store
	logger *zap.Logger
}

func NewInvalidator(store Store, logger *zap.Logger) *Invalidator {
	return &Invalidator{store: store, logger: logger}
}

// Invalidate removes every key the invalidation table maps to op.
func (i *Invalidator) Invalidate(ctx context.Context, op WriteOp, scope Scope) {
	keys := AffectedKeys(op, scope)
	if err := i.store.Delete(ctx, keys...); err != nil {
		i.logger.Warn("cache invalidation failed",
			zap.String("op", string(op)),
			zap.Strings("keys", keys),
			zap.Error(err))
	}
}
