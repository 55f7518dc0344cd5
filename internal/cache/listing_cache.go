// Package cache provides an explicit cache for ticket listings, keyed
// by (operation, parameters) and invalidated by the reassignment path.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store is the backing byte store for cached listings.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// redisStore backs the cache with go-redis.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a redis client as a Store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// ListingCache caches listing results with a per-key generation
// counter. A fetch snapshots the generation before hitting the store
// and may only publish its result while the generation is unchanged, so
// a response that arrives after an invalidation is discarded instead of
// overwriting fresher state.
type ListingCache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

// NewListingCache constructs the cache.
func NewListingCache(store Store, ttl time.Duration, logger *zap.Logger) *ListingCache {
	return &ListingCache{
		store:       store,
		ttl:         ttl,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

// Key builds a cache key from an operation name and its parameters.
func Key(operation string, params ...string) string {
	return "listing:" + operation + ":" + strings.Join(params, ":")
}

// Begin snapshots the current generation for key. Pass the result to
// Put to publish a fetch started now.
func (c *ListingCache) Begin(key string) uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// Get loads a cached value into dest, reporting whether it was present.
// Cache errors degrade to a miss; the cache is never on the critical
// path.
func (c *ListingCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.store == nil {
		return false
	}
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("listing cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("listing cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Put publishes value under key if no invalidation happened since gen
// was snapshotted. Returns false when the entry was stale and dropped.
func (c *ListingCache) Put(ctx context.Context, key string, gen uint64, value any) bool {
	if c == nil || c.store == nil {
		return false
	}
	c.mu.Lock()
	current := c.generations[key]
	c.mu.Unlock()
	if current != gen {
		c.logger.Debug("discarding stale listing result", zap.String("key", key))
		return false
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("listing cache marshal failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.Warn("listing cache write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Invalidate bumps the generation for each key and drops the stored
// entries. In-flight fetches that began before the bump will not
// publish.
func (c *ListingCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.mu.Lock()
	for _, key := range keys {
		c.generations[key]++
	}
	c.mu.Unlock()
	if c.store == nil {
		return
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		c.logger.Warn("listing cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
