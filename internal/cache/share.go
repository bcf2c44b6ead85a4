// Package cache holds the Redis-backed cache for the saved days of publicly
// shared trips. Visibility is never cached; callers check it on every read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/tripweaver/internal/domain"
)

const DefaultShareTTL = 5 * time.Minute

const keyPrefix = "tripweaver:shared:"

// ShareCache stores the saved days of a shared trip by share token.
type ShareCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	events *prometheus.CounterVec
}

// NewShareCache wraps rdb. A non-positive ttl uses DefaultShareTTL. When reg
// is non-nil, hit/miss/set/del counts are registered with it.
func NewShareCache(rdb *redis.Client, ttl time.Duration, reg prometheus.Registerer) *ShareCache {
	if ttl <= 0 {
		ttl = DefaultShareTTL
	}
	c := &ShareCache{rdb: rdb, ttl: ttl}
	if reg != nil {
		c.events = prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "tripweaver", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
			[]string{"cache", "event"},
		)
		reg.MustRegister(c.events)
	}
	return c
}

func key(token uuid.UUID) string {
	return keyPrefix + token.String()
}

func (c *ShareCache) observe(event string) {
	if c.events != nil {
		c.events.WithLabelValues("shared_trip", event).Inc()
	}
}

// Get returns the cached days and true, or false on a miss.
func (c *ShareCache) Get(ctx context.Context, token uuid.UUID) ([]domain.SavedDay, bool, error) {
	b, err := c.rdb.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe("miss")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache.ShareCache.Get: %w", err)
	}
	var days []domain.SavedDay
	if err := json.Unmarshal(b, &days); err != nil {
		return nil, false, fmt.Errorf("cache.ShareCache.Get: decode: %w", err)
	}
	c.observe("hit")
	return days, true, nil
}

// Set stores days under token for the cache TTL.
func (c *ShareCache) Set(ctx context.Context, token uuid.UUID, days []domain.SavedDay) error {
	b, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("cache.ShareCache.Set: encode: %w", err)
	}
	c.observe("set")
	if err := c.rdb.Set(ctx, key(token), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.ShareCache.Set: %w", err)
	}
	return nil
}

// Delete drops the cached entry for token. Deleting a missing key is not an error.
func (c *ShareCache) Delete(ctx context.Context, token uuid.UUID) error {
	c.observe("del")
	if err := c.rdb.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("cache.ShareCache.Delete: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *ShareCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
