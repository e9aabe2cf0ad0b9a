// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/sec"
	"github.com/taibuivan/kryptotracker/pkg/ttlcache"
	"github.com/taibuivan/kryptotracker/pkg/uuidv7"
)

// Cache stores raw GET response bodies.
//
// Implementations never fail the call they serve: a broken cache behaves
// like an empty one and logs the problem.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
}

// generationTTL outlives the longest response freshness, so an entry never
// outlasts the generation it was stored under.
const generationTTL = 24 * time.Hour

// cacheKey is "kt:api:<fingerprint>:<generation>:<path>". The raw token never
// appears.
func (c *Client) cacheKey(ctx context.Context, token, path string) string {
	prefix := tokenPrefix(token)

	generation := "0"
	if current, ok := c.cache.Get(ctx, prefix+"gen"); ok {
		generation = string(current)
	}
	return prefix + generation + ":" + path
}

func tokenPrefix(token string) string {
	return constants.RedisPrefixAPI + sec.TokenFingerprint(token) + ":"
}

// invalidate rotates the generation of token. Entries of the old generation
// are never read again and expire on their own TTL.
func (c *Client) invalidate(ctx context.Context, token string) {
	if c.cache == nil || token == "" {
		return
	}
	c.cache.Set(ctx, tokenPrefix(token)+"gen", []byte(uuidv7.New()), generationTTL)
}

// # Memory Cache

// MemoryCache keeps responses in process memory.
type MemoryCache struct {
	entries *ttlcache.Cache[string, []byte]
}

// NewMemoryCache creates a [MemoryCache] swept until ctx is cancelled.
func NewMemoryCache(ctx context.Context) *MemoryCache {
	return &MemoryCache{entries: ttlcache.New[string, []byte](ctx, time.Minute)}
}

// Get implements [Cache].
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	return m.entries.Get(key)
}

// Set implements [Cache].
func (m *MemoryCache) Set(_ context.Context, key string, body []byte, ttl time.Duration) {
	m.entries.Set(key, body, ttl)
}

// # Redis Cache

// RedisCache shares responses between web instances.
type RedisCache struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewRedisCache creates a [RedisCache] on an existing client.
func NewRedisCache(client redis.UniversalClient, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// Get implements [Cache].
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.WarnContext(ctx, "api_cache_get_failed", slog.String("error", err.Error()))
		return nil, false
	}
	return body, true
}

// Set implements [Cache].
func (r *RedisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, body, ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "api_cache_set_failed", slog.String("error", err.Error()))
	}
}
