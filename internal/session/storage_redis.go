// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	redisclient "github.com/taibuivan/kryptotracker/internal/platform/redis"
)

// RedisStorage keeps browser state in Redis so several web instances can
// serve the same browser.
//
// Keys are "kt:storage:<scope>:<key>". Every write renews the TTL, so a
// record lives as long as the browser keeps using it.
type RedisStorage struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStorage creates a [RedisStorage] on an existing client.
func NewRedisStorage(client redis.UniversalClient, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (r *RedisStorage) key(scope, key string) string {
	return constants.RedisPrefixStorage + scope + ":" + key
}

// Get implements [Storage]. A hit slides the expiry forward.
func (r *RedisStorage) Get(ctx context.Context, scope, key string) (string, bool, error) {
	value, err := r.client.GetEx(ctx, r.key(scope, key), r.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set implements [Storage].
func (r *RedisStorage) Set(ctx context.Context, scope, key, value string) error {
	return r.client.Set(ctx, r.key(scope, key), value, r.ttl).Err()
}

// Delete implements [Storage].
func (r *RedisStorage) Delete(ctx context.Context, scope, key string) error {
	return r.client.Del(ctx, r.key(scope, key)).Err()
}

// Ping implements [Storage].
func (r *RedisStorage) Ping(ctx context.Context) error {
	return redisclient.Ping(ctx, r.client)
}
