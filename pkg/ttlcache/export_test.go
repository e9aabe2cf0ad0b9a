// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ttlcache

import "time"

// SetClock replaces the time source of c.
func SetClock[K comparable, V any](c *Cache[K, V], now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// EvictExpired runs one sweep synchronously.
func EvictExpired[K comparable, V any](c *Cache[K, V]) {
	c.evictExpired()
}
