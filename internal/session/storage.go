// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"sync"
)

// Storage is the browser-scoped key/value storage that backs the persisted
// token record.
//
// # Scope
//
// Every browser session owns one scope (its session id). Keys never leak
// across scopes, exactly like the storage area of a browser tab.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, scope, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, scope, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, scope, key string) error

	// Ping reports whether the backend is reachable (readiness probe).
	Ping(ctx context.Context) error
}

// # Memory Storage

// MemoryStorage keeps browser state in process memory.
//
// It is the default backend for single-instance development and the backend
// used by tests. State is lost on restart.
type MemoryStorage struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

// NewMemoryStorage creates an empty [MemoryStorage].
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{scopes: make(map[string]map[string]string)}
}

// Get implements [Storage].
func (m *MemoryStorage) Get(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.scopes[scope][key]
	return value, ok, nil
}

// Set implements [Storage].
func (m *MemoryStorage) Set(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.scopes[scope]
	if !ok {
		entries = make(map[string]string)
		m.scopes[scope] = entries
	}
	entries[key] = value
	return nil
}

// Delete implements [Storage].
func (m *MemoryStorage) Delete(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.scopes[scope], key)
	if len(m.scopes[scope]) == 0 {
		delete(m.scopes, scope)
	}
	return nil
}

// Ping implements [Storage].
func (m *MemoryStorage) Ping(context.Context) error { return nil }
