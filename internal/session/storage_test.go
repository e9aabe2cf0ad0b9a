// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/internal/session"
)

/*
TestStorage_Contract runs the same scenario against every embeddable backend.
*/
func TestStorage_Contract(t *testing.T) {
	ctx := context.Background()

	sqlite, err := session.OpenSQLiteStorage(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	backends := []struct {
		name    string
		storage session.Storage
	}{
		{"memory", session.NewMemoryStorage()},
		{"sqlite", sqlite},
	}

	for _, tt := range backends {
		t.Run(tt.name, func(t *testing.T) {
			storage := tt.storage
			require.NoError(t, storage.Ping(ctx))

			// 1. Missing keys are not errors
			_, found, err := storage.Get(ctx, "scope-a", "ACCESS_TOKEN")
			require.NoError(t, err)
			assert.False(t, found)

			// 2. Set then overwrite
			require.NoError(t, storage.Set(ctx, "scope-a", "ACCESS_TOKEN", "first"))
			require.NoError(t, storage.Set(ctx, "scope-a", "ACCESS_TOKEN", "second"))

			value, found, err := storage.Get(ctx, "scope-a", "ACCESS_TOKEN")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "second", value)

			// 3. Scopes are isolated
			_, found, err = storage.Get(ctx, "scope-b", "ACCESS_TOKEN")
			require.NoError(t, err)
			assert.False(t, found)

			// 4. Delete is idempotent
			require.NoError(t, storage.Delete(ctx, "scope-a", "ACCESS_TOKEN"))
			require.NoError(t, storage.Delete(ctx, "scope-a", "ACCESS_TOKEN"))

			_, found, err = storage.Get(ctx, "scope-a", "ACCESS_TOKEN")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

/*
TestMigrations_Embedded ships both directions of the schema.
*/
func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(session.Migrations(), "*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"000001_create_web_storage.down.sql",
		"000001_create_web_storage.up.sql",
	}, names)
}
