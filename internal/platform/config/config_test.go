// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("API_BASE_URL", "http://localhost:8000")
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
}

/*
TestLoad_Defaults verifies that a minimal environment yields sane defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, config.BackendMemory, cfg.StorageBackend)
	assert.Equal(t, config.BackendMemory, cfg.CacheBackend)
	assert.Equal(t, 2500*time.Millisecond, cfg.NotificationTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UsesRedis())
}

/*
TestLoad_BackendRequirements checks the cross-field validation rules.
*/
func TestLoad_BackendRequirements(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"redis_without_url", map[string]string{"STORAGE_BACKEND": "redis"}, "REDIS_URL"},
		{"postgres_without_dsn", map[string]string{"STORAGE_BACKEND": "postgres"}, "DATABASE_URL"},
		{"unknown_storage", map[string]string{"STORAGE_BACKEND": "floppy"}, "STORAGE_BACKEND"},
		{"redis_cache_without_url", map[string]string{"CACHE_BACKEND": "redis"}, "REDIS_URL"},
		{"short_secret", map[string]string{"SESSION_SECRET": "short"}, "SESSION_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

/*
TestConfig_AllowedOrigins splits and trims EXTRA_ORIGINS.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " https://a.example , ,https://b.example"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
