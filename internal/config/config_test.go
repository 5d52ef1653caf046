package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "50051", cfg.GRPCPort)
	assert.Equal(t, "8080", cfg.WebPort)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.True(t, cfg.Development())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.GRPCPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.False(t, cfg.Development())
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "etcd"}},
		{"postgres without url", map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "postgres", "DATABASE_URL": ""}},
		{"zero ttl", map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
