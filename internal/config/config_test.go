package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.False(t, cfg.DBEnabled)
	assert.Equal(t, CacheMemory, cfg.CacheBackend)
	assert.Equal(t, 6*time.Hour, cfg.RateCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.BureauCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.Equal(t, "@every 6h", cfg.RefreshSchedule)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("RATE_CACHE_TTL", "30m")
	t.Setenv("ALLOW_COUNTRY_FALLBACK", "1")
	t.Setenv("REFRESH_SCHEDULE", "0 */2 * * *")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, 30*time.Minute, cfg.RateCacheTTL)
	assert.True(t, cfg.AllowCountryFallback)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad bool", "DB_ENABLED", "maybe"},
		{"bad duration", "FEED_TIMEOUT", "soon"},
		{"zero timeout", "FEED_TIMEOUT", "0s"},
		{"bad int", "RATE_LIMIT_PER_MINUTE", "many"},
		{"unknown backend", "CACHE_BACKEND", "memcached"},
		{"bad schedule", "REFRESH_SCHEDULE", "every day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
