// nolint: funlen
package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviesearch/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":            "test",
			"PORT":               "9090",
			"SENTRY_DSN":         "https://test@sentry.io/123",
			"ALLOW_ORIGINS":      "*",
			"PAGINATION_MODE":    "loadmore",
			"SESSION_CACHE_SIZE": "32",
			"OMDB_API_KEY":       "secret",
			"OMDB_BASE_URL":      "http://omdb.local",
			"OMDB_TIMEOUT":       "3",
			"OMDB_RATE_LIMIT":    "2.5",
			"OMDB_CACHE_SIZE":    "16",
			"OMDB_CACHE_TTL":     "60",
			"DB_NAME":            "testdb",
			"DB_HOST":            "localhost",
			"DB_PORT":            "5433",
			"DB_USER":            "testuser",
			"DB_PASS":            "testpass",
			"ENABLE_SSL":         "true",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, "loadmore", cfg.PaginationMode)
		assert.Equal(t, 32, cfg.SessionCacheSize)
		assert.Equal(t, "secret", cfg.OMDb.APIKey)
		assert.Equal(t, "http://omdb.local", cfg.OMDb.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.OMDbTimeout())
		assert.Equal(t, 2.5, cfg.OMDb.RateLimit)
		assert.Equal(t, 16, cfg.OMDb.CacheSize)
		assert.Equal(t, time.Minute, cfg.OMDbCacheTTL())
		assert.Equal(t, "testdb", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5433, cfg.DB.Port)
		assert.Equal(t, "testuser", cfg.DB.User)
		assert.Equal(t, "testpass", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.True(t, cfg.DatabaseEnabled())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("OMDB_API_KEY", "secret")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "paged", cfg.PaginationMode)
		assert.Equal(t, "https://www.omdbapi.com", cfg.OMDb.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.OMDbTimeout())
	})

	t.Run("missing api key fails validation", func(t *testing.T) {
		t.Setenv("OMDB_API_KEY", "")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.EqualError(t, cfg.Validate(), "OMDB_API_KEY is required")
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid rate limit", func(t *testing.T) {
		t.Setenv("OMDB_RATE_LIMIT", "fast")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}
