package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "5005", cfg.Port)
		assert.Equal(t, "http://omdbapi.com", cfg.OMDbBaseURL)
		assert.Equal(t, "416ed51a", cfg.OMDbAPIKey)
		assert.Equal(t, 10*time.Second, cfg.OMDbTimeout)
		assert.Equal(t, "sv", cfg.SortLocale)
		assert.Equal(t, 500, cfg.SearchCacheSize)
		assert.Equal(t, 30*time.Minute, cfg.ResultTTL)
		assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
		assert.False(t, cfg.IsProduction())
		assert.True(t, cfg.UsesDefaultSecret())
		assert.Equal(t, defaultSecret, cfg.AppSecret)
	})

	t.Run("loads from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":           "production",
			"PORT":              "8080",
			"APP_SECRET":        "a-much-longer-secret-value",
			"OMDB_BASE_URL":     "https://www.omdbapi.com",
			"OMDB_API_KEY":      "abc123",
			"OMDB_TIMEOUT":      "3s",
			"SORT_LOCALE":       "en-US",
			"SEARCH_CACHE_SIZE": "10",
			"SEARCH_CACHE_TTL":  "1m",
			"RESULT_TTL":        "5m",
			"LOG_LEVEL":         "debug",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, cfg.IsProduction())
		assert.False(t, cfg.UsesDefaultSecret())
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "https://www.omdbapi.com", cfg.OMDbBaseURL)
		assert.Equal(t, "abc123", cfg.OMDbAPIKey)
		assert.Equal(t, 3*time.Second, cfg.OMDbTimeout)
		assert.Equal(t, "en-US", cfg.SortLocale)
		assert.Equal(t, 10, cfg.SearchCacheSize)
		assert.Equal(t, time.Minute, cfg.SearchCacheTTL)
		assert.Equal(t, 5*time.Minute, cfg.ResultTTL)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("OMDB_TIMEOUT", "soon")

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Setenv("OMDB_BASE_URL", "not a url")

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("invalid cache size", func(t *testing.T) {
		t.Setenv("SEARCH_CACHE_SIZE", "0")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("APP_SECRET", "short")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid env", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")

		_, err := Load()
		assert.Error(t, err)
	})
}
