package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var allKeys = []string{
	"PORT", "DATABASE_URL", "WEATHER_PROVIDER", "VISUALCROSSING_API_KEY",
	"WEATHERAPI_API_KEY", "OPENWEATHER_API_KEY", "GOOGLE_GEOCODING_API_KEY", "HTTP_TIMEOUT",
	"FORECAST_DAYS", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"FORECAST_CACHE_TTL", "REFRESH_INTERVAL", "SESSION_TTL",
	"SESSION_COOKIE_SECURE", "BCRYPT_COST", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISUALCROSSING_API_KEY", "vc-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, ProviderVisualCrossing, cfg.Provider)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 7, cfg.ForecastDays)
	assert.Equal(t, 30*time.Minute, cfg.ForecastCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SessionCookieSecure)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_PROVIDER", "OpenMeteo")
	t.Setenv("FORECAST_DAYS", "15")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REFRESH_INTERVAL", "0s")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenMeteo, cfg.Provider)
	assert.Equal(t, 15, cfg.ForecastDays)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Zero(t, cfg.RefreshInterval)
	assert.True(t, cfg.SessionCookieSecure)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown provider", map[string]string{"WEATHER_PROVIDER": "darksky"}, "WEATHER_PROVIDER"},
		{"missing vc key", map[string]string{}, "VISUALCROSSING_API_KEY"},
		{"missing weatherapi key", map[string]string{"WEATHER_PROVIDER": "weatherapi"}, "WEATHERAPI_API_KEY"},
		{"missing openweather key", map[string]string{"WEATHER_PROVIDER": "openweather"}, "OPENWEATHER_API_KEY"},
		{"bad timeout", map[string]string{"WEATHER_PROVIDER": "openmeteo", "HTTP_TIMEOUT": "soon"}, "HTTP_TIMEOUT"},
		{"days too low", map[string]string{"WEATHER_PROVIDER": "openmeteo", "FORECAST_DAYS": "0"}, "FORECAST_DAYS"},
		{"days too high", map[string]string{"WEATHER_PROVIDER": "openmeteo", "FORECAST_DAYS": "16"}, "FORECAST_DAYS"},
		{"days not a number", map[string]string{"WEATHER_PROVIDER": "openmeteo", "FORECAST_DAYS": "seven"}, "FORECAST_DAYS"},
		{"negative ttl", map[string]string{"WEATHER_PROVIDER": "openmeteo", "SESSION_TTL": "-1h"}, "SESSION_TTL"},
		{"bad bool", map[string]string{"WEATHER_PROVIDER": "openmeteo", "SESSION_COOKIE_SECURE": "maybe"}, "SESSION_COOKIE_SECURE"},
		{"bad cost", map[string]string{"WEATHER_PROVIDER": "openmeteo", "BCRYPT_COST": "99"}, "BCRYPT_COST"},
		{"bad log level", map[string]string{"WEATHER_PROVIDER": "openmeteo", "LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"WEATHER_PROVIDER": "openmeteo", "LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
