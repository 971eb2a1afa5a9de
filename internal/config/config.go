package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Supported upstream weather providers.
const (
	ProviderVisualCrossing = "visualcrossing"
	ProviderWeatherAPI     = "weatherapi"
	ProviderOpenMeteo      = "openmeteo"
	ProviderOpenWeather    = "openweather"
)

// Forecast length bounds accepted by all providers.
const (
	MinForecastDays = 1
	MaxForecastDays = 15
)

type AppConfig struct {
	Port string

	// DatabaseURL is a PostgreSQL DSN. Empty selects the in-memory store.
	DatabaseURL string

	Provider             string
	VisualCrossingAPIKey string
	WeatherAPIKey        string
	OpenWeatherAPIKey    string
	GoogleGeocodingKey   string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout  time.Duration
	ForecastDays int

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	ForecastCacheTTL time.Duration

	// RefreshInterval controls how often favorited forecasts are re-fetched
	// (0 = disabled).
	RefreshInterval time.Duration

	SessionTTL          time.Duration
	SessionCookieSecure bool
	BcryptCost          int

	LogLevel  string
	LogFormat string
}

// CacheEnabled reports whether a Redis address was configured.
func (c *AppConfig) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	cfg := &AppConfig{}
	var err error

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.Provider = strings.ToLower(getenvDefault("WEATHER_PROVIDER", ProviderVisualCrossing))
	cfg.VisualCrossingAPIKey = os.Getenv("VISUALCROSSING_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GoogleGeocodingKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")

	switch cfg.Provider {
	case ProviderVisualCrossing:
		if cfg.VisualCrossingAPIKey == "" {
			return nil, fmt.Errorf("VISUALCROSSING_API_KEY is required for provider %q", cfg.Provider)
		}
	case ProviderWeatherAPI:
		if cfg.WeatherAPIKey == "" {
			return nil, fmt.Errorf("WEATHERAPI_API_KEY is required for provider %q", cfg.Provider)
		}
	case ProviderOpenWeather:
		if cfg.OpenWeatherAPIKey == "" {
			return nil, fmt.Errorf("OPENWEATHER_API_KEY is required for provider %q", cfg.Provider)
		}
	case ProviderOpenMeteo:
	default:
		return nil, fmt.Errorf("invalid WEATHER_PROVIDER %q", cfg.Provider)
	}

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.ForecastDays, err = getenvInt("FORECAST_DAYS", 7); err != nil {
		return nil, err
	}
	if cfg.ForecastDays < MinForecastDays || cfg.ForecastDays > MaxForecastDays {
		return nil, fmt.Errorf("invalid FORECAST_DAYS %d: must be between %d and %d", cfg.ForecastDays, MinForecastDays, MaxForecastDays)
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RedisDB, err = getenvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ForecastCacheTTL, err = getenvDuration("FORECAST_CACHE_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	if cfg.SessionTTL, err = getenvDuration("SESSION_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.SessionCookieSecure, err = getenvBool("SESSION_COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getenvInt("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid BCRYPT_COST %d", cfg.BcryptCost)
	}

	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "console"))
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
