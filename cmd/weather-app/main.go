package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpapi "github.com/keante032/SB-Capstone1/internal/api/http"
	"github.com/keante032/SB-Capstone1/internal/auth"
	"github.com/keante032/SB-Capstone1/internal/cache"
	"github.com/keante032/SB-Capstone1/internal/config"
	"github.com/keante032/SB-Capstone1/internal/favorites"
	"github.com/keante032/SB-Capstone1/internal/logging"
	"github.com/keante032/SB-Capstone1/internal/scheduler"
	"github.com/keante032/SB-Capstone1/internal/store"
	"github.com/keante032/SB-Capstone1/internal/store/postgres"
	"github.com/keante032/SB-Capstone1/internal/weather"
	"github.com/keante032/SB-Capstone1/internal/weather/providers"
)

// repository is everything the app persists.
type repository interface {
	auth.UserStore
	weather.LocationStore
	favorites.Store
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("weather-app failed")
	}
}

// run returns instead of exiting so deferred closes always happen.
func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Users, locations and favorites.
	var repo repository
	if cfg.DatabaseURL != "" {
		pg, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer pg.Close()
		repo = pg
		log.Info().Msg("using postgres store")
	} else {
		repo = store.NewMemoryStore()
		log.Info().Msg("using in-memory store")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var provider weather.Provider
	switch cfg.Provider {
	case config.ProviderWeatherAPI:
		provider = providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)
	case config.ProviderOpenWeather:
		provider = providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	case config.ProviderOpenMeteo:
		provider = providers.NewOpenMeteoProvider(httpClient)
	default:
		provider = providers.NewVisualCrossingProvider(httpClient, cfg.VisualCrossingAPIKey)
	}

	var geocoder weather.Geocoder
	if cfg.GoogleGeocodingKey != "" {
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleGeocodingKey)
	}

	var forecastCache weather.ForecastCache
	if cfg.CacheEnabled() {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		forecastCache = cache.NewRedisForecastCache(rdb)
	}

	presenter := weather.NewPresenter(repo, provider, forecastCache, cfg.ForecastCacheTTL, cfg.ForecastDays)
	ledger := favorites.NewLedger(repo)

	// Keeps favorited forecasts warm; pointless without a shared cache.
	if forecastCache != nil {
		sched := scheduler.New(ledger, presenter, cfg.RefreshInterval)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer sched.Stop()
	}

	app := httpapi.NewApp(httpapi.Deps{
		Resolver:    weather.NewResolver(provider, geocoder, repo),
		Presenter:   presenter,
		Locations:   repo,
		Favorites:   ledger,
		Credentials: auth.NewCredentialStore(repo, cfg.BcryptCost),
		Sessions:    httpapi.NewSessionStore(cfg.SessionTTL, cfg.SessionCookieSecure),
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("provider", provider.Name()).Msg("listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			listenErr <- err
			stop()
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber server stopped: %w", err)
	default:
		return nil
	}
}
