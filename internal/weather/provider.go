package weather

import (
	"context"
	"time"
)

// Provider abstracts an upstream weather data source (e.g. Visual Crossing,
// WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	// Resolve turns a query into canonical coordinates and, when the source
	// knows one, a human readable address.
	Resolve(ctx context.Context, q Query) (Resolution, error)
	// FetchForecast returns up to days daily readings, ordered by date.
	FetchForecast(ctx context.Context, c Coordinates, days int) ([]DailyReading, error)
}

// Geocoder turns free text into coordinates. Optional.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (Resolution, error)
}

// LocationStore is the persistence contract for locations.
type LocationStore interface {
	// CreateLocation inserts a new location. It returns common.ErrConflict
	// when the coordinate pair already exists.
	CreateLocation(ctx context.Context, address string, c Coordinates) (Location, error)
	// LocationByCoordinates does an exact match; common.ErrNotFound if absent.
	LocationByCoordinates(ctx context.Context, c Coordinates) (Location, error)
	// Location loads by id; common.ErrNotFound if absent.
	Location(ctx context.Context, id int64) (Location, error)
}

// ForecastCache stores provider readings by key.
type ForecastCache interface {
	Get(ctx context.Context, key string) ([]DailyReading, bool, error)
	Set(ctx context.Context, key string, readings []DailyReading, ttl time.Duration) error
}

// NopCache is a ForecastCache that never hits.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]DailyReading, bool, error) { return nil, false, nil }

func (NopCache) Set(context.Context, string, []DailyReading, time.Duration) error { return nil }
