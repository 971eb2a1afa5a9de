package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DayLabelLayout is the short date format used for forecast days.
const DayLabelLayout = "Mon, Jan 2"

// Presenter fetches and formats forecasts for stored locations.
type Presenter struct {
	store    LocationStore
	provider Provider
	cache    ForecastCache
	cacheTTL time.Duration
	days     int
}

// NewPresenter creates a Presenter returning days forecast days. A nil cache
// disables caching.
func NewPresenter(store LocationStore, provider Provider, cache ForecastCache, cacheTTL time.Duration, days int) *Presenter {
	if cache == nil {
		cache = NopCache{}
	}
	if days <= 0 {
		days = 7
	}
	return &Presenter{
		store:    store,
		provider: provider,
		cache:    cache,
		cacheTTL: cacheTTL,
		days:     days,
	}
}

// GetForecast returns the forecast view for a stored location. Provider
// failures are returned to the caller, not retried.
func (p *Presenter) GetForecast(ctx context.Context, locationID int64) (ForecastView, error) {
	loc, err := p.store.Location(ctx, locationID)
	if err != nil {
		return ForecastView{}, fmt.Errorf("load location %d: %w", locationID, err)
	}
	return p.ForecastFor(ctx, loc)
}

// ForecastFor returns the forecast view for an already loaded location.
func (p *Presenter) ForecastFor(ctx context.Context, loc Location) (ForecastView, error) {
	readings, err := p.readings(ctx, loc)
	if err != nil {
		return ForecastView{}, err
	}

	return ForecastView{
		Location: loc,
		Label:    loc.DisplayLabel(),
		Provider: p.provider.Name(),
		Days:     FormatDays(readings),
	}, nil
}

// Refresh fetches the forecast upstream and overwrites the cache entry.
func (p *Presenter) Refresh(ctx context.Context, loc Location) error {
	readings, err := p.provider.FetchForecast(ctx, loc.Coordinates(), p.days)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, p.cacheKey(loc), readings, p.cacheTTL)
}

func (p *Presenter) readings(ctx context.Context, loc Location) ([]DailyReading, error) {
	key := p.cacheKey(loc)

	cached, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("forecast cache read failed")
	}
	if ok {
		return cached, nil
	}

	readings, err := p.provider.FetchForecast(ctx, loc.Coordinates(), p.days)
	if err != nil {
		log.Warn().Err(err).Str("provider", p.provider.Name()).Int64("location_id", loc.ID).Msg("forecast fetch failed")
		return nil, err
	}

	if err := p.cache.Set(ctx, key, readings, p.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("forecast cache write failed")
	}
	return readings, nil
}

func (p *Presenter) cacheKey(loc Location) string {
	return fmt.Sprintf("forecast:%s:%s:%d", p.provider.Name(), loc.Coordinates(), p.days)
}

// FormatDays converts readings into display days, keeping their order.
func FormatDays(readings []DailyReading) []ForecastDay {
	days := make([]ForecastDay, 0, len(readings))
	for _, r := range readings {
		d := r.Date.UTC()
		cond := r.Condition
		if cond == "" {
			cond = ConditionUnknown
		}
		days = append(days, ForecastDay{
			Date:            d.Format("2006-01-02"),
			Label:           d.Format(DayLabelLayout),
			TempMaxC:        r.TempMaxC,
			TempMinC:        r.TempMinC,
			PrecipChancePct: r.PrecipChancePct,
			Summary:         r.Summary,
			Condition:       cond,
		})
	}
	return days
}
