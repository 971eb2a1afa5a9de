package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/keante032/SB-Capstone1/internal/common"
)

// Resolver turns search queries into stored, deduplicated locations.
type Resolver struct {
	provider Provider
	geocoder Geocoder
	store    LocationStore
}

// NewResolver creates a Resolver. geocoder may be nil.
func NewResolver(provider Provider, geocoder Geocoder, store LocationStore) *Resolver {
	return &Resolver{
		provider: provider,
		geocoder: geocoder,
		store:    store,
	}
}

// Resolve looks the query up upstream and returns the stored location for
// the canonical coordinates, creating it on first sight. Nothing is written
// when the upstream lookup fails.
func (r *Resolver) Resolve(ctx context.Context, q Query) (Location, error) {
	if err := q.Validate(); err != nil {
		return Location{}, err
	}

	var address string
	if !q.IsCoords() && r.geocoder != nil {
		geo, err := r.geocoder.Geocode(ctx, q.Text)
		if err != nil {
			return Location{}, err
		}
		address = geo.Address
		q = Query{Coords: &Coordinates{Lat: geo.Lat, Long: geo.Long}}
	}

	res, err := r.provider.Resolve(ctx, q)
	if err != nil {
		log.Warn().Err(err).Str("provider", r.provider.Name()).Str("query", q.String()).Msg("resolve failed")
		return Location{}, err
	}
	if !res.Coordinates.Valid() {
		return Location{}, fmt.Errorf("%w: %s returned coordinates %s", common.ErrProviderUnavailable, r.provider.Name(), res.Coordinates)
	}
	if address == "" {
		address = strings.TrimSpace(res.Address)
	}

	return r.findOrCreate(ctx, address, res.Coordinates)
}

// findOrCreate reads first so a repeat resolution does no write, and relies
// on the store's uniqueness constraint when two first resolutions race.
func (r *Resolver) findOrCreate(ctx context.Context, address string, c Coordinates) (Location, error) {
	loc, err := r.store.LocationByCoordinates(ctx, c)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return Location{}, fmt.Errorf("lookup location: %w", err)
	}

	loc, err = r.store.CreateLocation(ctx, address, c)
	if err == nil {
		log.Info().Int64("location_id", loc.ID).Str("coords", c.String()).Msg("location created")
		return loc, nil
	}
	if !errors.Is(err, common.ErrConflict) {
		return Location{}, fmt.Errorf("create location: %w", err)
	}

	loc, err = r.store.LocationByCoordinates(ctx, c)
	if err != nil {
		return Location{}, fmt.Errorf("re-read location after conflict: %w", err)
	}
	return loc, nil
}
