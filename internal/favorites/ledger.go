// Package favorites relates users to the locations they bookmark.
package favorites

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/keante032/SB-Capstone1/internal/auth"
	"github.com/keante032/SB-Capstone1/internal/common"
	"github.com/keante032/SB-Capstone1/internal/weather"
)

// Store is the persistence contract for favorites. A (user, location)
// pair is stored at most once.
type Store interface {
	// AddFavorite reports whether a new row was created. It returns
	// common.ErrNotFound when the user or location does not exist.
	AddFavorite(ctx context.Context, userID, locationID int64) (bool, error)
	ListFavorites(ctx context.Context, userID int64) ([]weather.Location, error)
	IsFavorite(ctx context.Context, userID, locationID int64) (bool, error)
	// FavoritedLocations lists every location favorited by anyone, once.
	FavoritedLocations(ctx context.Context) ([]weather.Location, error)
}

// Ledger manages favorites on behalf of the current identity.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Add favorites a location for who. Repeating it is a no-op that reports
// created=false.
func (l *Ledger) Add(ctx context.Context, who auth.Identity, locationID int64) (bool, error) {
	if !who.Authenticated() {
		return false, common.ErrUnauthorized
	}

	created, err := l.store.AddFavorite(ctx, who.UserID, locationID)
	if err != nil {
		return false, fmt.Errorf("add favorite %d for user %d: %w", locationID, who.UserID, err)
	}
	if created {
		log.Info().Int64("user_id", who.UserID).Int64("location_id", locationID).Msg("favorite added")
	}
	return created, nil
}

// List returns who's favorites in the order they were added.
func (l *Ledger) List(ctx context.Context, who auth.Identity) ([]weather.Location, error) {
	if !who.Authenticated() {
		return nil, common.ErrUnauthorized
	}
	return l.store.ListFavorites(ctx, who.UserID)
}

// IsFavorite is false for anonymous callers.
func (l *Ledger) IsFavorite(ctx context.Context, who auth.Identity, locationID int64) (bool, error) {
	if !who.Authenticated() {
		return false, nil
	}
	return l.store.IsFavorite(ctx, who.UserID, locationID)
}

// Locations lists all favorited locations across users.
func (l *Ledger) Locations(ctx context.Context) ([]weather.Location, error) {
	return l.store.FavoritedLocations(ctx)
}
