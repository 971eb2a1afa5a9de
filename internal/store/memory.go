// Package store holds the in-memory implementation of the repositories.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/keante032/SB-Capstone1/internal/auth"
	"github.com/keante032/SB-Capstone1/internal/common"
	"github.com/keante032/SB-Capstone1/internal/favorites"
	"github.com/keante032/SB-Capstone1/internal/weather"
)

type favoriteKey struct {
	userID     int64
	locationID int64
}

// MemoryStore is a concurrency-safe in-memory store for users, locations
// and favorites. It enforces the same uniqueness rules as the SQL schema.
type MemoryStore struct {
	mu sync.RWMutex

	users       map[int64]auth.User
	userByEmail map[string]int64

	locations map[int64]weather.Location
	locByPair map[weather.Coordinates]int64

	favorites   map[favoriteKey]struct{}
	favoriteSeq []favoriteKey // insertion order

	nextUserID     int64
	nextLocationID int64
}

// Ensure interfaces are met.
var (
	_ auth.UserStore        = (*MemoryStore)(nil)
	_ weather.LocationStore = (*MemoryStore)(nil)
	_ favorites.Store       = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]auth.User),
		userByEmail: make(map[string]int64),
		locations:   make(map[int64]weather.Location),
		locByPair:   make(map[weather.Coordinates]int64),
		favorites:   make(map[favoriteKey]struct{}),
	}
}

// --- users ---

func (s *MemoryStore) CreateUser(_ context.Context, email, passwordHash string) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userByEmail[email]; exists {
		return auth.User{}, common.ErrConflict
	}

	s.nextUserID++
	u := auth.User{
		ID:           s.nextUserID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.userByEmail[email] = u.ID
	return u, nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userByEmail[email]
	if !ok {
		return auth.User{}, common.ErrNotFound
	}
	return s.users[id], nil
}

func (s *MemoryStore) UserByID(_ context.Context, id int64) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return auth.User{}, common.ErrNotFound
	}
	return u, nil
}

// --- locations ---

func (s *MemoryStore) CreateLocation(_ context.Context, address string, c weather.Coordinates) (weather.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.locByPair[c]; exists {
		return weather.Location{}, common.ErrConflict
	}

	s.nextLocationID++
	loc := weather.Location{
		ID:      s.nextLocationID,
		Address: address,
		Lat:     c.Lat,
		Long:    c.Long,
	}
	s.locations[loc.ID] = loc
	s.locByPair[c] = loc.ID
	return loc, nil
}

func (s *MemoryStore) LocationByCoordinates(_ context.Context, c weather.Coordinates) (weather.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.locByPair[c]
	if !ok {
		return weather.Location{}, common.ErrNotFound
	}
	return s.locations[id], nil
}

func (s *MemoryStore) Location(_ context.Context, id int64) (weather.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[id]
	if !ok {
		return weather.Location{}, common.ErrNotFound
	}
	return loc, nil
}

// LocationCount returns the number of stored locations.
func (s *MemoryStore) LocationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.locations)
}

// UserCount returns the number of stored users.
func (s *MemoryStore) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// --- favorites ---

func (s *MemoryStore) AddFavorite(_ context.Context, userID, locationID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false, common.ErrNotFound
	}
	if _, ok := s.locations[locationID]; !ok {
		return false, common.ErrNotFound
	}

	key := favoriteKey{userID: userID, locationID: locationID}
	if _, exists := s.favorites[key]; exists {
		return false, nil
	}
	s.favorites[key] = struct{}{}
	s.favoriteSeq = append(s.favoriteSeq, key)
	return true, nil
}

func (s *MemoryStore) ListFavorites(_ context.Context, userID int64) ([]weather.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []weather.Location{}
	for _, key := range s.favoriteSeq {
		if key.userID == userID {
			out = append(out, s.locations[key.locationID])
		}
	}
	return out, nil
}

func (s *MemoryStore) IsFavorite(_ context.Context, userID, locationID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.favorites[favoriteKey{userID: userID, locationID: locationID}]
	return ok, nil
}

func (s *MemoryStore) FavoritedLocations(_ context.Context) ([]weather.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int64]struct{})
	out := []weather.Location{}
	for _, key := range s.favoriteSeq {
		if _, dup := seen[key.locationID]; dup {
			continue
		}
		seen[key.locationID] = struct{}{}
		out = append(out, s.locations[key.locationID])
	}
	return out, nil
}
