package postgres

import (
	"context"

	"github.com/keante032/SB-Capstone1/internal/weather"
)

// AddFavorite inserts the pair unless it already exists. A missing user or
// location surfaces as a foreign-key violation.
func (s *Store) AddFavorite(ctx context.Context, userID, locationID int64) (bool, error) {
	query :=
		`INSERT INTO favorites (user_id, location_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, location_id) DO NOTHING`

	res, err := s.db.ExecContext(ctx, query, userID, locationID)
	if err != nil {
		return false, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (s *Store) ListFavorites(ctx context.Context, userID int64) ([]weather.Location, error) {
	query :=
		`SELECT l.id, l.address, l.latitude, l.longitude
		 FROM favorites f
		 JOIN locations l ON l.id = f.location_id
		 WHERE f.user_id = $1
		 ORDER BY f.id`

	return s.queryLocations(ctx, query, userID)
}

func (s *Store) IsFavorite(ctx context.Context, userID, locationID int64) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM favorites WHERE user_id = $1 AND location_id = $2
		 )`

	var ok bool
	if err := s.db.QueryRowContext(ctx, query, userID, locationID).Scan(&ok); err != nil {
		return false, translate(err)
	}
	return ok, nil
}

func (s *Store) FavoritedLocations(ctx context.Context) ([]weather.Location, error) {
	query :=
		`SELECT l.id, l.address, l.latitude, l.longitude
		 FROM locations l
		 WHERE EXISTS (SELECT 1 FROM favorites f WHERE f.location_id = l.id)
		 ORDER BY l.id`

	return s.queryLocations(ctx, query)
}

func (s *Store) queryLocations(ctx context.Context, query string, args ...any) ([]weather.Location, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []weather.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return out, nil
}
