package postgres

import (
	"context"

	"github.com/keante032/SB-Capstone1/internal/weather"
)

func (s *Store) CreateLocation(ctx context.Context, address string, c weather.Coordinates) (weather.Location, error) {
	query :=
		`INSERT INTO locations (address, latitude, longitude)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	loc := weather.Location{Address: address, Lat: c.Lat, Long: c.Long}
	if err := s.db.QueryRowContext(ctx, query, address, c.Lat, c.Long).Scan(&loc.ID); err != nil {
		return weather.Location{}, translate(err)
	}
	return loc, nil
}

func (s *Store) LocationByCoordinates(ctx context.Context, c weather.Coordinates) (weather.Location, error) {
	query :=
		`SELECT id, address, latitude, longitude FROM locations
		 WHERE latitude = $1 AND longitude = $2`

	return scanLocation(s.db.QueryRowContext(ctx, query, c.Lat, c.Long))
}

func (s *Store) Location(ctx context.Context, id int64) (weather.Location, error) {
	query :=
		`SELECT id, address, latitude, longitude FROM locations
		 WHERE id = $1`

	return scanLocation(s.db.QueryRowContext(ctx, query, id))
}

func scanLocation(row rowScanner) (weather.Location, error) {
	var loc weather.Location
	if err := row.Scan(&loc.ID, &loc.Address, &loc.Lat, &loc.Long); err != nil {
		return weather.Location{}, translate(err)
	}
	return loc, nil
}
