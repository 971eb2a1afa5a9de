// Package postgres implements the repositories on PostgreSQL through
// database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/keante032/SB-Capstone1/internal/auth"
	"github.com/keante032/SB-Capstone1/internal/common"
	"github.com/keante032/SB-Capstone1/internal/favorites"
	"github.com/keante032/SB-Capstone1/internal/store/postgres/migrations"
	"github.com/keante032/SB-Capstone1/internal/weather"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Store is a PostgreSQL-backed user, location and favorites repository.
type Store struct {
	db *sql.DB
}

var (
	_ auth.UserStore        = (*Store)(nil)
	_ weather.LocationStore = (*Store)(nil)
	_ favorites.Store       = (*Store)(nil)
)

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to dsn, checks the connection and applies migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return New(db), nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// translate maps driver errors onto the store error contract.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return common.ErrConflict
		case foreignKeyViolation:
			return common.ErrNotFound
		}
	}
	return fmt.Errorf("db error: %w", err)
}
