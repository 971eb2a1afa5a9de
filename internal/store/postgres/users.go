package postgres

import (
	"context"

	"github.com/keante032/SB-Capstone1/internal/auth"
)

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (auth.User, error) {
	query :=
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, created_at`

	u := auth.User{Email: email, PasswordHash: passwordHash}
	err := s.db.QueryRowContext(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return auth.User{}, translate(err)
	}
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (auth.User, error) {
	query :=
		`SELECT id, email, password_hash, created_at FROM users
		 WHERE email = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) UserByID(ctx context.Context, id int64) (auth.User, error) {
	query :=
		`SELECT id, email, password_hash, created_at FROM users
		 WHERE id = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanUser(row rowScanner) (auth.User, error) {
	var u auth.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return auth.User{}, translate(err)
	}
	return u, nil
}
