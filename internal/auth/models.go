// Package auth holds credential handling and the per-request user identity.
package auth

import (
	"context"
	"time"
)

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserStore is the persistence contract for users.
type UserStore interface {
	// CreateUser returns common.ErrConflict when the email is taken.
	CreateUser(ctx context.Context, email, passwordHash string) (User, error)
	// UserByEmail returns common.ErrNotFound when absent.
	UserByEmail(ctx context.Context, email string) (User, error)
	// UserByID returns common.ErrNotFound when absent.
	UserByID(ctx context.Context, id int64) (User, error)
}
