package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/keante032/SB-Capstone1/internal/common"
)

// CredentialStore registers users and verifies their passwords.
type CredentialStore struct {
	users UserStore
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewCredentialStore creates a CredentialStore hashing at the given bcrypt
// cost; zero means bcrypt.DefaultCost.
func NewCredentialStore(users UserStore, cost int) *CredentialStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{users: users, cost: cost}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password.
func (s *CredentialStore) Register(ctx context.Context, email, password string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return User{}, fmt.Errorf("%w: email is required", common.ErrInvalidCredential)
	}
	if password == "" {
		return User{}, fmt.Errorf("%w: password is required", common.ErrInvalidCredential)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return User{}, fmt.Errorf("%w: password is too long", common.ErrInvalidCredential)
		}
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return User{}, common.ErrDuplicateEmail
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate returns the user when email and password match. Unknown
// emails and wrong passwords both yield common.ErrNotAuthenticated.
func (s *CredentialStore) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.users.UserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return User{}, fmt.Errorf("lookup user: %w", err)
		}
		// Unknown emails still pay for one comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return User{}, common.ErrNotAuthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, common.ErrNotAuthenticated
	}
	return user, nil
}

// User loads a user by id.
func (s *CredentialStore) User(ctx context.Context, id int64) (User, error) {
	return s.users.UserByID(ctx, id)
}

func (s *CredentialStore) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
		if err != nil {
			h = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z4HJmmMcwHDsUOE6lFBJ6PqK")
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
