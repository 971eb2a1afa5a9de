package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/keante032/SB-Capstone1/internal/auth"
	"github.com/keante032/SB-Capstone1/internal/common"
)

const (
	sessionCookie  = "weather_session"
	sessionUserKey = "user_id"
)

// UserLoader loads the user a session points at.
type UserLoader interface {
	User(ctx context.Context, id int64) (auth.User, error)
}

// NewSessionStore returns a cookie-keyed session store backed by fiber's
// in-process storage.
func NewSessionStore(ttl time.Duration, secure bool) *session.Store {
	return session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + sessionCookie,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   uuid.NewString,
	})
}

// identityMiddleware attaches the session's identity to the user context.
// A session pointing at a missing user is destroyed.
func identityMiddleware(store *session.Store, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		var who auth.Identity
		if uid, ok := sess.Get(sessionUserKey).(int64); ok && uid != 0 {
			u, err := users.User(c.UserContext(), uid)
			switch {
			case err == nil:
				who = auth.IdentityOf(u)
			case errors.Is(err, common.ErrNotFound):
				if err := sess.Destroy(); err != nil {
					return err
				}
			default:
				return err
			}
		}

		c.SetUserContext(auth.WithIdentity(c.UserContext(), who))
		return c.Next()
	}
}

// identity returns the identity attached by identityMiddleware.
func identity(c *fiber.Ctx) auth.Identity {
	return auth.IdentityFrom(c.UserContext())
}

// logIn starts a fresh session for u.
func logIn(c *fiber.Ctx, store *session.Store, u auth.User) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserKey, u.ID)
	return sess.Save()
}

func logOut(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
