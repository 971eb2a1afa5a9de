package auth

import "context"

// Identity is who is making the current request. The zero value is an
// anonymous caller.
type Identity struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
}

// Authenticated reports whether the identity belongs to a logged in user.
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

// IdentityOf builds the identity for a user.
func IdentityOf(u User) Identity {
	return Identity{UserID: u.ID, Email: u.Email}
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the identity from ctx; anonymous if none was set.
func IdentityFrom(ctx context.Context) Identity {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return Identity{}
	}
	return id
}
