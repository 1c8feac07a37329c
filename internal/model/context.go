package model

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the claim set of an already-validated access token, carried on
// the request context by the authentication middleware.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Roles  []string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type identityCtxKey struct{}

// WithIdentity returns a context carrying the caller's identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext retrieves the caller's identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}

// IsAuthenticated reports whether the request carries a validated identity.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := IdentityFromContext(ctx)
	return ok
}

// CurrentUserID returns the subject of the validated access token, if any.
func CurrentUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return id.UserID, true
}

// RequireUserID is the choke point every owner-scoped operation calls before
// touching a user's rows. It fails Unauthorized when no identity is present.
func RequireUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := CurrentUserID(ctx)
	if !ok {
		return uuid.Nil, Unauthorized("authentication required")
	}
	return userID, nil
}
