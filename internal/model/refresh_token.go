package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore defines persistence operations for refresh-token rows.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByToken(ctx context.Context, token string) (RefreshToken, error)

	// MarkRotated sets revoked_at and replaced_by_token on the row identified
	// by token, but only while the row is still active. It reports whether
	// the conditional update won; a false result means a concurrent caller
	// already consumed the token.
	MarkRotated(ctx context.Context, token, replacedBy string) (bool, error)

	// RevokeAllByUser marks every still-active row owned by the user revoked.
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is a persisted session row. A row with a non-nil RevokedAt is
// terminal: it never again authorizes a rotation. ReplacedByToken links the
// rotation chain.
type RefreshToken struct {
	ID              uuid.UUID
	Token           string
	UserID          uuid.UUID
	IssuedAt        time.Time
	ExpiresAt       time.Time
	RevokedAt       *time.Time
	ReplacedByToken *string
}

// Active reports whether the row may still authorize a rotation at the given
// instant. Expiry is computed at read time, not stored.
func (t RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// Expired reports whether the row outlived its lifetime.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenPair is what a successful login or rotation hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionManager issues, rotates and revokes refresh-token sessions.
type SessionManager interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Rotate(ctx context.Context, presentedToken string) (TokenPair, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}
