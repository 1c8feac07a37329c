package model

import "github.com/google/uuid"

// TokenManager mints and validates tokens. Access tokens are stateless signed
// claim sets; refresh values are opaque and only meaningful as lookup keys
// into the refresh-token store.
type TokenManager interface {
	CreateAccessToken(userID uuid.UUID, email string, roles []string) (string, error)
	ParseAccessToken(token string) (Identity, error)
	NewRefreshTokenValue() (string, error)
}
