package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/okonst/portfolio-server/internal/model"
)

// Claims is the access-token claim set.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// JWT implements model.TokenManager backed by symmetric HMAC-SHA256.
type JWT struct {
	secretKey []byte
	accessTTL time.Duration
}

const refreshValueBytes = 64

// NewJWT creates a token manager. An empty signing secret or non-positive
// access lifetime is a configuration fault surfaced at construction, never
// per call.
func NewJWT(secretKey string, accessTTL time.Duration) (*JWT, error) {
	if secretKey == "" {
		return nil, errors.New("token: signing secret must not be empty")
	}
	if accessTTL <= 0 {
		return nil, fmt.Errorf("token: access token lifetime must be positive, got %s", accessTTL)
	}
	return &JWT{secretKey: []byte(secretKey), accessTTL: accessTTL}, nil
}

// CreateAccessToken mints a short-lived stateless token with subject, email,
// a random jti and the user's roles. Access tokens are never persisted and
// never individually revocable; they only expire.
func (j *JWT) CreateAccessToken(userID uuid.UUID, email string, roles []string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		Email: email,
		Roles: roles,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates the signature and expiry and extracts the
// caller's identity.
func (j *JWT) ParseAccessToken(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return model.Identity{}, errors.New("access token is invalid")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Identity{}, fmt.Errorf("access token subject is not a uuid: %w", err)
	}

	return model.Identity{UserID: userID, Email: claims.Email, Roles: claims.Roles}, nil
}

// NewRefreshTokenValue returns 64 bytes of cryptographically secure
// randomness, base64-encoded. The value carries no claims; its only meaning
// is as a lookup key into the refresh-token store.
func (j *JWT) NewRefreshTokenValue() (string, error) {
	raw := make([]byte, refreshValueBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token value: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
