// Package identity is the default credential backend: bcrypt password
// hashing, a failed-attempt counter with a lockout window, and HMAC-signed
// single-purpose tokens for email confirmation and password reset. The
// account service consumes it only through model.CredentialVerifier.
package identity

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/okonst/portfolio-server/internal/model"
)

const (
	purposeConfirm = "confirm"
	purposeReset   = "reset"

	minPasswordLength = 8
)

var _ model.CredentialVerifier = (*BcryptVerifier)(nil)

// BcryptVerifier implements model.CredentialVerifier on top of the user
// store. Store calls join any transaction carried by ctx.
type BcryptVerifier struct {
	users         model.UserStore
	tokenSecret   []byte
	cost          int
	maxAttempts   int
	lockoutWindow time.Duration
	tokenTTL      time.Duration
	now           func() time.Time
}

// NewBcryptVerifier constructs the backend. tokenSecret signs confirmation
// and reset tokens; it must not be empty.
func NewBcryptVerifier(users model.UserStore, tokenSecret string) (*BcryptVerifier, error) {
	if tokenSecret == "" {
		return nil, fmt.Errorf("identity: token secret must not be empty")
	}
	return &BcryptVerifier{
		users:         users,
		tokenSecret:   []byte(tokenSecret),
		cost:          bcrypt.DefaultCost,
		maxAttempts:   5,
		lockoutWindow: 15 * time.Minute,
		tokenTTL:      24 * time.Hour,
		now:           time.Now,
	}, nil
}

func (v *BcryptVerifier) CreateUser(ctx context.Context, email, password, firstName, lastName string) (model.User, error) {
	if err := checkPasswordPolicy(password); err != nil {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return v.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
		Roles:        []string{model.RoleUser},
	})
}

func (v *BcryptVerifier) VerifyPassword(user model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (v *BcryptVerifier) RecordFailedAttempt(ctx context.Context, user model.User) error {
	user.FailedAttempts++
	if user.FailedAttempts >= v.maxAttempts {
		until := v.now().Add(v.lockoutWindow)
		user.LockedUntil = &until
	}
	_, err := v.users.Update(ctx, user)
	return err
}

func (v *BcryptVerifier) ResetAttempts(ctx context.Context, user model.User) error {
	if user.FailedAttempts == 0 && user.LockedUntil == nil {
		return nil
	}
	user.FailedAttempts = 0
	user.LockedUntil = nil
	_, err := v.users.Update(ctx, user)
	return err
}

func (v *BcryptVerifier) IsLockedOut(user model.User) bool {
	return user.LockedUntil != nil && v.now().Before(*user.LockedUntil)
}

func (v *BcryptVerifier) GenerateConfirmationToken(user model.User) (string, error) {
	return v.signToken(purposeConfirm, user.ID, confirmFingerprint(user)), nil
}

func (v *BcryptVerifier) ConfirmEmail(ctx context.Context, user model.User, token string) error {
	if err := v.verifyToken(token, purposeConfirm, user.ID, confirmFingerprint(user)); err != nil {
		return err
	}
	user.EmailConfirmed = true
	if _, err := v.users.Update(ctx, user); err != nil {
		return err
	}
	return nil
}

func (v *BcryptVerifier) GenerateResetToken(user model.User) (string, error) {
	// Binding the MAC to the current hash makes the token single-use: any
	// password change invalidates every outstanding reset token.
	return v.signToken(purposeReset, user.ID, user.PasswordHash), nil
}

func (v *BcryptVerifier) ResetPassword(ctx context.Context, user model.User, token, newPassword string) error {
	if err := v.verifyToken(token, purposeReset, user.ID, user.PasswordHash); err != nil {
		return err
	}
	return v.setPassword(ctx, user, newPassword)
}

func (v *BcryptVerifier) ChangePassword(ctx context.Context, user model.User, newPassword string) error {
	return v.setPassword(ctx, user, newPassword)
}

func (v *BcryptVerifier) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return v.users.Delete(ctx, id)
}

func (v *BcryptVerifier) setPassword(ctx context.Context, user model.User, newPassword string) error {
	if err := checkPasswordPolicy(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), v.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.FailedAttempts = 0
	user.LockedUntil = nil
	_, err = v.users.Update(ctx, user)
	return err
}

func checkPasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return model.Validation("password rejected",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}

// signToken produces base64url(purpose:userID:exp) + "." + base64url(mac).
// The MAC covers the payload and a state fingerprint, so tokens expire with
// the state they were minted against.
func (v *BcryptVerifier) signToken(purpose string, userID uuid.UUID, fingerprint string) string {
	exp := v.now().Add(v.tokenTTL).Unix()
	payload := fmt.Sprintf("%s:%s:%d", purpose, userID, exp)
	mac := v.mac(payload, fingerprint)
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + base64.RawURLEncoding.EncodeToString(mac)
}

func (v *BcryptVerifier) verifyToken(token, purpose string, userID uuid.UUID, fingerprint string) error {
	payloadPart, macPart, ok := strings.Cut(token, ".")
	if !ok {
		return model.Validation("token rejected", "malformed token")
	}
	payload, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return model.Validation("token rejected", "malformed token")
	}
	gotMAC, err := base64.RawURLEncoding.DecodeString(macPart)
	if err != nil {
		return model.Validation("token rejected", "malformed token")
	}

	if !hmac.Equal(gotMAC, v.mac(string(payload), fingerprint)) {
		return model.Validation("token rejected", "invalid token")
	}

	parts := strings.Split(string(payload), ":")
	if len(parts) != 3 || parts[0] != purpose || parts[1] != userID.String() {
		return model.Validation("token rejected", "invalid token")
	}
	exp, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return model.Validation("token rejected", "invalid token")
	}
	if v.now().After(time.Unix(exp, 0)) {
		return model.Validation("token rejected", "token expired")
	}
	return nil
}

func (v *BcryptVerifier) mac(payload, fingerprint string) []byte {
	h := hmac.New(sha256.New, v.tokenSecret)
	h.Write([]byte(payload))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	return h.Sum(nil)
}

func confirmFingerprint(user model.User) string {
	return strconv.FormatBool(user.EmailConfirmed)
}
