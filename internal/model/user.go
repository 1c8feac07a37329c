package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role names assigned to users. New registrations always get RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored account with its credential state. The hash,
// attempt counter and lock timestamp are owned by the credential verifier;
// the rest of the application treats them as opaque.
type User struct {
	ID             uuid.UUID
	Email          string
	FirstName      string
	LastName       string
	PasswordHash   string
	Roles          []string
	EmailConfirmed bool
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CredentialVerifier is the capability surface of the identity backend.
// AccountLifecycle consumes it; any hashing/lockout implementation can be
// substituted without touching the account service.
type CredentialVerifier interface {
	// CreateUser stores a new unconfirmed user with the given plain password
	// hashed. Password policy violations surface as Validation errors.
	CreateUser(ctx context.Context, email, password, firstName, lastName string) (User, error)

	// VerifyPassword compares the plain password against the stored hash.
	// It performs no attempt tracking.
	VerifyPassword(user User, password string) bool

	// RecordFailedAttempt increments the failed-attempt counter and, past the
	// threshold, sets the lockout window.
	RecordFailedAttempt(ctx context.Context, user User) error

	// ResetAttempts clears the failed-attempt counter after a successful login.
	ResetAttempts(ctx context.Context, user User) error

	// IsLockedOut reports whether the account is inside its lockout window.
	IsLockedOut(user User) bool

	// GenerateConfirmationToken mints a single-purpose email confirmation token.
	GenerateConfirmationToken(user User) (string, error)

	// ConfirmEmail verifies the token and marks the email confirmed.
	ConfirmEmail(ctx context.Context, user User, token string) error

	// GenerateResetToken mints a single-purpose password reset token. The
	// token is invalidated by any subsequent password change.
	GenerateResetToken(user User) (string, error)

	// ResetPassword verifies the reset token and applies the new password.
	ResetPassword(ctx context.Context, user User, token, newPassword string) error

	// ChangePassword applies a new password after the caller proved knowledge
	// of the current one.
	ChangePassword(ctx context.Context, user User, newPassword string) error

	// DeleteUser removes the user record. Participates in the surrounding
	// transaction when one is carried by ctx.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
