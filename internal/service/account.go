package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

// Caller-facing messages. Login failure and the forgot-password outcome are
// deliberately uniform across branches so responses never reveal whether an
// email is registered.
const (
	msgInvalidCredentials = "invalid email or password"
	msgEmailNotConfirmed  = "email not confirmed"
	msgTemporarilyLocked  = "temporarily locked"
	msgConfirmationSent   = "registration accepted, check your inbox for a confirmation link"
	msgResetRequested     = "if the email exists, a reset link has been sent"
)

// Account implements the registration, login and recovery flows on top of the
// credential verifier, the session manager and the mail collaborator.
type Account struct {
	users           model.UserStore
	verifier        model.CredentialVerifier
	sessions        model.SessionManager
	tokens          model.TokenManager
	mailer          model.Mailer
	tx              model.TxManager
	frontendBaseURL string
	logger          *logger.Logger
}

func NewAccount(
	users model.UserStore,
	verifier model.CredentialVerifier,
	sessions model.SessionManager,
	tokens model.TokenManager,
	mailer model.Mailer,
	tx model.TxManager,
	frontendBaseURL string,
	logger *logger.Logger,
) *Account {
	return &Account{
		users:           users,
		verifier:        verifier,
		sessions:        sessions,
		tokens:          tokens,
		mailer:          mailer,
		tx:              tx,
		frontendBaseURL: frontendBaseURL,
		logger:          logger,
	}
}

// Register creates an unconfirmed user and mails a confirmation link. It does
// not log the user in.
func (a *Account) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		return "", model.Conflict("email already registered")
	}
	if !errors.Is(err, model.ErrNotFound) {
		return "", fmt.Errorf("lookup user by email: %w", err)
	}

	user, err := a.verifier.CreateUser(ctx, email, password, firstName, lastName)
	if err != nil {
		if _, ok := model.KindOf(err); ok {
			return "", err
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := a.verifier.GenerateConfirmationToken(user)
	if err != nil {
		return "", fmt.Errorf("generate confirmation token: %w", err)
	}

	link := a.buildLink("/confirm-email", url.Values{
		"userId": {user.ID.String()},
		"token":  {encodeToken(token)},
	})
	body := fmt.Sprintf("Welcome! Confirm your email address by following this link:\n\n%s\n", link)
	if err := a.mailer.Send(ctx, user.Email, "Confirm your email", body); err != nil {
		return "", fmt.Errorf("send confirmation email: %w", err)
	}

	a.logger.Info("Account service: user registered", "user_id", user.ID)
	return msgConfirmationSent, nil
}

// ConfirmEmail validates the mailed token and marks the account confirmed.
func (a *Account) ConfirmEmail(ctx context.Context, userID uuid.UUID, encodedToken string) error {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NotFoundError("user not found")
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	token, err := decodeToken(encodedToken)
	if err != nil {
		return model.Validation("token rejected", "malformed token")
	}

	return a.verifier.ConfirmEmail(ctx, user, token)
}

// Login checks the credentials and opens a session. An unknown email and a
// wrong password produce the identical Unauthorized message; a lockout
// overrides even a correct password.
func (a *Account) Login(ctx context.Context, email, password string) (model.TokenPair, []string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, nil, model.Unauthorized(msgInvalidCredentials)
		}
		return model.TokenPair{}, nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if !user.EmailConfirmed {
		return model.TokenPair{}, nil, model.Unauthorized(msgEmailNotConfirmed)
	}

	if a.verifier.IsLockedOut(user) {
		return model.TokenPair{}, nil, model.Unauthorized(msgTemporarilyLocked)
	}

	if !a.verifier.VerifyPassword(user, password) {
		if err := a.verifier.RecordFailedAttempt(ctx, user); err != nil {
			return model.TokenPair{}, nil, fmt.Errorf("record failed attempt: %w", err)
		}
		return model.TokenPair{}, nil, model.Unauthorized(msgInvalidCredentials)
	}

	if err := a.verifier.ResetAttempts(ctx, user); err != nil {
		return model.TokenPair{}, nil, fmt.Errorf("reset failed attempts: %w", err)
	}

	access, err := a.tokens.CreateAccessToken(user.ID, user.Email, user.Roles)
	if err != nil {
		return model.TokenPair{}, nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := a.sessions.Issue(ctx, user.ID)
	if err != nil {
		return model.TokenPair{}, nil, fmt.Errorf("open session: %w", err)
	}

	a.logger.Info("Account service: user logged in", "user_id", user.ID)
	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, user.Roles, nil
}

// ForgotPassword mails a reset link to confirmed accounts. Every terminal
// branch returns the same message; only the confirmed-account branch has a
// side effect. A mail transport failure is swallowed here because surfacing
// it would reveal that the address exists.
func (a *Account) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return msgResetRequested, nil
		}
		return "", fmt.Errorf("lookup user by email: %w", err)
	}

	if !user.EmailConfirmed {
		return msgResetRequested, nil
	}

	token, err := a.verifier.GenerateResetToken(user)
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	link := a.buildLink("/reset-password", url.Values{
		"email": {user.Email},
		"token": {encodeToken(token)},
	})
	body := fmt.Sprintf("A password reset was requested for your account. Follow this link to choose a new password:\n\n%s\n\nIf you did not request this, ignore this email.\n", link)
	if err := a.mailer.Send(ctx, user.Email, "Reset your password", body); err != nil {
		a.logger.Error("Account service: failed to send reset email",
			"user_id", user.ID,
			"error", err.Error())
	}

	return msgResetRequested, nil
}

// ResetPassword applies a new password given a valid mailed reset token.
func (a *Account) ResetPassword(ctx context.Context, email, encodedToken, newPassword string) error {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NotFoundError("user not found")
		}
		return fmt.Errorf("lookup user by email: %w", err)
	}

	token, err := decodeToken(encodedToken)
	if err != nil {
		return model.Validation("token rejected", "malformed token")
	}

	return a.verifier.ResetPassword(ctx, user, token, newPassword)
}

// ChangePassword replaces the caller's password after re-verifying the
// current one.
func (a *Account) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	userID, err := model.RequireUserID(ctx)
	if err != nil {
		return err
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	if !a.verifier.VerifyPassword(user, currentPassword) {
		return model.Validation("password rejected", "current password is incorrect")
	}

	return a.verifier.ChangePassword(ctx, user, newPassword)
}

// DeleteAccount revokes every session and removes the user row inside one
// transaction, in that order, so an active token can never outlive its user.
func (a *Account) DeleteAccount(ctx context.Context) error {
	userID, err := model.RequireUserID(ctx)
	if err != nil {
		return err
	}

	err = a.tx.InTx(ctx, func(ctx context.Context) error {
		if err := a.sessions.RevokeAll(ctx, userID); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		return a.verifier.DeleteUser(ctx, userID)
	})
	if err != nil {
		return err
	}

	a.logger.Info("Account service: account deleted", "user_id", userID)
	return nil
}

func (a *Account) buildLink(path string, query url.Values) string {
	return fmt.Sprintf("%s%s?%s", a.frontendBaseURL, path, query.Encode())
}

func encodeToken(token string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(token))
}

func decodeToken(encoded string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
