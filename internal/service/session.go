package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

// Session issues, rotates and revokes refresh-token sessions. Rotation is
// single-use: the conditional store update decides a winner under concurrency,
// and a token presented after it was already rotated revokes the user's whole
// session chain.
type Session struct {
	tokens     model.TokenManager
	store      model.RefreshTokenStore
	users      model.UserStore
	tx         model.TxManager
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

var _ model.SessionManager = (*Session)(nil)

func NewSession(
	tokens model.TokenManager,
	store model.RefreshTokenStore,
	users model.UserStore,
	tx model.TxManager,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *Session {
	return &Session{
		tokens:     tokens,
		store:      store,
		users:      users,
		tx:         tx,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue mints a fresh opaque refresh value and persists its session row.
func (s *Session) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	value, err := s.tokens.NewRefreshTokenValue()
	if err != nil {
		return "", fmt.Errorf("issue refresh value: %w", err)
	}

	now := s.now()
	if err := s.store.Create(ctx, model.RefreshToken{
		ID:        uuid.New(),
		Token:     value,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}); err != nil {
		return "", fmt.Errorf("persist refresh token: %w", err)
	}

	return value, nil
}

// Rotate exchanges a presented refresh value for a new token pair. An unknown
// value fails Unauthorized. A revoked value is treated as reuse and revokes
// every active session of the owning user. An expired value fails without
// touching the chain.
func (s *Session) Rotate(ctx context.Context, presentedToken string) (model.TokenPair, error) {
	row, err := s.store.GetByToken(ctx, presentedToken)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.Unauthorized("invalid refresh token")
		}
		return model.TokenPair{}, fmt.Errorf("lookup refresh token: %w", err)
	}

	if row.RevokedAt != nil {
		return model.TokenPair{}, s.revokeChain(ctx, row.UserID)
	}

	if row.Expired(s.now()) {
		return model.TokenPair{}, model.Unauthorized("refresh token expired")
	}

	user, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.Unauthorized("invalid refresh token")
		}
		return model.TokenPair{}, fmt.Errorf("lookup session user: %w", err)
	}

	newValue, err := s.tokens.NewRefreshTokenValue()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh value: %w", err)
	}

	// The conditional update and the replacement row commit together. A lost
	// race leaves the transaction empty, so committing it is harmless.
	var lostRace bool
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		won, err := s.store.MarkRotated(ctx, presentedToken, newValue)
		if err != nil {
			return fmt.Errorf("rotate refresh token: %w", err)
		}
		if !won {
			lostRace = true
			return nil
		}

		now := s.now()
		return s.store.Create(ctx, model.RefreshToken{
			ID:        uuid.New(),
			Token:     newValue,
			UserID:    row.UserID,
			IssuedAt:  now,
			ExpiresAt: now.Add(s.refreshTTL),
		})
	})
	if err != nil {
		return model.TokenPair{}, err
	}
	if lostRace {
		return model.TokenPair{}, s.revokeChain(ctx, row.UserID)
	}

	access, err := s.tokens.CreateAccessToken(user.ID, user.Email, user.Roles)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: newValue}, nil
}

// RevokeAll marks every active session of the user revoked. Joins any
// transaction carried by ctx.
func (s *Session) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

func (s *Session) revokeChain(ctx context.Context, userID uuid.UUID) error {
	s.logger.Warn("Session service: refresh token reuse detected, revoking all sessions",
		"user_id", userID)
	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke session chain: %w", err)
	}
	return model.Unauthorized("invalid refresh token")
}
