package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okonst/portfolio-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (
            id, token, user_id, issued_at, expires_at, revoked_at, replaced_by_token
        ) VALUES ($1,$2,$3,$4,$5,$6,$7)
    `

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := r.db.querier(ctx).ExecContext(ctx, query,
		token.ID, token.Token, token.UserID, token.IssuedAt, token.ExpiresAt,
		token.RevokedAt, token.ReplacedByToken,
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (model.RefreshToken, error) {
	const query = `
        SELECT id, token, user_id, issued_at, expires_at, revoked_at, replaced_by_token
        FROM refresh_tokens WHERE token = $1
    `
	var rt model.RefreshToken
	err := r.db.querier(ctx).QueryRowContext(ctx, query, token).Scan(
		&rt.ID, &rt.Token, &rt.UserID, &rt.IssuedAt, &rt.ExpiresAt,
		&rt.RevokedAt, &rt.ReplacedByToken,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return rt, nil
}

// MarkRotated performs the conditional state transition of a rotation. The
// revoked_at IS NULL guard makes the update a compare-and-swap on the unique
// token value: of two concurrent callers exactly one observes a row count of
// one.
func (r *RefreshTokenRepository) MarkRotated(ctx context.Context, token, replacedBy string) (bool, error) {
	const query = `
        UPDATE refresh_tokens SET revoked_at = NOW(), replaced_by_token = $2
        WHERE token = $1 AND revoked_at IS NULL
    `
	res, err := r.db.querier(ctx).ExecContext(ctx, query, token, replacedBy)
	if err != nil {
		return false, fmt.Errorf("failed to mark refresh token rotated: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE refresh_tokens SET revoked_at = NOW()
        WHERE user_id = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.querier(ctx).ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return nil
}
