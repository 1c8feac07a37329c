package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okonst/portfolio-server/internal/model"
)

func newMockConn(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewConnectionFromDB(db), mock
}

func TestRefreshTokenRepository_Create(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewRefreshTokenRepository(conn)

	rt := model.RefreshToken{
		ID:        uuid.New(),
		Token:     "opaque-value",
		UserID:    uuid.New(),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(720 * time.Hour),
	}

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(rt.ID, rt.Token, rt.UserID, rt.IssuedAt, rt.ExpiresAt, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), rt)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_GetByToken(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewRefreshTokenRepository(conn)

	id := uuid.New()
	userID := uuid.New()
	issued := time.Now().Add(-time.Hour)
	expires := time.Now().Add(time.Hour)

	mock.ExpectQuery(`SELECT .+ FROM refresh_tokens WHERE token = \$1`).
		WithArgs("opaque-value").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "token", "user_id", "issued_at", "expires_at", "revoked_at", "replaced_by_token",
		}).AddRow(id, "opaque-value", userID, issued, expires, nil, nil))

	rt, err := repo.GetByToken(context.Background(), "opaque-value")
	require.NoError(t, err)
	assert.Equal(t, id, rt.ID)
	assert.Equal(t, userID, rt.UserID)
	assert.Nil(t, rt.RevokedAt)
	assert.True(t, rt.Active(time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_GetByToken_NotFound(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewRefreshTokenRepository(conn)

	mock.ExpectQuery(`SELECT .+ FROM refresh_tokens WHERE token = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "token", "user_id", "issued_at", "expires_at", "revoked_at", "replaced_by_token",
		}))

	_, err := repo.GetByToken(context.Background(), "missing")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestRefreshTokenRepository_MarkRotated(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "wins the conditional update", affected: 1, want: true},
		{name: "loses to a concurrent rotation", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			repo := NewRefreshTokenRepository(conn)

			mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at = NOW\(\), replaced_by_token = \$2\s+WHERE token = \$1 AND revoked_at IS NULL`).
				WithArgs("old-token", "new-token").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			won, err := repo.MarkRotated(context.Background(), "old-token", "new-token")
			require.NoError(t, err)
			assert.Equal(t, tt.want, won)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRefreshTokenRepository_RevokeAllByUser(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewRefreshTokenRepository(conn)
	userID := uuid.New()

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at = NOW\(\)\s+WHERE user_id = \$1 AND revoked_at IS NULL`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.RevokeAllByUser(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
