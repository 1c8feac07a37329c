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

func userRows(u model.User, roles string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "password_hash", "roles",
		"email_confirmed", "failed_attempts", "locked_until", "created_at", "updated_at",
	}).AddRow(
		u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash, []byte(roles),
		u.EmailConfirmed, u.FailedAttempts, u.LockedUntil, time.Now(), time.Now(),
	)
}

func TestUserRepository_Create(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewUserRepository(conn)

	u := model.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PasswordHash: "$2a$12$hash",
		Roles:        []string{model.RoleUser},
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash,
			[]byte(`["user"]`), false, 0, nil).
		WillReturnRows(userRows(u, `["user"]`))

	created, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, u.Email, created.Email)
	assert.Equal(t, []string{model.RoleUser}, created.Roles)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewUserRepository(conn)

	u := model.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: "h", Roles: []string{model.RoleUser}}

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs(u.Email).
		WillReturnRows(userRows(u, `["user"]`))

	got, err := repo.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewUserRepository(conn)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "first_name", "last_name", "password_hash", "roles",
			"email_confirmed", "failed_attempts", "locked_until", "created_at", "updated_at",
		}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_Update_LockoutFields(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewUserRepository(conn)

	lockedUntil := time.Now().Add(15 * time.Minute)
	u := model.User{
		ID:             uuid.New(),
		Email:          "ada@example.com",
		PasswordHash:   "h",
		Roles:          []string{model.RoleUser},
		FailedAttempts: 5,
		LockedUntil:    &lockedUntil,
	}

	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs(u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash,
			[]byte(`["user"]`), u.EmailConfirmed, u.FailedAttempts, u.LockedUntil).
		WillReturnRows(userRows(u, `["user"]`))

	updated, err := repo.Update(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.FailedAttempts)
	require.NotNil(t, updated.LockedUntil)
}

func TestUserRepository_Delete(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewUserRepository(conn)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), id))
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewUserRepository(conn)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)
	require.ErrorIs(t, err, model.ErrNotFound)
}
