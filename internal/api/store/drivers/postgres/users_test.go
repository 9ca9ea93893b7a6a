package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "full_name", "password_hash", "active", "superuser", "created_at", "updated_at"}

func TestGetUserByEmail(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("u-1", "alice@example.com", "Alice", "$argon2id$...", true, false, now, now))

		u, err := s.Users().GetUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "u-1", u.ID)
		require.Equal(t, "alice@example.com", u.Email)
		require.True(t, u.Active)
		require.False(t, u.Superuser)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := s.Users().GetUserByEmail(context.Background(), "ghost@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreateUser(t *testing.T) {
	s, mock := newMockStore(t)

	u := domain.User{
		ID:           "u-1",
		Email:        "alice@example.com",
		FullName:     "Alice",
		PasswordHash: "$argon2id$...",
		Active:       true,
	}

	t.Run("inserts", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(u.ID, u.Email, u.FullName, u.PasswordHash, u.Active, u.Superuser).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Users().CreateUser(context.Background(), u))
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(u.ID, u.Email, u.FullName, u.PasswordHash, u.Active, u.Superuser).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := s.Users().CreateUser(context.Background(), u)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestUpdateProfile(t *testing.T) {
	s, mock := newMockStore(t)

	t.Run("updates", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET email = \$1, full_name = \$2`).
			WithArgs("new@example.com", "New Name", "u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Users().UpdateProfile(context.Background(), "u-1", "new@example.com", "New Name"))
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET email = \$1, full_name = \$2`).
			WithArgs("new@example.com", "New Name", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Users().UpdateProfile(context.Background(), "ghost", "new@example.com", "New Name")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSetActiveAndSuperuser(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE users SET active = \$1`).
		WithArgs(false, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Users().SetActive(context.Background(), "u-1", false))

	mock.ExpectExec(`UPDATE users SET superuser = \$1`).
		WithArgs(true, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Users().SetSuperuser(context.Background(), "u-1", true))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM users ORDER BY created_at ASC`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "a@example.com", "A", "h", true, false, now, now).
			AddRow("u-2", "b@example.com", "B", "h", true, true, now, now))

	users, err := s.Users().ListUsers(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "u-1", users[0].ID)
	require.Equal(t, "u-2", users[1].ID)
}

func TestCountUsers(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.Users().CountUsers(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestDeleteUser(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Users().DeleteUser(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}
