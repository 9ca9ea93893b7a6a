package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/internal/api/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store, id, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           id,
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "$argon2id$...",
		Active:       true,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "alice@example.com")

	got, err := s.Users().GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", got.Email)
	require.True(t, got.Active)
	require.False(t, got.Superuser)
	require.False(t, got.CreatedAt.IsZero())

	byEmail, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, got.ID, byEmail.ID)

	count, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "alice@example.com")

	dup := domain.User{ID: "u-2", Email: "alice@example.com", PasswordHash: "h", Active: true}
	err := s.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Users().GetUserByID(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateUserFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "alice@example.com")

	require.NoError(t, s.Users().UpdateProfile(ctx, "u-1", "alice2@example.com", "Alice Renamed"))
	require.NoError(t, s.Users().UpdatePasswordHash(ctx, "u-1", "new-hash"))
	require.NoError(t, s.Users().SetActive(ctx, "u-1", false))
	require.NoError(t, s.Users().SetSuperuser(ctx, "u-1", true))

	got, err := s.Users().GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, "alice2@example.com", got.Email)
	require.Equal(t, "Alice Renamed", got.FullName)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.False(t, got.Active)
	require.True(t, got.Superuser)

	require.ErrorIs(t, s.Users().SetActive(ctx, "ghost", true), store.ErrNotFound)
}

func TestListUsersPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "a@example.com")
	seedUser(t, s, "u-2", "b@example.com")
	seedUser(t, s, "u-3", "c@example.com")

	page, err := s.Users().ListUsers(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "u-1", page[0].ID)
	require.Equal(t, "u-2", page[1].ID)

	rest, err := s.Users().ListUsers(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, "u-3", rest[0].ID)
}

func TestItemsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "alice@example.com")

	first := domain.Item{ID: "item-1", Title: "Spinnaker", Description: "needs repair", OwnerID: "u-1"}
	second := domain.Item{ID: "item-2", Title: "Anchor", OwnerID: "u-1"}
	require.NoError(t, s.Items().CreateItem(ctx, first))
	require.NoError(t, s.Items().CreateItem(ctx, second))

	got, err := s.Items().GetItemByID(ctx, "item-1")
	require.NoError(t, err)
	require.Equal(t, "Spinnaker", got.Title)
	require.Equal(t, "u-1", got.OwnerID)

	// Newest first; ids tiebreak when created_at collides within a second
	items, err := s.Items().ListItemsByOwner(ctx, "u-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "item-2", items[0].ID)

	count, err := s.Items().CountItemsByOwner(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, s.Items().UpdateItem(ctx, "item-1", "Mainsail", "patched"))
	got, err = s.Items().GetItemByID(ctx, "item-1")
	require.NoError(t, err)
	require.Equal(t, "Mainsail", got.Title)
	require.Equal(t, "patched", got.Description)

	require.NoError(t, s.Items().DeleteItem(ctx, "item-1"))
	_, err = s.Items().GetItemByID(ctx, "item-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateItemUnknownOwner(t *testing.T) {
	s := newTestStore(t)

	orphan := domain.Item{ID: "item-1", Title: "Ghost", OwnerID: "nobody"}
	err := s.Items().CreateItem(context.Background(), orphan)
	require.Error(t, err)
}

func TestDeleteUserCascadesItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "alice@example.com")
	require.NoError(t, s.Items().CreateItem(ctx, domain.Item{ID: "item-1", Title: "Spinnaker", OwnerID: "u-1"}))

	require.NoError(t, s.Users().DeleteUser(ctx, "u-1"))

	count, err := s.Items().CountItems(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{
			ID: "u-1", Email: "alice@example.com", PasswordHash: "h", Active: true,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	count, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestWithTxCommits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, domain.User{
			ID: "u-1", Email: "alice@example.com", PasswordHash: "h", Active: true,
		})
	})
	require.NoError(t, err)

	_, err = s.Users().GetUserByID(ctx, "u-1")
	require.NoError(t, err)
}
