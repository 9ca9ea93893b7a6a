package service

import (
	"context"
	"strings"
	"testing"

	"github.com/portside-dev/portside/internal/api/store"
	"github.com/stretchr/testify/require"
)

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	items := &ItemService{Store: st}

	alice := seedUser(t, st, "alice@example.com", "correct-horse", true, false)

	t.Run("creates and re-reads the item", func(t *testing.T) {
		it, err := items.CreateItem(ctx, alice, "  Mainsail  ", "torn at the luff")
		require.NoError(t, err)
		require.Equal(t, "Mainsail", it.Title)
		require.Equal(t, "torn at the luff", it.Description)
		require.Equal(t, alice.ID, it.OwnerID)
		require.False(t, it.CreatedAt.IsZero())
	})

	t.Run("rejects empty and overlong titles", func(t *testing.T) {
		_, err := items.CreateItem(ctx, alice, "   ", "x")
		require.ErrorIs(t, err, ErrInvalidTitle)

		_, err = items.CreateItem(ctx, alice, strings.Repeat("a", MaxTitleLen+1), "x")
		require.ErrorIs(t, err, ErrInvalidTitle)
	})
}

func TestItemOwnership(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	items := &ItemService{Store: st}

	alice := seedUser(t, st, "alice@example.com", "correct-horse", true, false)
	bob := seedUser(t, st, "bob@example.com", "bobs-password", true, false)
	admin := seedUser(t, st, "admin@example.com", "admin-password", true, true)

	it, err := items.CreateItem(ctx, alice, "Compass", "sticky needle")
	require.NoError(t, err)

	t.Run("owner reads their item", func(t *testing.T) {
		got, err := items.GetItem(ctx, alice, it.ID)
		require.NoError(t, err)
		require.Equal(t, it.ID, got.ID)
	})

	t.Run("other users are shut out", func(t *testing.T) {
		_, err := items.GetItem(ctx, bob, it.ID)
		require.ErrorIs(t, err, ErrInsufficientPrivilege)

		_, err = items.UpdateItem(ctx, bob, it.ID, ItemUpdate{Title: strPtr("Stolen")})
		require.ErrorIs(t, err, ErrInsufficientPrivilege)

		err = items.DeleteItem(ctx, bob, it.ID)
		require.ErrorIs(t, err, ErrInsufficientPrivilege)
	})

	t.Run("superuser reaches any item", func(t *testing.T) {
		got, err := items.GetItem(ctx, admin, it.ID)
		require.NoError(t, err)
		require.Equal(t, it.ID, got.ID)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := items.GetItem(ctx, alice, "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	items := &ItemService{Store: st}

	alice := seedUser(t, st, "alice@example.com", "correct-horse", true, false)

	it, err := items.CreateItem(ctx, alice, "Anchor", "rusty")
	require.NoError(t, err)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		got, err := items.UpdateItem(ctx, alice, it.ID, ItemUpdate{Description: strPtr("re-galvanized")})
		require.NoError(t, err)
		require.Equal(t, "Anchor", got.Title)
		require.Equal(t, "re-galvanized", got.Description)
	})

	t.Run("invalid title", func(t *testing.T) {
		_, err := items.UpdateItem(ctx, alice, it.ID, ItemUpdate{Title: strPtr("  ")})
		require.ErrorIs(t, err, ErrInvalidTitle)
	})
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	items := &ItemService{Store: st}

	alice := seedUser(t, st, "alice@example.com", "correct-horse", true, false)
	bob := seedUser(t, st, "bob@example.com", "bobs-password", true, false)
	admin := seedUser(t, st, "admin@example.com", "admin-password", true, true)

	for _, title := range []string{"Winch", "Cleat", "Fender"} {
		_, err := items.CreateItem(ctx, alice, title, "")
		require.NoError(t, err)
	}
	_, err := items.CreateItem(ctx, bob, "Bilge pump", "")
	require.NoError(t, err)

	t.Run("owner sees only their items", func(t *testing.T) {
		got, count, err := items.ListItems(ctx, alice, 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, 3, count)
		for _, it := range got {
			require.Equal(t, alice.ID, it.OwnerID)
		}
	})

	t.Run("superuser sees everything", func(t *testing.T) {
		got, count, err := items.ListItems(ctx, admin, 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 4)
		require.Equal(t, 4, count)
	})

	t.Run("count spans all pages", func(t *testing.T) {
		got, count, err := items.ListItems(ctx, alice, 2, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, 3, count)
	})

	t.Run("delete shrinks the list", func(t *testing.T) {
		got, _, err := items.ListItems(ctx, bob, 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)

		require.NoError(t, items.DeleteItem(ctx, bob, got[0].ID))

		got, count, err := items.ListItems(ctx, bob, 10, 0)
		require.NoError(t, err)
		require.Empty(t, got)
		require.Zero(t, count)
	})
}
