package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/stretchr/testify/require"
)

var itemColumns = []string{"id", "title", "description", "owner_id", "created_at", "updated_at"}

func TestCreateItem(t *testing.T) {
	s, mock := newMockStore(t)

	it := domain.Item{ID: "item-1", Title: "Spinnaker", Description: "needs repair", OwnerID: "u-1"}

	mock.ExpectExec(`INSERT INTO items`).
		WithArgs(it.ID, it.Title, it.Description, it.OwnerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Items().CreateItem(context.Background(), it))
}

func TestListItemsByOwner(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM items WHERE owner_id = \$1 ORDER BY created_at DESC`).
		WithArgs("u-1", 20, 0).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow("item-2", "Anchor", "", "u-1", now, now).
			AddRow("item-1", "Spinnaker", "needs repair", "u-1", now, now))

	items, err := s.Items().ListItemsByOwner(context.Background(), "u-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "item-2", items[0].ID)
}

func TestCountItemsByOwner(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items WHERE owner_id = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := s.Items().CountItemsByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestUpdateItem(t *testing.T) {
	s, mock := newMockStore(t)

	t.Run("updates", func(t *testing.T) {
		mock.ExpectExec(`UPDATE items SET title = \$1, description = \$2`).
			WithArgs("Mainsail", "patched", "item-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Items().UpdateItem(context.Background(), "item-1", "Mainsail", "patched"))
	})

	t.Run("missing item maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE items SET title = \$1, description = \$2`).
			WithArgs("Mainsail", "patched", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Items().UpdateItem(context.Background(), "ghost", "Mainsail", "patched")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
