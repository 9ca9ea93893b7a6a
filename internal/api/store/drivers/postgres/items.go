package postgres

import (
	"context"
	"database/sql"

	"github.com/portside-dev/portside/internal/api/domain"
)

type itemsRepo struct {
	db dbtx
}

const selectItem = `SELECT id, title, description, owner_id, created_at, updated_at FROM items`

func scanItem(row rowScanner) (domain.Item, error) {
	var it domain.Item
	err := row.Scan(
		&it.ID,
		&it.Title,
		&it.Description,
		&it.OwnerID,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	return it, err
}

func (r *itemsRepo) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, selectItem+` WHERE id = $1`, id))
	if err != nil {
		return domain.Item{}, mapNotFound(err)
	}
	return it, nil
}

func (r *itemsRepo) ListItems(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		selectItem+` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *itemsRepo) ListItemsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		selectItem+` WHERE owner_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemsRepo) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *itemsRepo) CountItemsByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *itemsRepo) CreateItem(ctx context.Context, it domain.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (id, title, description, owner_id)
		VALUES ($1, $2, $3, $4)`,
		it.ID, it.Title, it.Description, it.OwnerID,
	)
	return mapConstraint(err)
}

func (r *itemsRepo) UpdateItem(ctx context.Context, itemID, title, description string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET title = $1, description = $2, updated_at = now()
		WHERE id = $3`,
		title, description, itemID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *itemsRepo) DeleteItem(ctx context.Context, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
