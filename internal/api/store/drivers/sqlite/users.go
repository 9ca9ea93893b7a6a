package sqlite

import (
	"context"

	"github.com/portside-dev/portside/internal/api/domain"
)

type usersRepo struct {
	db dbtx
}

const selectUser = `SELECT id, email, full_name, password_hash, active, superuser, created_at, updated_at FROM users`

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&u.Active,
		&u.Superuser,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE email = ?`, email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		selectUser+` ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, active, superuser)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FullName, u.PasswordHash, u.Active, u.Superuser,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, email, fullName string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET email = ?, full_name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		email, fullName, userID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		newHash, userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		active, userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) SetSuperuser(ctx context.Context, userID string, superuser bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET superuser = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		superuser, userID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
