package store

import (
	"context"
	"errors"

	"github.com/portside-dev/portside/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable. We can change having the sub-repos as methods later but we do it
// now so we can have more control and actively stop people from accidently
// doing transactions within transactions.
type Store interface {
	Users() Users
	Items() Items

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., password reset).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and signup duplicate checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns a page of users ordered by creation date (oldest first).
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates email and full_name and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, email, fullName string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetActive toggles the active flag and bumps updated_at.
	SetActive(ctx context.Context, userID string, active bool) error

	// SetSuperuser toggles the superuser flag and bumps updated_at.
	SetSuperuser(ctx context.Context, userID string, superuser bool) error

	// DeleteUser cascades to items (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Items interface {
	// GetItemByID returns an item by id.
	GetItemByID(ctx context.Context, id string) (domain.Item, error)

	// ListItems returns a page of all items ordered by creation date (newest first).
	ListItems(ctx context.Context, limit, offset int) ([]domain.Item, error)

	// ListItemsByOwner returns a page of one user's items, newest first.
	ListItemsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Item, error)

	// CountItems returns the total number of items.
	CountItems(ctx context.Context) (int, error)

	// CountItemsByOwner returns the number of items owned by a user.
	CountItemsByOwner(ctx context.Context, ownerID string) (int, error)

	// CreateItem inserts a new item (id is provided by app via ULID).
	CreateItem(ctx context.Context, it domain.Item) error

	// UpdateItem mutates title and description and bumps updated_at.
	UpdateItem(ctx context.Context, itemID, title, description string) error

	// DeleteItem removes a single item.
	DeleteItem(ctx context.Context, itemID string) error
}
