package service

import (
	"context"
	"errors"
	netmail "net/mail"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/cryptox"
	"github.com/portside-dev/portside/pkg/idx"
	"github.com/portside-dev/portside/pkg/slogx"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 40
)

var (
	ErrRegistrationDisabled = errors.New("registration_disabled")
	ErrEmailTaken           = errors.New("email_taken")
	ErrInvalidEmail         = errors.New("invalid_email")
	ErrWeakPassword         = errors.New("weak_password")
	ErrSamePassword         = errors.New("same_password")
	ErrSelfDelete           = errors.New("self_delete")
)

type UserService struct {
	Store store.Store

	// OpenRegistration gates the public signup endpoint. Superuser-driven
	// creation is unaffected.
	OpenRegistration bool
}

// UserUpdate carries the self-service profile fields. Nil means leave as is.
type UserUpdate struct {
	Email    *string
	FullName *string
}

// AdminUserUpdate adds the fields only a superuser may change.
type AdminUserUpdate struct {
	UserUpdate
	Password  *string
	Active    *bool
	Superuser *bool
}

// Signup registers a new regular user through the public endpoint.
func (s *UserService) Signup(ctx context.Context, email, password, fullName string) (domain.User, error) {
	if !s.OpenRegistration {
		return domain.User{}, ErrRegistrationDisabled
	}
	return s.createUser(ctx, email, password, fullName, false)
}

// CreateUser registers a user on behalf of a superuser.
func (s *UserService) CreateUser(ctx context.Context, email, password, fullName string, superuser bool) (domain.User, error) {
	return s.createUser(ctx, email, password, fullName, superuser)
}

func (s *UserService) createUser(ctx context.Context, email, password, fullName string, superuser bool) (domain.User, error) {
	email, err := validateEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}

	// Friendly duplicate check; the unique index backstops the race.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Active:       true,
		Superuser:    superuser,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", "user_id", u.ID, "superuser", superuser)

	// Re-read so the caller sees store-assigned timestamps.
	return s.Store.Users().GetUserByID(ctx, u.ID)
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns a page of users plus the total count.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	users, err := s.Store.Users().ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// UpdateProfile applies a partial self-service update for the given user.
func (s *UserService) UpdateProfile(ctx context.Context, user domain.User, upd UserUpdate) (domain.User, error) {
	email := user.Email
	if upd.Email != nil {
		var err error
		email, err = validateEmail(*upd.Email)
		if err != nil {
			return domain.User{}, err
		}
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return domain.User{}, err
			}
		}
	}

	fullName := user.FullName
	if upd.FullName != nil {
		fullName = *upd.FullName
	}

	if err := s.Store.Users().UpdateProfile(ctx, user.ID, email, fullName); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, user.ID)
}

// AdminUpdateUser applies a partial update to any user on behalf of a
// superuser. All requested changes land atomically.
func (s *UserService) AdminUpdateUser(ctx context.Context, userID string, upd AdminUserUpdate) (domain.User, error) {
	target, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	email := target.Email
	if upd.Email != nil {
		email, err = validateEmail(*upd.Email)
		if err != nil {
			return domain.User{}, err
		}
		if email != target.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return domain.User{}, err
			}
		}
	}

	fullName := target.FullName
	if upd.FullName != nil {
		fullName = *upd.FullName
	}

	var newHash string
	if upd.Password != nil {
		if err := validatePassword(*upd.Password); err != nil {
			return domain.User{}, err
		}
		newHash, err = cryptox.HashPassword(*upd.Password)
		if err != nil {
			return domain.User{}, err
		}
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateProfile(ctx, userID, email, fullName); err != nil {
			return err
		}
		if newHash != "" {
			if err := tx.Users().UpdatePasswordHash(ctx, userID, newHash); err != nil {
				return err
			}
		}
		if upd.Active != nil {
			if err := tx.Users().SetActive(ctx, userID, *upd.Active); err != nil {
				return err
			}
		}
		if upd.Superuser != nil {
			if err := tx.Users().SetSuperuser(ctx, userID, *upd.Superuser); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdatePassword changes the user's own password after verifying the current
// one.
func (s *UserService) UpdatePassword(ctx context.Context, user domain.User, current, newPassword string) error {
	if err := cryptox.VerifyPassword(current, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}
	if newPassword == current {
		return ErrSamePassword
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash)
}

// DeleteUser removes a user and, via the schema, their items. Superusers may
// delete anyone but themselves; regular users may only delete their own
// account (route guards enforce the latter).
func (s *UserService) DeleteUser(ctx context.Context, actor domain.User, targetID string) error {
	if actor.ID == targetID && actor.Superuser {
		return ErrSelfDelete
	}

	if err := s.Store.Users().DeleteUser(ctx, targetID); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", "user_id", targetID, "actor_id", actor.ID)
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

func validateEmail(email string) (string, error) {
	email = NormalizeEmail(email)
	addr, err := netmail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return ErrWeakPassword
	}
	return nil
}
