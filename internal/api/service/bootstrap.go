package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/cryptox"
	"github.com/portside-dev/portside/pkg/idx"
	"github.com/portside-dev/portside/pkg/slogx"
)

// BootstrapService seeds the first superuser at startup so a fresh install is
// usable without a manual database step.
type BootstrapService struct {
	Store    store.Store
	Email    string
	Password string
	FullName string
}

// EnsureFirstSuperuser creates the configured superuser if it does not exist
// yet. With no password configured, one is generated and written to the log,
// which is the only place the operator can read it from.
func (s *BootstrapService) EnsureFirstSuperuser(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.Email == "" {
		l.Debug("no first superuser configured, skipping seed")
		return nil
	}

	email, err := validateEmail(s.Email)
	if err != nil {
		return err
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	password := s.Password
	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     s.FullName,
		PasswordHash: hash,
		Active:       true,
		Superuser:    true,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		// Lost a race against another instance seeding the same user.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	if generated {
		l.Warn("seeded first superuser with a generated password, change it after first login",
			slog.String("email", email),
			slog.String("password", password),
		)
	} else {
		l.Info("seeded first superuser", slog.String("email", email))
	}
	return nil
}
