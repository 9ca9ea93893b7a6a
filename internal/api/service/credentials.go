package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/cryptox"
	"github.com/portside-dev/portside/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

// CredentialService checks an email/password pair against the user store.
type CredentialService struct {
	Store store.Store
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// dummyVerify burns an argon2 verification against a fixed hash. Called on
// lookups for unknown or inactive accounts so the response time does not
// reveal whether the email exists.
func dummyVerify(password string) {
	dummyHashOnce.Do(func() {
		h, err := cryptox.HashPassword("decoy-password-for-timing")
		if err == nil {
			dummyHash = h
		}
	})
	if dummyHash != "" {
		_ = cryptox.VerifyPassword(password, dummyHash)
	}
}

// Verify returns the user matching the given credentials. Unknown emails,
// wrong passwords, and deactivated accounts are indistinguishable to the
// caller: all yield ErrInvalidCredentials.
func (s *CredentialService) Verify(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)
	email = NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			dummyVerify(password)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			l.Info("password verification failed", "user_id", user.ID)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if !user.Active {
		l.Info("login attempt for deactivated account", "user_id", user.ID)
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// NormalizeEmail lowercases and trims an email so lookups and uniqueness
// checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
