package service

import (
	"errors"

	"github.com/portside-dev/portside/internal/api/domain"
)

var ErrInsufficientPrivilege = errors.New("insufficient_privilege")

// RequireSuperuser gates an already-authenticated user on the superuser flag.
// It never decides who the caller is, only what they may do, so failures here
// are a 403 concern while Authenticate failures are a 401 concern.
func RequireSuperuser(user domain.User) (domain.User, error) {
	if !user.Superuser {
		return domain.User{}, ErrInsufficientPrivilege
	}
	return user, nil
}
