package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/portside-dev/portside/pkg/slogx"
)

// HandlerWithUser is a handler that receives the authenticated user as an
// explicit argument. The guards resolve the bearer token and call through;
// the principal never travels in the request context.
type HandlerWithUser func(w http.ResponseWriter, r *http.Request, user domain.User)

// Guard turns bearer tokens into users at the route boundary. Handlers
// behind a guard only run for a live, authenticated principal.
type Guard struct {
	Tokens *service.TokenService
}

// Authenticated wraps next so it only runs with a valid bearer token whose
// subject is a live user. Failures answer 401 before any handler logic.
func (g *Guard) Authenticated(next HandlerWithUser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		raw, ok := bearerToken(r)
		if !ok {
			writeBearerError(w, apisdk.ErrInvalidToken)
			return
		}

		user, err := g.Tokens.Authenticate(ctx, raw)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				writeBearerError(w, apisdk.ErrTokenExpired)
			case errors.Is(err, service.ErrPrincipalNotFound):
				writeBearerError(w, apisdk.ErrPrincipalNotFound)
			case errors.Is(err, service.ErrInvalidToken):
				writeBearerError(w, apisdk.ErrInvalidToken)
			default:
				slogx.FromContext(ctx).Error("token authentication failed", "err", err)
				apisdk.ErrServerError.WriteError(w)
			}
			return
		}

		next(w, r, user)
	})
}

// Superuser is Authenticated plus the privilege gate. Authentication
// failures answer 401, privilege failures 403.
func (g *Guard) Superuser(next HandlerWithUser) http.Handler {
	return g.Authenticated(func(w http.ResponseWriter, r *http.Request, user domain.User) {
		user, err := service.RequireSuperuser(user)
		if err != nil {
			apisdk.ErrInsufficientPrivilege.WriteError(w)
			return
		}
		next(w, r, user)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")), true
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, e *apisdk.Error) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+e.Description+`"`)
	e.WriteError(w)
}
