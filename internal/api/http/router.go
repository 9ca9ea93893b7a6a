package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/httpx"
	"github.com/portside-dev/portside/pkg/slogx"

	_ "github.com/portside-dev/portside/api/openapi" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	TokenService      *service.TokenService
	CredentialService *service.CredentialService
	UserService       *service.UserService
	ItemService       *service.ItemService
	RecoveryService   *service.RecoveryService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerItems()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Portside API
//	@version		0.1.0
//	@description	Backend API providing password login with JWT-based access tokens, user administration, and item management.
//	@description
//	@description				All tokens are stateless HMAC-signed JWTs. There is no refresh grant; clients log in again when a token expires.
//
//	@contact.name				Portside Team
//	@contact.url				https://github.com/portside-dev/portside
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/login - strict rate limit (authentication attempts)
	// Note: Rate limited by IP + username form field to prevent brute force
	loginHandler := &LoginHandler{
		Credentials: r.CredentialService,
		Tokens:      r.TokenService,
	}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	// POST /auth/password-recovery - strict rate limit by IP (sends email)
	recoveryHandler := &PasswordRecoveryHandler{Recovery: r.RecoveryService}
	r.Mux.Handle("POST /v1/auth/password-recovery",
		httpx.Chain(recoveryHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/reset-password - strict rate limit by IP (token guessing)
	resetHandler := &ResetPasswordHandler{Recovery: r.RecoveryService}
	r.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(resetHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	guard := &Guard{Tokens: r.TokenService}

	// POST /users/signup - strict rate limit by IP (public signup endpoint)
	signupHandler := &SignupHandler{Users: r.UserService}
	r.Mux.Handle("POST /v1/users/signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// The /users/me endpoints act on whoever the token resolves to.
	me := &MeHandler{Users: r.UserService}
	r.Mux.Handle("GET /v1/users/me",
		httpx.Chain(guard.Authenticated(me.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/users/me",
		httpx.Chain(guard.Authenticated(me.HandlePatch),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	// PUT /users/me/password - strict rate limit (current password attempts)
	r.Mux.Handle("PUT /v1/users/me/password",
		httpx.Chain(guard.Authenticated(me.HandlePassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/users/me",
		httpx.Chain(guard.Authenticated(me.HandleDelete),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Administration endpoints require superuser privileges. The literal
	// /users/me patterns above win over /users/{id} for the same methods.
	admin := &UsersHandler{Users: r.UserService}
	r.Mux.Handle("GET /v1/users",
		httpx.Chain(guard.Superuser(admin.HandleList),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(guard.Superuser(admin.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/users/{id}",
		httpx.Chain(guard.Superuser(admin.HandleGet),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/users/{id}",
		httpx.Chain(guard.Superuser(admin.HandlePatch),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/users/{id}",
		httpx.Chain(guard.Superuser(admin.HandleDelete),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerItems() {
	guard := &Guard{Tokens: r.TokenService}
	h := &ItemsHandler{Items: r.ItemService}

	r.Mux.Handle("GET /v1/items",
		httpx.Chain(guard.Authenticated(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/items",
		httpx.Chain(guard.Authenticated(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/items/{id}",
		httpx.Chain(guard.Authenticated(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/items/{id}",
		httpx.Chain(guard.Authenticated(h.HandleUpdate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/items/{id}",
		httpx.Chain(guard.Authenticated(h.HandleDelete),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
