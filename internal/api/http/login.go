package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/portside-dev/portside/pkg/httpx"
	"github.com/portside-dev/portside/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login.
// Accepts application/x-www-form-urlencoded in the OAuth2 password grant
// shape: the username field carries the email.
type LoginHandler struct {
	Credentials *service.CredentialService
	Tokens      *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchanges an email and password for a JWT bearer token. The response is shaped like an OAuth2 password grant: access_token, token_type and expires_in.
//	@Description	Tokens are stateless and stay valid until expiry; there is no refresh token and no revocation.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string				true	"Email address of the account"
//	@Param			password	formData	string				true	"Account password"
//	@Success		200			{object}	apisdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400			{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		500			{object}	apisdk.ErrorResponse	"error, error_description"
//	@Header			200			{string}	Cache-Control		"no-store"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		apisdk.ErrInvalidContentType.WriteError(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		apisdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	email := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")
	if email == "" || password == "" {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.Credentials.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apisdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("credential verification failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	token, err := h.Tokens.IssueAccess(user.ID)
	if err != nil {
		log.Error("token issuance failed", "user_id", user.ID, "err", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	log.Info("login", "user_id", user.ID)

	// Token responses must not end up in shared caches.
	w.Header().Set("Cache-Control", "no-store")
	httpx.WriteJSON(w, http.StatusOK, apisdk.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.Tokens.AccessTTL.Seconds()),
	})
}
