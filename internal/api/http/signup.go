package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/portside-dev/portside/pkg/httpx"
	"github.com/portside-dev/portside/pkg/slogx"
)

// SignupHandler serves POST /v1/users/signup, the open registration
// endpoint.
type SignupHandler struct {
	Users *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Signup Endpoint
//	@Description	Registers a new account. Only available when open registration is enabled; otherwise answers 403 "registration_disabled".
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.SignupRequest	true	"Email, password and full name"
//	@Success		201		{object}	apisdk.User				"the created account"
//	@Failure		400		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	user, err := h.Users.Signup(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationDisabled):
			apisdk.ErrRegistrationDisabled.WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			apisdk.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			apisdk.ErrInvalidEmail.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			apisdk.ErrWeakPassword.WriteError(w)
		default:
			log.Error("signup failed", "err", err)
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}
