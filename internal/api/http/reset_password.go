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

// ResetPasswordHandler serves POST /v1/auth/reset-password.
type ResetPasswordHandler struct {
	Recovery *service.RecoveryService
}

// ServeHTTP godoc
//
//	@Summary		Reset Password Endpoint
//	@Description	Consumes a recovery token from the password recovery email and sets a new password for the account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.ResetPasswordRequest	true	"Recovery token and new password"
//	@Success		200		{object}	apisdk.MessageResponse		"message"
//	@Failure		400		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/reset-password [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Recovery.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			apisdk.ErrTokenExpired.WriteError(w)
		case errors.Is(err, service.ErrInvalidToken):
			apisdk.ErrInvalidToken.WriteError(w)
		case errors.Is(err, service.ErrPrincipalNotFound):
			apisdk.ErrPrincipalNotFound.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			apisdk.ErrWeakPassword.WriteError(w)
		default:
			log.Error("password reset failed", "err", err)
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "password updated"})
}
