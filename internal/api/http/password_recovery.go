package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/portside-dev/portside/pkg/httpx"
	"github.com/portside-dev/portside/pkg/slogx"
)

// PasswordRecoveryHandler serves POST /v1/auth/password-recovery.
type PasswordRecoveryHandler struct {
	Recovery *service.RecoveryService
}

// ServeHTTP godoc
//
//	@Summary		Password Recovery Endpoint
//	@Description	Mails a password reset link to the given address. Always answers 202, whether or not an account exists, so the endpoint cannot be used to probe registered emails.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.PasswordRecoveryRequest	true	"Email address to recover"
//	@Success		202		{object}	apisdk.MessageResponse			"message"
//	@Failure		400		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/password-recovery [post].
func (h *PasswordRecoveryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.PasswordRecoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Recovery.RequestPasswordRecovery(ctx, req.Email); err != nil {
		// Mailer and store failures are real errors, not enumeration signals.
		log.Error("password recovery failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, apisdk.MessageResponse{
		Message: "if the account exists, a password recovery email has been sent",
	})
}
