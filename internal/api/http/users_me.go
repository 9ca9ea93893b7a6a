package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/portside-dev/portside/pkg/httpx"
	"github.com/portside-dev/portside/pkg/slogx"
)

// MeHandler serves the /v1/users/me self-service endpoints. Every method
// receives the authenticated user from the guard as an explicit argument.
type MeHandler struct {
	Users *service.UserService
}

// HandleGet godoc
//
//	@Summary		Get Own Account
//	@Description	Returns the account of the authenticated user.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	apisdk.User				"the account"
//	@Failure		401	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request, user domain.User) {
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandlePatch godoc
//
//	@Summary		Update Own Account
//	@Description	Applies a partial update to the authenticated user's email and full name.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.UpdateMeRequest	true	"Fields to change"
//	@Success		200		{object}	apisdk.User				"the updated account"
//	@Failure		400		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/me [patch].
func (h *MeHandler) HandlePatch(w http.ResponseWriter, r *http.Request, user domain.User) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	updated, err := h.Users.UpdateProfile(ctx, user, service.UserUpdate{
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			apisdk.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			apisdk.ErrInvalidEmail.WriteError(w)
		default:
			log.Error("profile update failed", "user_id", user.ID, "err", err)
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(updated))
}

// HandlePassword godoc
//
//	@Summary		Change Own Password
//	@Description	Changes the authenticated user's password after re-verifying the current one.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.UpdatePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	apisdk.MessageResponse			"message"
//	@Failure		400		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Router			/v1/users/me/password [put].
func (h *MeHandler) HandlePassword(w http.ResponseWriter, r *http.Request, user domain.User) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		apisdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Users.UpdatePassword(ctx, user, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apisdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrSamePassword):
			apisdk.ErrSamePassword.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			apisdk.ErrWeakPassword.WriteError(w)
		default:
			log.Error("password change failed", "user_id", user.ID, "err", err)
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "password updated"})
}

// HandleDelete godoc
//
//	@Summary		Delete Own Account
//	@Description	Deletes the authenticated user's account and the items it owns. Superusers cannot delete themselves.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		204	"account deleted"
//	@Failure		401	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/me [delete].
func (h *MeHandler) HandleDelete(w http.ResponseWriter, r *http.Request, user domain.User) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.Users.DeleteUser(ctx, user, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete):
			apisdk.ErrSelfDelete.WriteError(w)
		default:
			log.Error("account deletion failed", "user_id", user.ID, "err", err)
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
