package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/portside-dev/portside/pkg/httpx"
	"github.com/portside-dev/portside/pkg/slogx"
)

// Pagination bounds shared by the list endpoints.
const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// parsePagination reads limit/offset query parameters, clamping them to the
// accepted range. Absent or malformed values fall back to the defaults.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxPageLimit)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// UsersHandler serves the superuser /v1/users administration endpoints.
type UsersHandler struct {
	Users *service.UserService
}

// HandleList godoc
//
//	@Summary		List Users
//	@Description	Returns one page of users plus the total count. Requires superuser privileges.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int						false	"Page size (default 50, max 100)"
//	@Param			offset	query		int						false	"Page offset (default 0)"
//	@Success		200		{object}	apisdk.UsersPage		"users, count"
//	@Failure		401		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request, _ domain.User) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	users, count, err := h.Users.ListUsers(ctx, limit, offset)
	if err != nil {
		slogx.FromContext(ctx).Error("user listing failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUsersPage(users, count))
}

// HandleCreate godoc
//
//	@Summary		Create User
//	@Description	Creates an account, optionally with superuser privileges. Requires superuser privileges and works regardless of the open registration setting.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.CreateUserRequest	true	"Email, password, full name and superuser flag"
//	@Success		201		{object}	apisdk.User					"the created account"
//	@Failure		400		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request, _ domain.User) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	user, err := h.Users.CreateUser(ctx, req.Email, req.Password, req.FullName, req.Superuser)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			apisdk.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			apisdk.ErrInvalidEmail.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			apisdk.ErrWeakPassword.WriteError(w)
		default:
			log.Error("user creation failed", "err", err)
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleGet godoc
//
//	@Summary		Get User
//	@Description	Returns one user by id. Requires superuser privileges.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"User id"
//	@Success		200	{object}	apisdk.User				"the account"
//	@Failure		401	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request, _ domain.User) {
	ctx := r.Context()

	user, err := h.Users.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.ErrNotFound.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("user lookup failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandlePatch godoc
//
//	@Summary		Update User
//	@Description	Applies a partial update to any account: email, full name, password, active and superuser flags. All requested changes land atomically. Requires superuser privileges.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"User id"
//	@Param			request	body		apisdk.AdminUpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	apisdk.User						"the updated account"
//	@Failure		400		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	apisdk.ErrorResponse			"error, error_description"
//	@Router			/v1/users/{id} [patch].
func (h *UsersHandler) HandlePatch(w http.ResponseWriter, r *http.Request, _ domain.User) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.AdminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	user, err := h.Users.AdminUpdateUser(ctx, r.PathValue("id"), service.AdminUserUpdate{
		UserUpdate: service.UserUpdate{
			Email:    req.Email,
			FullName: req.FullName,
		},
		Password:  req.Password,
		Active:    req.Active,
		Superuser: req.Superuser,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			apisdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			apisdk.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			apisdk.ErrInvalidEmail.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			apisdk.ErrWeakPassword.WriteError(w)
		default:
			log.Error("user update failed", "err", err)
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleDelete godoc
//
//	@Summary		Delete User
//	@Description	Deletes an account and the items it owns. Requires superuser privileges; superusers cannot delete their own account this way either.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"User id"
//	@Success		204	"account deleted"
//	@Failure		401	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request, actor domain.User) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.Users.DeleteUser(ctx, actor, r.PathValue("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete):
			apisdk.ErrSelfDelete.WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			apisdk.ErrNotFound.WriteError(w)
		default:
			log.Error("user deletion failed", "err", err)
			apisdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
