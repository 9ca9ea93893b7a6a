package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/portside-dev/portside/pkg/httpx"
	"github.com/portside-dev/portside/pkg/slogx"
)

// ItemsHandler serves the /v1/items endpoints. Regular users only see and
// touch their own items, superusers reach every item.
type ItemsHandler struct {
	Items *service.ItemService
}

// writeItemError maps item service failures onto wire errors.
func writeItemError(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		apisdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInsufficientPrivilege):
		apisdk.ErrInsufficientPrivilege.WriteError(w)
	case errors.Is(err, service.ErrInvalidTitle):
		apisdk.ErrInvalidTitle.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("item "+action+" failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
	}
}

// HandleList godoc
//
//	@Summary		List Items
//	@Description	Returns one page of the caller's items plus the total count. Superusers see all items.
//	@Tags			Items
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int						false	"Page size (default 50, max 100)"
//	@Param			offset	query		int						false	"Page offset (default 0)"
//	@Success		200		{object}	apisdk.ItemsPage		"items, count"
//	@Failure		401		{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/items [get].
func (h *ItemsHandler) HandleList(w http.ResponseWriter, r *http.Request, user domain.User) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	items, count, err := h.Items.ListItems(ctx, user, limit, offset)
	if err != nil {
		slogx.FromContext(ctx).Error("item listing failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toItemsPage(items, count))
}

// HandleCreate godoc
//
//	@Summary		Create Item
//	@Description	Creates an item owned by the caller.
//	@Tags			Items
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.CreateItemRequest	true	"Title and optional description"
//	@Success		201		{object}	apisdk.Item					"the created item"
//	@Failure		400		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Router			/v1/items [post].
func (h *ItemsHandler) HandleCreate(w http.ResponseWriter, r *http.Request, user domain.User) {
	ctx := r.Context()

	var req apisdk.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	item, err := h.Items.CreateItem(ctx, user, req.Title, req.Description)
	if err != nil {
		writeItemError(w, r, "creation", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toItemResponse(item))
}

// HandleGet godoc
//
//	@Summary		Get Item
//	@Description	Returns one item by id. Regular users can only fetch their own items.
//	@Tags			Items
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Item id"
//	@Success		200	{object}	apisdk.Item				"the item"
//	@Failure		401	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/items/{id} [get].
func (h *ItemsHandler) HandleGet(w http.ResponseWriter, r *http.Request, user domain.User) {
	item, err := h.Items.GetItem(r.Context(), user, r.PathValue("id"))
	if err != nil {
		writeItemError(w, r, "lookup", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

// HandleUpdate godoc
//
//	@Summary		Update Item
//	@Description	Applies a partial update to an item. Regular users can only update their own items.
//	@Tags			Items
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Item id"
//	@Param			request	body		apisdk.UpdateItemRequest	true	"Fields to change"
//	@Success		200		{object}	apisdk.Item					"the updated item"
//	@Failure		400		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	apisdk.ErrorResponse		"error, error_description"
//	@Router			/v1/items/{id} [put].
func (h *ItemsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request, user domain.User) {
	ctx := r.Context()

	var req apisdk.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	item, err := h.Items.UpdateItem(ctx, user, r.PathValue("id"), service.ItemUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeItemError(w, r, "update", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

// HandleDelete godoc
//
//	@Summary		Delete Item
//	@Description	Deletes an item. Regular users can only delete their own items.
//	@Tags			Items
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"Item id"
//	@Success		204	"item deleted"
//	@Failure		401	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	apisdk.ErrorResponse	"error, error_description"
//	@Router			/v1/items/{id} [delete].
func (h *ItemsHandler) HandleDelete(w http.ResponseWriter, r *http.Request, user domain.User) {
	if err := h.Items.DeleteItem(r.Context(), user, r.PathValue("id")); err != nil {
		writeItemError(w, r, "deletion", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
