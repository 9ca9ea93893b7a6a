package apisdk

import (
	"context"
	"fmt"
	"net/http"
)

// Item operations. Regular users see and touch only their own items;
// superusers see and touch everything.

// ListItems returns one page of the caller's items plus the total count. For
// superusers the page spans all owners.
func (s *Session) ListItems(ctx context.Context, limit, offset int) (*ItemsPage, error) {
	path := fmt.Sprintf("/v1/items?limit=%d&offset=%d", limit, offset)
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var page ItemsPage
	if err := decodeJSON(resp, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateItem creates an item owned by the caller.
func (s *Session) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	resp, err := s.doAuthJSONRequest(ctx, http.MethodPost, "/v1/items", req)
	if err != nil {
		return nil, err
	}

	var item Item
	if err := decodeJSON(resp, &item, http.StatusCreated); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem fetches one item by id.
func (s *Session) GetItem(ctx context.Context, itemID string) (*Item, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/items/"+itemID, nil, nil)
	if err != nil {
		return nil, err
	}

	var item Item
	if err := decodeJSON(resp, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update to an item.
func (s *Session) UpdateItem(ctx context.Context, itemID string, req UpdateItemRequest) (*Item, error) {
	resp, err := s.doAuthJSONRequest(ctx, http.MethodPut, "/v1/items/"+itemID, req)
	if err != nil {
		return nil, err
	}

	var item Item
	if err := decodeJSON(resp, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes an item.
func (s *Session) DeleteItem(ctx context.Context, itemID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/items/"+itemID, nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
