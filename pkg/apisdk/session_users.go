package apisdk

import (
	"context"
	"fmt"
	"net/http"
)

// User administration. Every operation here requires a superuser session;
// the server answers 403 "insufficient_privilege" otherwise.

// ListUsers returns one page of users plus the total count.
func (s *Session) ListUsers(ctx context.Context, limit, offset int) (*UsersPage, error) {
	path := fmt.Sprintf("/v1/users?limit=%d&offset=%d", limit, offset)
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var page UsersPage
	if err := decodeJSON(resp, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateUser creates an account, optionally a superuser one.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	resp, err := s.doAuthJSONRequest(ctx, http.MethodPost, "/v1/users", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches one user by id.
func (s *Session) GetUser(ctx context.Context, userID string) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/"+userID, nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to any account, including password,
// active and superuser changes.
func (s *Session) UpdateUser(ctx context.Context, userID string, req AdminUpdateUserRequest) (*User, error) {
	resp, err := s.doAuthJSONRequest(ctx, http.MethodPatch, "/v1/users/"+userID, req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes an account and, with it, the items it owns.
func (s *Session) DeleteUser(ctx context.Context, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/users/"+userID, nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
