package apisdk

import (
	"context"
	"net/http"
)

// Session is an authenticated handle on the API. Tokens are stateless and
// never refreshed: when the token expires the server answers 401
// "token_expired" and the caller logs in again. Sessions are safe for
// concurrent use.
type Session struct {
	client      *Client
	accessToken string
}

// AccessToken returns the bearer token backing this session, e.g. for
// persisting across restarts.
func (s *Session) AccessToken() string {
	return s.accessToken
}

// Me returns the account of the authenticated user.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe applies a partial update to the authenticated user's profile.
func (s *Session) UpdateMe(ctx context.Context, req UpdateMeRequest) (*User, error) {
	resp, err := s.doAuthJSONRequest(ctx, http.MethodPatch, "/v1/users/me", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMyPassword changes the authenticated user's password. The current
// password is re-verified server-side.
func (s *Session) UpdateMyPassword(ctx context.Context, currentPassword, newPassword string) error {
	resp, err := s.doAuthJSONRequest(ctx, http.MethodPut, "/v1/users/me/password", UpdatePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

// DeleteMe deletes the authenticated user's account. Superusers cannot
// delete themselves.
func (s *Session) DeleteMe(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/users/me", nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
