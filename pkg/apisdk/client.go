package apisdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a Portside API server. It covers the unauthenticated
// surface and creates authenticated Sessions via Login.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for a bearer token and returns an
// authenticated Session. The token is valid until its natural expiry; there
// is no refresh, re-login when it runs out.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	data := url.Values{
		"username": {email},
		"password": {password},
	}
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", strings.NewReader(data.Encode()), headers)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &Session{client: c, accessToken: tokenResp.AccessToken}, nil
}

// NewSessionFromToken creates a Session from an existing access token, e.g.
// one persisted from an earlier login.
func (c *Client) NewSessionFromToken(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// Signup registers a new account through the public signup endpoint.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	resp, err := c.doJSONRequest(ctx, http.MethodPost, "/v1/users/signup", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestPasswordRecovery asks the server to mail a recovery token to the
// given address. The server responds 202 whether or not the account exists.
func (c *Client) RequestPasswordRecovery(ctx context.Context, email string) error {
	resp, err := c.doJSONRequest(ctx, http.MethodPost, "/v1/auth/password-recovery", PasswordRecoveryRequest{Email: email})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusAccepted)
}

// ResetPassword consumes a recovery token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	resp, err := c.doJSONRequest(ctx, http.MethodPost, "/v1/auth/reset-password", ResetPasswordRequest{
		Token:       token,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

// Livez checks the liveness endpoint.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// Readyz checks the readiness endpoint, which pings the server's critical
// dependencies.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
