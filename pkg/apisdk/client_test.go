package apisdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	client := NewClient("https://api.example.com/")
	require.Equal(t, "https://api.example.com", client.BaseURL)
	require.NotNil(t, client.HTTPClient)
}

func TestClientLogin(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/auth/login", r.URL.Path)
		require.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")

		require.NoError(t, r.ParseForm())
		require.Equal(t, "alice@example.com", r.Form.Get("username"))
		require.Equal(t, "correct horse", r.Form.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: "token-123",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	session, err := client.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "token-123", session.AccessToken())
}

func TestClientLoginError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:            ErrorCodeInvalidCredentials,
			ErrorDescription: "incorrect email or password",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
	require.Equal(t, "incorrect email or password", apiErr.Description)
}

func TestClientNonJSONError(t *testing.T) {
	t.Parallel()

	// A proxy in front of the API may answer with a plain text page. The
	// client still surfaces a typed error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Livez(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestSessionRequests(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.Method + " " + r.URL.Path {
		case "GET /v1/users/me":
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Email: "alice@example.com"})
		case "POST /v1/items":
			require.Contains(t, r.Header.Get("Content-Type"), "application/json")
			var req CreateItemRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "Mainsail", req.Title)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Item{ID: "i1", Title: req.Title, OwnerID: "u1"})
		case "GET /v1/items":
			require.Equal(t, "10", r.URL.Query().Get("limit"))
			require.Equal(t, "20", r.URL.Query().Get("offset"))
			_ = json.NewEncoder(w).Encode(ItemsPage{Items: []Item{{ID: "i1"}}, Count: 1})
		case "DELETE /v1/items/i1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	session := client.NewSessionFromToken("token-123")
	ctx := context.Background()

	user, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)

	item, err := session.CreateItem(ctx, CreateItemRequest{Title: "Mainsail"})
	require.NoError(t, err)
	require.Equal(t, "i1", item.ID)

	page, err := session.ListItems(ctx, 10, 20)
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)
	require.Len(t, page.Items, 1)

	require.NoError(t, session.DeleteItem(ctx, "i1"))
}

func TestSessionForbidden(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		ErrInsufficientPrivilege.WriteError(w)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	session := client.NewSessionFromToken("token-123")

	_, err := session.ListUsers(context.Background(), 50, 0)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInsufficientPrivilege, apiErr.Code)
}
