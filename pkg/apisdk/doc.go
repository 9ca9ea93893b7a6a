/*
Package apisdk provides a typed Go client for the Portside API.

# Overview

The package is organized around two types:

  - Client: unauthenticated operations (login, signup, password recovery,
    health checks) and the entry point for creating Sessions
  - Session: authenticated operations carrying a bearer token

Create a Client to reach the public surface and log in:

	client := apisdk.NewClient("https://api.example.com")

	// Check service health
	health, err := client.Livez(ctx)

	// Register an account (when open registration is enabled)
	user, err := client.Signup(ctx, apisdk.SignupRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice",
	})

	// Log in to create a session
	session, err := client.Login(ctx, "alice@example.com", "correct-horse")

Use the Session for everything behind authentication:

	me, err := session.Me(ctx)

	item, err := session.CreateItem(ctx, apisdk.CreateItemRequest{Title: "Mainsail"})

	page, err := session.ListItems(ctx, 50, 0)

Superuser sessions additionally get the user administration surface
(ListUsers, CreateUser, GetUser, UpdateUser, DeleteUser); regular sessions
receive 403 "insufficient_privilege" there.

# Tokens

Access tokens are stateless JWTs with a fixed lifetime and no refresh
mechanism. When a token expires the server answers 401 with the
"token_expired" error code; handle it by logging in again:

	_, err := session.Me(ctx)
	var apiErr *apisdk.Error
	if errors.As(err, &apiErr) && apiErr.Code == apisdk.ErrorCodeTokenExpired {
		session, err = client.Login(ctx, email, password)
	}

A token can be persisted and resumed across process restarts:

	token := session.AccessToken()
	// ... later ...
	session = client.NewSessionFromToken(token)

# Error Handling

Every failed call returns a *apisdk.Error carrying the HTTP status, the
machine-readable code and the server's description:

	_, err := client.Login(ctx, email, password)
	var apiErr *apisdk.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case apisdk.ErrorCodeInvalidCredentials:
			// wrong email or password
		case apisdk.ErrorCodeRateLimitExceeded:
			// back off and retry later
		}
	}

# Password Recovery

The recovery flow is two calls. The first always succeeds with 202 so it
cannot be used to probe which addresses are registered:

	err := client.RequestPasswordRecovery(ctx, "alice@example.com")

	// The token arrives by email.
	err = client.ResetPassword(ctx, token, "new-password")
*/
package apisdk
