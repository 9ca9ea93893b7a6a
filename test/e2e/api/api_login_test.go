package api_test

import (
	"net/http"
	"testing"

	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/stretchr/testify/require"
)

// TestFirstSuperuserLogin verifies the bootstrapped superuser can log in and
// read its own account.
func TestFirstSuperuserLogin(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	session := loginAdmin(t, client)

	user, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, adminEmail, user.Email)
	require.Equal(t, adminFullName, user.FullName)
	require.True(t, user.Superuser, "First superuser should have the superuser flag")
	require.True(t, user.Active)

	t.Logf("First superuser logged in, user ID %s", user.ID)
}

// TestLoginFailuresIndistinguishable verifies a wrong password and an unknown
// account produce the same error, so login cannot be used to probe for
// registered emails.
func TestLoginFailuresIndistinguishable(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	ctx := t.Context()

	_, wrongPasswordErr := client.Login(ctx, adminEmail, "not-the-password")
	wrongPassword := assertAPIError(t, wrongPasswordErr, http.StatusUnauthorized, apisdk.ErrorCodeInvalidCredentials)

	_, unknownAccountErr := client.Login(ctx, "nobody@portside.test", "not-the-password")
	unknownAccount := assertAPIError(t, unknownAccountErr, http.StatusUnauthorized, apisdk.ErrorCodeInvalidCredentials)

	require.Equal(t, wrongPassword.Description, unknownAccount.Description,
		"Wrong password and unknown account must be indistinguishable")

	t.Logf("Login failures are indistinguishable: %q", wrongPassword.Description)
}

// TestGarbageTokenRejected verifies a made-up bearer token is rejected.
func TestGarbageTokenRejected(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	session := client.NewSessionFromToken("not-a-real-token")

	_, err := session.Me(t.Context())
	assertAPIError(t, err, http.StatusUnauthorized, apisdk.ErrorCodeInvalidToken)

	t.Logf("Garbage token correctly rejected")
}

// TestTokenSurvivesAcrossRequests verifies the same token keeps working for
// many calls; the server holds no per-session state.
func TestTokenSurvivesAcrossRequests(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	session := loginAdmin(t, client)

	// Rebuild the session from the bare token, as a client restart would.
	restored := client.NewSessionFromToken(session.AccessToken())

	for range 5 {
		user, err := restored.Me(t.Context())
		require.NoError(t, err)
		require.Equal(t, adminEmail, user.Email)
	}

	t.Logf("Token reused across requests and client restarts")
}
