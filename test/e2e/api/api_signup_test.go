package api_test

import (
	"net/http"
	"testing"

	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/stretchr/testify/require"
)

// TestSignupAndLogin verifies open registration end to end: sign up, log in,
// read and update the profile.
func TestSignupAndLogin(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	ctx := t.Context()

	user, err := client.Signup(ctx, apisdk.SignupRequest{
		Email:    "sailor@portside.test",
		Password: "Sailor123!pass",
		FullName: "Able Sailor",
	})
	require.NoError(t, err)
	require.Equal(t, "sailor@portside.test", user.Email)
	require.True(t, user.Active, "Signup should create an active account")
	require.False(t, user.Superuser, "Signup must never create a superuser")

	session, err := client.Login(ctx, "sailor@portside.test", "Sailor123!pass")
	require.NoError(t, err)

	name := "Able Seaman"
	updated, err := session.UpdateMe(ctx, apisdk.UpdateMeRequest{FullName: &name})
	require.NoError(t, err)
	require.Equal(t, "Able Seaman", updated.FullName)

	t.Logf("Signed up, logged in and updated profile for user %s", user.ID)
}

// TestSignupDuplicateEmail verifies a taken address is reported as a conflict.
func TestSignupDuplicateEmail(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	ctx := t.Context()

	req := apisdk.SignupRequest{
		Email:    "dup@portside.test",
		Password: "Sailor123!pass",
		FullName: "First In",
	}
	_, err := client.Signup(ctx, req)
	require.NoError(t, err)

	_, err = client.Signup(ctx, req)
	assertAPIError(t, err, http.StatusConflict, apisdk.ErrorCodeEmailTaken)

	t.Logf("Duplicate signup correctly rejected")
}

// TestSignupClosedByDefault verifies registration is rejected when the
// deployment does not opt in to open registration.
func TestSignupClosedByDefault(t *testing.T) {
	baseURL, cleanup := setupAPIContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)

	_, err := client.Signup(t.Context(), apisdk.SignupRequest{
		Email:    "walkup@portside.test",
		Password: "Sailor123!pass",
		FullName: "Walk Up",
	})
	assertAPIError(t, err, http.StatusForbidden, apisdk.ErrorCodeRegistrationDisabled)

	t.Logf("Signup correctly closed by default")
}

// TestPasswordChange verifies the self-service password change flow, including
// re-verification of the current password.
func TestPasswordChange(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := client.Signup(ctx, apisdk.SignupRequest{
		Email:    "rotate@portside.test",
		Password: "OldPass123!x",
		FullName: "Rotating User",
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, "rotate@portside.test", "OldPass123!x")
	require.NoError(t, err)

	// Wrong current password is rejected.
	err = session.UpdateMyPassword(ctx, "guessed-wrong", "NewPass123!x")
	assertAPIError(t, err, http.StatusUnauthorized, apisdk.ErrorCodeInvalidCredentials)

	require.NoError(t, session.UpdateMyPassword(ctx, "OldPass123!x", "NewPass123!x"))

	// Old password no longer works, the new one does.
	_, err = client.Login(ctx, "rotate@portside.test", "OldPass123!x")
	assertAPIError(t, err, http.StatusUnauthorized, apisdk.ErrorCodeInvalidCredentials)

	_, err = client.Login(ctx, "rotate@portside.test", "NewPass123!x")
	require.NoError(t, err)

	t.Logf("Password change flow verified")
}

// TestDeleteOwnAccount verifies self-deletion for regular users and the
// superuser self-deletion guard.
func TestDeleteOwnAccount(t *testing.T) {
	baseURL, cleanup := setupAPIContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := client.Signup(ctx, apisdk.SignupRequest{
		Email:    "leaver@portside.test",
		Password: "Leaver123!pass",
		FullName: "Leaving User",
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, "leaver@portside.test", "Leaver123!pass")
	require.NoError(t, err)

	require.NoError(t, session.DeleteMe(ctx))

	// The deleted account's token no longer resolves to a user.
	_, err = session.Me(ctx)
	assertAPIError(t, err, http.StatusUnauthorized, apisdk.ErrorCodePrincipalNotFound)

	// Superusers cannot delete themselves.
	admin := loginAdmin(t, client)
	err = admin.DeleteMe(ctx)
	assertAPIError(t, err, http.StatusForbidden, apisdk.ErrorCodeInvalidRequest)

	t.Logf("Self-deletion verified, superuser self-deletion blocked")
}
