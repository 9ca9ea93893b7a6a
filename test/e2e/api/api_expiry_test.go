package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/portside-dev/portside/pkg/apisdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupShortTTLContainer starts the API with a 2 second access token TTL so
// expiry can be observed within a test run.
func setupShortTTLContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"API_SECRET":                   tokenSecret,
			"API_ISSUER":                   "portside-api",
			"API_ACCESS_TTL":               "2s",
			"API_DATABASE_FILE":            "/api.db",
			"API_PEPPER_FILE":              "/pepper",
			"API_FIRST_SUPERUSER":          adminEmail,
			"API_FIRST_SUPERUSER_PASSWORD": adminPassword,
			"API_FIRST_SUPERUSER_NAME":     adminFullName,
			"ENV":                          "test",
			"LOG_LEVEL":                    "info",
			"LOG_FORMAT":                   "json",
			"RATELIMIT_STRICT_REQUESTS":    "1000",
			"RATELIMIT_STRICT_WINDOW_SEC":  "60",
			"RATELIMIT_STRICT_BURST":       "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// TestTokenExpiry verifies a token works until its TTL elapses and is then
// rejected as expired, distinct from an invalid token.
func TestTokenExpiry(t *testing.T) {
	baseURL, cleanup := setupShortTTLContainer(t)
	defer cleanup()

	client := apisdk.NewClient(baseURL)
	session := loginAdmin(t, client)

	// Fresh token works.
	_, err := session.Me(t.Context())
	require.NoError(t, err)

	// After the TTL elapses the same token is rejected as expired. The buffer
	// over 2s absorbs clock skew between host and container.
	time.Sleep(4 * time.Second)

	_, err = session.Me(t.Context())
	assertAPIError(t, err, http.StatusUnauthorized, apisdk.ErrorCodeTokenExpired)

	// Expiry is not a lockout: logging in again issues a fresh working token.
	session = loginAdmin(t, client)
	_, err = session.Me(t.Context())
	require.NoError(t, err)

	t.Logf("Token expiry verified with a short TTL deployment")
}
