//go:build e2e

package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airwave-qa/wavetest/pkg/apimock"
	"github.com/airwave-qa/wavetest/pkg/harness"
)

func TestMockedLoginFailureSurfacesError(t *testing.T) {
	f := h.NewFixture(t)

	require.NoError(t, f.Mocks.Mock(mockRule("**/api/auth/login", "POST", 500, `{"error":"upstream exploded"}`)))

	require.NoError(t, f.Auth.Open())
	require.NoError(t, f.Auth.LoginAndExpectError(testEmail, testPassword, 10*time.Second))

	text, err := f.Auth.ErrorMessage().TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "upstream exploded")
	assert.Contains(t, f.Page.URL(), "/login", "failed login should not navigate away")
}

func TestUnrouteRestoresNetwork(t *testing.T) {
	f := h.NewFixture(t)

	const pattern = "**/api/auth/login"
	require.NoError(t, f.Mocks.Mock(mockRule(pattern, "POST", 503, `{"error":"stubbed outage"}`)))

	require.NoError(t, f.Auth.Open())
	require.NoError(t, f.Auth.LoginAndExpectError(testEmail, testPassword, 10*time.Second))

	// drop the stub, the very same credentials now reach the real backend
	require.NoError(t, f.Mocks.Unroute(pattern))
	require.NoError(t, f.Session.Login(testEmail, testPassword))
	assert.Contains(t, f.Page.URL(), "/dashboard")
}

func TestMockedResponseServed(t *testing.T) {
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Mocks.Mock(mockRule("**/api/health", "GET", 503, `{"status":"down"}`)))

	status, err := f.Page.Evaluate(`async () => (await fetch('/api/health')).status`)
	require.NoError(t, err)
	assert.EqualValues(t, 503, status)
}

func TestDefaultMocks(t *testing.T) {
	f := h.NewFixture(t)

	require.NoError(t, f.Mocks.SetupDefaultMocks())
	installed := f.Mocks.Installed()
	require.Len(t, installed, 2)
	assert.Contains(t, installed, "**/api/health")
	assert.Contains(t, installed, "**/api/auth/login")

	// stub the dashboard document as well, so the post-login navigation
	// never reaches the real backend either
	require.NoError(t, f.Mocks.Mock(apimock.Rule{
		Pattern:     "**/dashboard",
		Method:      "GET",
		Status:      200,
		ContentType: "text/html",
		Body:        `<html><body><h1 data-testid="welcome-message">Welcome back</h1></body></html>`,
	}))

	// stubbed auth short-circuits the backend entirely
	require.NoError(t, f.Session.Login("nobody@example.com", "not-a-real-password"))
	assert.Contains(t, f.Page.URL(), "/dashboard")
}

func TestRestoreAllIdempotent(t *testing.T) {
	f := h.NewFixture(t)

	require.NoError(t, f.Mocks.SetupDefaultMocks())
	require.NotEmpty(t, f.Mocks.Installed())

	require.NoError(t, f.Mocks.RestoreAll())
	assert.Empty(t, f.Mocks.Installed())
	require.NoError(t, f.Mocks.RestoreAll(), "second restore is a no-op")
}
