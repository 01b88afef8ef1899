package harness

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/airwave-qa/wavetest/pkg/apimock"
	"github.com/airwave-qa/wavetest/pkg/files"
	"github.com/airwave-qa/wavetest/pkg/pages"
	"github.com/airwave-qa/wavetest/pkg/realtime"
	"github.com/airwave-qa/wavetest/pkg/session"
)

// Fixture is the ready-to-use dependency set a test receives: one page in
// an isolated context plus every helper and page object bound to it.
// Realtime listeners are installed before any navigation, so no socket
// event opened by the page is missed.
type Fixture struct {
	Page playwright.Page

	Session  *session.Helper
	Files    *files.Helper
	Mocks    *apimock.Helper
	Realtime *realtime.Monitor

	Auth      *pages.Auth
	Dashboard *pages.Dashboard
	Clients   *pages.Clients
	Assets    *pages.Assets
	Strategy  *pages.Strategy
	Matrix    *pages.Matrix
}

// Option adjusts fixture construction.
type Option func(*fixtureOpts)

type fixtureOpts struct {
	preAuth bool
}

// PreAuthenticated logs the fixture in during construction, so the test
// starts on an established session. Tests that mutate session state
// (logout, token clearing) should take a plain fixture instead and own
// their session lifecycle.
func PreAuthenticated() Option {
	return func(o *fixtureOpts) { o.preAuth = true }
}

// NewFixture composes a fixture on a fresh isolated context. Cleanup of
// the page, context and installed mocks is registered on t.
func (h *Harness) NewFixture(t *testing.T, opts ...Option) *Fixture {
	t.Helper()

	var fo fixtureOpts
	for _, opt := range opts {
		opt(&fo)
	}

	cfg := h.cfg
	page := h.NewPage(t)

	f := &Fixture{
		Page: page,
		Session: session.New(page, session.Options{
			BaseURL:    cfg.BaseURL,
			LoginPath:  cfg.LoginPath,
			HomePath:   cfg.HomePath,
			Email:      cfg.TestEmail,
			Password:   cfg.TestPassword,
			CookieName: cfg.SessionCookie,
			Timeout:    cfg.NavTimeout(),
			Interval:   cfg.PollInterval(),
		}),
		Files: files.New(page, files.Options{
			Timeout:  cfg.ActionTimeout(),
			Interval: cfg.PollInterval(),
		}),
		Mocks: apimock.New(t, page),
		Realtime: realtime.New(realtime.Options{
			Timeout:  cfg.NavTimeout(),
			Interval: cfg.PollInterval(),
		}),
		Auth:      pages.NewAuth(page, cfg.BaseURL),
		Dashboard: pages.NewDashboard(page, cfg.BaseURL),
		Clients:   pages.NewClients(page, cfg.BaseURL),
		Assets:    pages.NewAssets(page, cfg.BaseURL),
		Strategy:  pages.NewStrategy(page, cfg.BaseURL),
		Matrix:    pages.NewMatrix(page, cfg.BaseURL),
	}

	// hooks must be in place before the first navigation opens a socket
	f.Realtime.Attach(page)

	if fo.preAuth {
		require.NoError(t, f.Session.EnsureLoggedIn(), "pre-authenticate fixture")
	}

	return f
}
