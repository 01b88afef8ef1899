// Package session owns authentication against the target application:
// login/logout, demo-mode detection, session-cookie checks and the client
// switcher. All waits are bounded, helpers surface typed errors on expiry
// instead of hanging.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/airwave-qa/wavetest/pkg/wait"
)

// selectors for the auth surface. data-testid is the primary strategy,
// CSS fallbacks cover older builds of the application.
const (
	emailInput     = `[data-testid="email-input"], input[type="email"]`
	passwordInput  = `[data-testid="password-input"], input[type="password"]`
	signInButton   = `[data-testid="sign-in-button"], button[type="submit"]`
	signOutButton  = `[data-testid="sign-out-button"]`
	userMenuButton = `[data-testid="user-menu-button"]`
	clientSelector = `[data-testid="client-selector"]`
	clientOption   = `[data-testid="client-option"]`
	demoBanner     = `[data-testid="demo-mode-banner"]`
)

// Options configures a session Helper. Zero timeouts fall back to the
// wait package defaults.
type Options struct {
	BaseURL    string        // target application base URL, no trailing slash
	LoginPath  string        // login route, e.g. /login
	HomePath   string        // authenticated landing route, e.g. /dashboard
	Email      string        // test account email
	Password   string        // test account password
	CookieName string        // session cookie name, e.g. airwave_session
	Timeout    time.Duration // bounded wait for redirects and options
	Interval   time.Duration // condition polling interval
}

// Helper drives login state on a single page. The test owns the page,
// the helper borrows it for the test's duration.
type Helper struct {
	page playwright.Page
	opts Options
}

// New creates a session helper for the given page.
func New(page playwright.Page, opts Options) *Helper {
	return &Helper{page: page, opts: opts}
}

// Login navigates to the login route, submits the given credentials and
// waits for the redirect to the authenticated landing route. Returns
// *LoginTimeoutError if the redirect does not happen within the bounded wait.
func (h *Helper) Login(email, password string) error {
	if _, err := h.page.Goto(h.opts.BaseURL + h.opts.LoginPath); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}

	if err := h.page.Locator(emailInput).First().Fill(email); err != nil {
		return fmt.Errorf("fill email: %w", err)
	}
	if err := h.page.Locator(passwordInput).First().Fill(password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := h.page.Locator(signInButton).First().Click(); err != nil {
		return fmt.Errorf("click sign in: %w", err)
	}

	err := wait.Until("login redirect", h.opts.Timeout, h.opts.Interval, h.onHomeRoute)
	if err != nil {
		var te *wait.TimeoutError
		if errors.As(err, &te) {
			return &LoginTimeoutError{Elapsed: te.Elapsed}
		}
		return err
	}
	return nil
}

// EnsureLoggedIn establishes a session if one does not exist yet.
// idempotent: when the session cookie is already present the login form is
// not re-submitted.
func (h *Helper) EnsureLoggedIn() error {
	if h.HasSession() {
		return nil
	}
	return h.Login(h.opts.Email, h.opts.Password)
}

// HasSession reports whether the session cookie is present in the
// browser context. Errors reading cookies count as no session.
func (h *Helper) HasSession() bool {
	cookies, err := h.page.Context().Cookies()
	if err != nil {
		return false
	}
	for _, c := range cookies {
		if c.Name == h.opts.CookieName && c.Value != "" {
			return true
		}
	}
	return false
}

// IsInDemoMode inspects the page-injected demo-mode marker. Never errors,
// returns false on any ambiguity.
func (h *Helper) IsInDemoMode() bool {
	res, err := h.page.Evaluate(`() => {
		const m = document.querySelector('meta[name="demo-mode"]');
		return m ? m.content : "";
	}`)
	if err == nil {
		if s, ok := res.(string); ok && s == "true" {
			return true
		}
	}

	// fallback for builds that render a banner instead of the meta tag
	visible, err := h.page.Locator(demoBanner).IsVisible()
	if err != nil {
		return false
	}
	return visible
}

// SelectClient opens the client switcher and picks the option matching name.
// Returns *ClientNotFoundError if no matching option appears within the
// bounded retry window.
func (h *Helper) SelectClient(name string) error {
	if err := h.page.Locator(clientSelector).First().Click(); err != nil {
		return fmt.Errorf("open client switcher: %w", err)
	}

	// options may be populated asynchronously, poll until the named one shows up
	var clicked bool
	err := wait.Until("client option "+name, h.opts.Timeout, h.opts.Interval, func() bool {
		options := h.page.Locator(clientOption)
		count, err := options.Count()
		if err != nil || count == 0 {
			return false
		}
		for i := 0; i < count; i++ {
			text, err := options.Nth(i).TextContent()
			if err != nil {
				continue
			}
			if strings.Contains(strings.TrimSpace(text), name) {
				if err := options.Nth(i).Click(); err != nil {
					return false
				}
				clicked = true
				return true
			}
		}
		return false
	})
	if err != nil || !clicked {
		return &ClientNotFoundError{Name: name}
	}
	return nil
}

// Logout ends the session through the user menu and waits for the redirect
// back to the login route.
func (h *Helper) Logout() error {
	if err := h.page.Locator(userMenuButton).First().Click(); err != nil {
		return fmt.Errorf("open user menu: %w", err)
	}
	if err := h.page.Locator(signOutButton).First().Click(); err != nil {
		return fmt.Errorf("click sign out: %w", err)
	}

	if err := wait.Until("logout redirect", h.opts.Timeout, h.opts.Interval, func() bool {
		return strings.Contains(h.page.URL(), h.opts.LoginPath)
	}); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// onHomeRoute reports whether the page has reached the authenticated
// landing route.
func (h *Helper) onHomeRoute() bool {
	return strings.Contains(h.page.URL(), h.opts.HomePath)
}
