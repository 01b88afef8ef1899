package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/airwave-qa/wavetest/pkg/wait"
)

// Auth wraps the login screen.
type Auth struct {
	page    playwright.Page
	baseURL string
}

// NewAuth creates the login page object.
func NewAuth(page playwright.Page, baseURL string) *Auth {
	return &Auth{page: page, baseURL: baseURL}
}

// Open navigates to the login route.
func (a *Auth) Open() error {
	if _, err := a.page.Goto(a.baseURL + "/login"); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	return nil
}

// EmailInput returns the email field.
func (a *Auth) EmailInput() playwright.Locator {
	return a.page.Locator(testID("email-input") + `, input[type="email"]`).First()
}

// PasswordInput returns the password field.
func (a *Auth) PasswordInput() playwright.Locator {
	return a.page.Locator(testID("password-input") + `, input[type="password"]`).First()
}

// SignInButton returns the submit control.
func (a *Auth) SignInButton() playwright.Locator {
	return a.page.Locator(testID("sign-in-button") + `, button[type="submit"]`).First()
}

// ErrorMessage returns the login error element.
func (a *Auth) ErrorMessage() playwright.Locator {
	return a.page.Locator(testID("error-message")).First()
}

// VerifyLoginPageElements checks that all login controls are present and
// visible, failing fast on the first missing one.
func (a *Auth) VerifyLoginPageElements() error {
	checks := []struct {
		name string
		loc  playwright.Locator
	}{
		{"email input", a.EmailInput()},
		{"password input", a.PasswordInput()},
		{"sign in button", a.SignInButton()},
	}
	for _, c := range checks {
		visible, err := c.loc.IsVisible()
		if err != nil {
			return fmt.Errorf("query %s: %w", c.name, err)
		}
		if !visible {
			return fmt.Errorf("%s not visible on login page", c.name)
		}
	}
	return nil
}

// LoginAndExpectError submits the given credentials and waits for the error
// element to become visible while the URL stays on the login route. Used
// for wrong-password journeys.
func (a *Auth) LoginAndExpectError(email, password string, timeout time.Duration) error {
	if err := a.EmailInput().Fill(email); err != nil {
		return fmt.Errorf("fill email: %w", err)
	}
	if err := a.PasswordInput().Fill(password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := a.SignInButton().Click(); err != nil {
		return fmt.Errorf("click sign in: %w", err)
	}

	if err := wait.Until("login error visible", timeout, 0, func() bool {
		visible, err := a.ErrorMessage().IsVisible()
		return err == nil && visible
	}); err != nil {
		return fmt.Errorf("expect login error: %w", err)
	}

	if !strings.Contains(a.page.URL(), "/login") {
		return fmt.Errorf("expected to stay on login route, got %s", a.page.URL())
	}
	return nil
}
