package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Dashboard wraps the authenticated landing screen.
type Dashboard struct {
	page    playwright.Page
	baseURL string
}

// NewDashboard creates the dashboard page object.
func NewDashboard(page playwright.Page, baseURL string) *Dashboard {
	return &Dashboard{page: page, baseURL: baseURL}
}

// Open navigates to the dashboard route.
func (d *Dashboard) Open() error {
	if _, err := d.page.Goto(d.baseURL + "/dashboard"); err != nil {
		return fmt.Errorf("open dashboard: %w", err)
	}
	return nil
}

// WelcomeMessage returns the greeting element shown after login.
func (d *Dashboard) WelcomeMessage() playwright.Locator {
	return d.page.Locator(testID("welcome-message")).First()
}

// ClientSelector returns the client switcher control.
func (d *Dashboard) ClientSelector() playwright.Locator {
	return d.page.Locator(testID("client-selector")).First()
}

// ActiveClient returns the element showing the currently selected client.
func (d *Dashboard) ActiveClient() playwright.Locator {
	return d.page.Locator(testID("active-client")).First()
}

// NavLink returns the navigation link for a section, e.g. "assets".
func (d *Dashboard) NavLink(section string) playwright.Locator {
	return d.page.Locator(testID("nav-" + section)).First()
}

// GoToSection clicks a navigation link.
func (d *Dashboard) GoToSection(section string) error {
	if err := d.NavLink(section).Click(); err != nil {
		return fmt.Errorf("navigate to %s: %w", section, err)
	}
	return nil
}
