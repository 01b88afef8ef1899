package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// ClientData holds the fields of the client creation form.
type ClientData struct {
	Name     string
	Industry string
	Website  string
}

// Clients wraps the client management screen.
type Clients struct {
	page    playwright.Page
	baseURL string
}

// NewClients creates the clients page object.
func NewClients(page playwright.Page, baseURL string) *Clients {
	return &Clients{page: page, baseURL: baseURL}
}

// Open navigates to the clients route.
func (c *Clients) Open() error {
	if _, err := c.page.Goto(c.baseURL + "/clients"); err != nil {
		return fmt.Errorf("open clients page: %w", err)
	}
	return nil
}

// ClientList returns the list container.
func (c *Clients) ClientList() playwright.Locator {
	return c.page.Locator(testID("client-list")).First()
}

// ClientRows returns all client entries in the list.
func (c *Clients) ClientRows() playwright.Locator {
	return c.page.Locator(testID("client-row"))
}

// CreateButton returns the new-client trigger.
func (c *Clients) CreateButton() playwright.Locator {
	return c.page.Locator(testID("create-client-button")).First()
}

// NameInput returns the client name field of the creation form.
func (c *Clients) NameInput() playwright.Locator {
	return c.page.Locator(testID("client-name-input")).First()
}

// IndustryInput returns the industry field.
func (c *Clients) IndustryInput() playwright.Locator {
	return c.page.Locator(testID("client-industry-input")).First()
}

// WebsiteInput returns the website field.
func (c *Clients) WebsiteInput() playwright.Locator {
	return c.page.Locator(testID("client-website-input")).First()
}

// SaveButton returns the form submit control.
func (c *Clients) SaveButton() playwright.Locator {
	return c.page.Locator(testID("save-client-button")).First()
}

// CreateClient fills and submits the client creation form in one user step.
func (c *Clients) CreateClient(data ClientData) error {
	if err := c.CreateButton().Click(); err != nil {
		return fmt.Errorf("open client form: %w", err)
	}
	if err := c.NameInput().Fill(data.Name); err != nil {
		return fmt.Errorf("fill client name: %w", err)
	}
	if data.Industry != "" {
		if err := c.IndustryInput().Fill(data.Industry); err != nil {
			return fmt.Errorf("fill industry: %w", err)
		}
	}
	if data.Website != "" {
		if err := c.WebsiteInput().Fill(data.Website); err != nil {
			return fmt.Errorf("fill website: %w", err)
		}
	}
	if err := c.SaveButton().Click(); err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	return nil
}
