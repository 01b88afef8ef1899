package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Assets wraps the asset library screen.
type Assets struct {
	page    playwright.Page
	baseURL string
}

// NewAssets creates the assets page object.
func NewAssets(page playwright.Page, baseURL string) *Assets {
	return &Assets{page: page, baseURL: baseURL}
}

// Open navigates to the assets route.
func (a *Assets) Open() error {
	if _, err := a.page.Goto(a.baseURL + "/assets"); err != nil {
		return fmt.Errorf("open assets page: %w", err)
	}
	return nil
}

// UploadButton returns the upload trigger.
func (a *Assets) UploadButton() playwright.Locator {
	return a.page.Locator(testID("upload-button")).First()
}

// UploadModal returns the upload dialog.
func (a *Assets) UploadModal() playwright.Locator {
	return a.page.Locator(testID("upload-modal")).First()
}

// Dropzone returns the drag-and-drop target inside the upload dialog.
func (a *Assets) Dropzone() playwright.Locator {
	return a.page.Locator(testID("upload-dropzone")).First()
}

// Grid returns the asset grid container.
func (a *Assets) Grid() playwright.Locator {
	return a.page.Locator(testID("asset-grid")).First()
}

// Cards returns all asset cards in the grid.
func (a *Assets) Cards() playwright.Locator {
	return a.page.Locator(testID("asset-card"))
}

// SearchInput returns the asset search field.
func (a *Assets) SearchInput() playwright.Locator {
	return a.page.Locator(testID("asset-search-input")).First()
}

// OpenUploadModal clicks the upload trigger, which opens the dialog with
// the file input and dropzone.
func (a *Assets) OpenUploadModal() error {
	if err := a.UploadButton().Click(); err != nil {
		return fmt.Errorf("open upload modal: %w", err)
	}
	return nil
}

// Search fills the search field, narrowing the grid.
func (a *Assets) Search(query string) error {
	if err := a.SearchInput().Fill(query); err != nil {
		return fmt.Errorf("search assets: %w", err)
	}
	return nil
}
