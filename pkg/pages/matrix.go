package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Matrix wraps the campaign matrix screen where asset combinations are
// assembled and sent to the video renderer.
type Matrix struct {
	page    playwright.Page
	baseURL string
}

// NewMatrix creates the matrix page object.
func NewMatrix(page playwright.Page, baseURL string) *Matrix {
	return &Matrix{page: page, baseURL: baseURL}
}

// Open navigates to the matrix route.
func (m *Matrix) Open() error {
	if _, err := m.page.Goto(m.baseURL + "/matrix"); err != nil {
		return fmt.Errorf("open matrix page: %w", err)
	}
	return nil
}

// Grid returns the combination grid container.
func (m *Matrix) Grid() playwright.Locator {
	return m.page.Locator(testID("matrix-grid")).First()
}

// Rows returns all combination rows.
func (m *Matrix) Rows() playwright.Locator {
	return m.page.Locator(testID("matrix-row"))
}

// AddRowButton returns the control that adds a combination row.
func (m *Matrix) AddRowButton() playwright.Locator {
	return m.page.Locator(testID("add-row-button")).First()
}

// RenderButton returns the control that starts a render.
func (m *Matrix) RenderButton() playwright.Locator {
	return m.page.Locator(testID("render-button")).First()
}

// RenderProgressBar returns the progress indicator fed by the realtime
// channel during a render.
func (m *Matrix) RenderProgressBar() playwright.Locator {
	return m.page.Locator(testID("render-progress-bar")).First()
}

// RenderStatus returns the textual render stage label.
func (m *Matrix) RenderStatus() playwright.Locator {
	return m.page.Locator(testID("render-status")).First()
}

// StartRender kicks off rendering of the current matrix.
func (m *Matrix) StartRender() error {
	if err := m.RenderButton().Click(); err != nil {
		return fmt.Errorf("start render: %w", err)
	}
	return nil
}
