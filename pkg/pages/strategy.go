package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Strategy wraps the AI content generation screen.
type Strategy struct {
	page    playwright.Page
	baseURL string
}

// NewStrategy creates the strategy page object.
func NewStrategy(page playwright.Page, baseURL string) *Strategy {
	return &Strategy{page: page, baseURL: baseURL}
}

// Open navigates to the generation route.
func (s *Strategy) Open() error {
	if _, err := s.page.Goto(s.baseURL + "/generate-enhanced"); err != nil {
		return fmt.Errorf("open strategy page: %w", err)
	}
	return nil
}

// BriefInput returns the campaign brief text area.
func (s *Strategy) BriefInput() playwright.Locator {
	return s.page.Locator(testID("brief-input")).First()
}

// GenerateButton returns the generation trigger.
func (s *Strategy) GenerateButton() playwright.Locator {
	return s.page.Locator(testID("generate-button")).First()
}

// MotivationCards returns the generated motivation options.
func (s *Strategy) MotivationCards() playwright.Locator {
	return s.page.Locator(testID("motivation-card"))
}

// GenerationSpinner returns the in-flight indicator shown while the
// backend produces options.
func (s *Strategy) GenerationSpinner() playwright.Locator {
	return s.page.Locator(testID("generation-spinner")).First()
}

// GenerateFromBrief fills the brief and starts a generation run.
func (s *Strategy) GenerateFromBrief(brief string) error {
	if err := s.BriefInput().Fill(brief); err != nil {
		return fmt.Errorf("fill brief: %w", err)
	}
	if err := s.GenerateButton().Click(); err != nil {
		return fmt.Errorf("start generation: %w", err)
	}
	return nil
}

// SelectMotivation clicks the nth generated option.
func (s *Strategy) SelectMotivation(n int) error {
	if err := s.MotivationCards().Nth(n).Click(); err != nil {
		return fmt.Errorf("select motivation %d: %w", n, err)
	}
	return nil
}
