package apimock

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// cleaner is the slice of testing.T the helper needs for guaranteed cleanup.
type cleaner interface {
	Cleanup(func())
}

// Helper installs and removes stub routes on a single page.
type Helper struct {
	page playwright.Page

	mu       sync.Mutex
	patterns []string // installed patterns, unrouted by RestoreAll
}

// New creates a mock helper for the given page. When t is non-nil,
// RestoreAll is registered as a cleanup so no stub outlives its test.
func New(t cleaner, page playwright.Page) *Helper {
	h := &Helper{page: page}
	if t != nil {
		t.Cleanup(func() { _ = h.RestoreAll() })
	}
	return h
}

// Mock intercepts requests matching the rule and fulfills them with the
// canned response. Requests on the same pattern with a non-matching method
// continue to the network untouched.
func (h *Helper) Mock(rule Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	err := h.page.Route(rule.Pattern, func(route playwright.Route) {
		if !rule.matchesMethod(route.Request().Method()) {
			_ = route.Continue()
			return
		}
		_ = route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(rule.Status),
			ContentType: playwright.String(rule.contentType()),
			Body:        rule.Body,
		})
	})
	if err != nil {
		return fmt.Errorf("route %s: %w", rule.Pattern, err)
	}

	h.mu.Lock()
	h.patterns = append(h.patterns, rule.Pattern)
	h.mu.Unlock()
	return nil
}

// MockAll installs every rule, stopping at the first failure.
func (h *Helper) MockAll(rules []Rule) error {
	for _, r := range rules {
		if err := h.Mock(r); err != nil {
			return err
		}
	}
	return nil
}

// Unroute removes stubs for the given pattern, restoring real network
// behavior for subsequent requests.
func (h *Helper) Unroute(pattern string) error {
	if err := h.page.Unroute(pattern); err != nil {
		return fmt.Errorf("unroute %s: %w", pattern, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.patterns[:0]
	for _, p := range h.patterns {
		if p != pattern {
			kept = append(kept, p)
		}
	}
	h.patterns = kept
	return nil
}

// RestoreAll removes every stub this helper installed. Safe to call
// multiple times.
func (h *Helper) RestoreAll() error {
	h.mu.Lock()
	patterns := h.patterns
	h.patterns = nil
	h.mu.Unlock()

	var firstErr error
	for _, p := range patterns {
		if err := h.page.Unroute(p); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unroute %s: %w", p, err)
		}
	}
	return firstErr
}

// Installed returns the patterns currently stubbed, in installation order.
func (h *Helper) Installed() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	res := make([]string, len(h.patterns))
	copy(res, h.patterns)
	return res
}

// DefaultRules is the baseline stub set: successful auth and health, so
// journeys that do not care about the backend are not coupled to a live one.
var DefaultRules = []Rule{
	{
		Pattern: "**/api/health",
		Method:  "GET",
		Status:  200,
		Body:    `{"status":"ok"}`,
	},
	{
		Pattern: "**/api/auth/login",
		Method:  "POST",
		Status:  200,
		Body:    `{"ok":true,"redirect":"/dashboard"}`,
	},
}

// SetupDefaultMocks installs the baseline stub set.
func (h *Helper) SetupDefaultMocks() error {
	return h.MockAll(DefaultRules)
}
