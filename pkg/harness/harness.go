// Package harness owns the browser lifecycle and composes the helper set
// into per-test fixtures: each test gets an isolated browser context, an
// optionally pre-authenticated page, and diagnostic screenshots on failure.
package harness

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/airwave-qa/wavetest/pkg/config"
)

// Harness holds one browser shared by a suite. Contexts created from it
// are isolated (separate cookie/storage jars), so tests can run in
// parallel without sharing session state.
type Harness struct {
	cfg     *config.Config
	pw      *playwright.Playwright
	browser playwright.Browser

	// RunID identifies this harness run in log and artifact names.
	RunID string
}

// Install downloads the chromium browser the harness drives. Idempotent,
// used by the CLI and suite setup.
func Install() error {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return fmt.Errorf("install browsers: %w", err)
	}
	return nil
}

// New starts playwright and launches the browser per the configuration.
func New(cfg *config.Config) (*Harness, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("run playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	// slow motion only makes sense when a human is watching
	if !cfg.Headless && cfg.SlowMoMs > 0 {
		opts.SlowMo = playwright.Float(float64(cfg.SlowMoMs))
	}

	browser, err := pw.Chromium.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	return &Harness{
		cfg:     cfg,
		pw:      pw,
		browser: browser,
		RunID:   shortRunID(),
	}, nil
}

// Config returns the harness configuration.
func (h *Harness) Config() *config.Config {
	return h.cfg
}

// Close shuts the browser and playwright down.
func (h *Harness) Close() error {
	var firstErr error
	if h.browser != nil {
		if err := h.browser.Close(); err != nil {
			firstErr = fmt.Errorf("close browser: %w", err)
		}
	}
	if h.pw != nil {
		if err := h.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("stop playwright: %w", err)
		}
	}
	return firstErr
}

// NewPage creates an isolated browser context and page for a test. The
// context is closed on cleanup, and a full-page screenshot is captured
// into the artifacts dir first when the test has failed.
func (h *Harness) NewPage(t *testing.T) playwright.Page {
	t.Helper()

	ctx, err := h.browser.NewContext()
	require.NoError(t, err, "create browser context")

	page, err := ctx.NewPage()
	require.NoError(t, err, "create page")
	page.SetDefaultTimeout(float64(h.cfg.ActionTimeout() / time.Millisecond))

	t.Cleanup(func() {
		if t.Failed() {
			h.captureFailure(t, page)
		}
		_ = page.Close()
		_ = ctx.Close()
	})

	return page
}

// captureFailure writes a diagnostic screenshot for a failed test.
// best-effort: a screenshot failure is logged, never escalated, so it
// cannot mask the original test failure.
func (h *Harness) captureFailure(t *testing.T, page playwright.Page) {
	t.Helper()

	name := fmt.Sprintf("%s-%s.png", sanitizeName(t.Name()), h.RunID)
	path := filepath.Join(h.artifactsDir(), "screenshots", name)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		t.Logf("failure screenshot not captured: %v", err)
		return
	}
	t.Logf("failure screenshot: %s", path)
}

// artifactsDir returns the configured artifacts directory with a default.
func (h *Harness) artifactsDir() string {
	if h.cfg.ArtifactsDir != "" {
		return h.cfg.ArtifactsDir
	}
	return "test-results"
}

// sanitizeName makes a test name safe for use in a file name.
func sanitizeName(name string) string {
	r := strings.NewReplacer("/", "_", " ", "_", ":", "_")
	return r.Replace(name)
}

// shortRunID returns an 8-char run identifier.
func shortRunID() string {
	return uuid.NewString()[:8]
}
