// Package render provides terminal rendering for run reports.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders markdown content for terminal display.
// If noColor is true, returns the content unchanged.
// Otherwise, uses glamour to render with auto-detected style and word wrap.
func Markdown(content string, noColor bool) (string, error) {
	if noColor {
		return content, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	result, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	return result, nil
}

// CheckResult holds the outcome of a single preflight check for the report.
type CheckResult struct {
	Name    string
	Passed  bool
	Details string
}

// RunSummary builds a markdown report from check results. The report is
// intended for Markdown rendering in the terminal or for posting as-is.
func RunSummary(target string, elapsed string, results []CheckResult) string {
	var b strings.Builder

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}

	fmt.Fprintf(&b, "# Wavetest Report\n\n")
	fmt.Fprintf(&b, "- target: `%s`\n", target)
	fmt.Fprintf(&b, "- checks: %d/%d passed\n", passed, len(results))
	if elapsed != "" {
		fmt.Fprintf(&b, "- elapsed: %s\n", elapsed)
	}
	b.WriteString("\n")

	for _, r := range results {
		mark := "PASS"
		if !r.Passed {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "- **%s** %s", mark, r.Name)
		if r.Details != "" {
			fmt.Fprintf(&b, ": %s", r.Details)
		}
		b.WriteString("\n")
	}

	return b.String()
}
