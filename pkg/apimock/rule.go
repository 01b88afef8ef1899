// Package apimock intercepts and stubs the application's network calls so
// journeys can simulate backend success and failure deterministically.
// Every installed rule is tracked and removed by RestoreAll, which the
// constructor wires to test cleanup so mock leakage across tests is
// structurally impossible.
package apimock

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule describes one stubbed route: requests matching Pattern (and Method,
// when set) are fulfilled with the canned response instead of reaching the
// network.
type Rule struct {
	Pattern     string `yaml:"pattern"`                // URL glob, e.g. **/api/auth/login
	Method      string `yaml:"method,omitempty"`       // optional, empty matches any method
	Status      int    `yaml:"status"`                 // response status code
	ContentType string `yaml:"content_type,omitempty"` // defaults to application/json
	Body        string `yaml:"body,omitempty"`         // canned response body
}

// Validate rejects rules the helper cannot install.
func (r Rule) Validate() error {
	if r.Pattern == "" {
		return fmt.Errorf("mock rule: pattern is required")
	}
	if r.Status < 100 || r.Status > 599 {
		return fmt.Errorf("mock rule %s: invalid status %d", r.Pattern, r.Status)
	}
	if r.Method != "" {
		switch strings.ToUpper(r.Method) {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions:
		default:
			return fmt.Errorf("mock rule %s: unknown method %q", r.Pattern, r.Method)
		}
	}
	return nil
}

// contentType returns the response content type, defaulting to JSON.
func (r Rule) contentType() string {
	if r.ContentType != "" {
		return r.ContentType
	}
	return "application/json"
}

// matchesMethod reports whether the rule applies to the given request method.
func (r Rule) matchesMethod(method string) bool {
	return r.Method == "" || strings.EqualFold(r.Method, method)
}

// LoadRules reads a YAML rule file: a list of rules, validated before return.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path) //nolint:gosec // rule file path comes from the suite, not user input
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rules file %s, rule %d: %w", path, i+1, err)
		}
	}
	return rules, nil
}
