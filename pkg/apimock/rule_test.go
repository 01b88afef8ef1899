package apimock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		errPart string
	}{
		{"valid json rule", Rule{Pattern: "**/api/health", Status: 200}, ""},
		{"valid with method", Rule{Pattern: "**/api/auth/login", Method: "POST", Status: 500}, ""},
		{"lowercase method accepted", Rule{Pattern: "**/api/x", Method: "get", Status: 200}, ""},
		{"missing pattern", Rule{Status: 200}, "pattern is required"},
		{"status too low", Rule{Pattern: "**/x", Status: 42}, "invalid status"},
		{"status too high", Rule{Pattern: "**/x", Status: 700}, "invalid status"},
		{"unknown method", Rule{Pattern: "**/x", Method: "FETCH", Status: 200}, "unknown method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.errPart == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestRule_ContentType(t *testing.T) {
	assert.Equal(t, "application/json", Rule{}.contentType())
	assert.Equal(t, "text/html", Rule{ContentType: "text/html"}.contentType())
}

func TestRule_MatchesMethod(t *testing.T) {
	assert.True(t, Rule{}.matchesMethod("GET"), "empty method matches everything")
	assert.True(t, Rule{Method: "POST"}.matchesMethod("POST"))
	assert.True(t, Rule{Method: "post"}.matchesMethod("POST"))
	assert.False(t, Rule{Method: "POST"}.matchesMethod("GET"))
}

func TestLoadRules(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeRules(t, `
- pattern: "**/api/auth/login"
  method: POST
  status: 500
  body: '{"error":"internal"}'
- pattern: "**/api/health"
  status: 200
  content_type: application/json
  body: '{"status":"ok"}'
`)
		rules, err := LoadRules(path)
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, "**/api/auth/login", rules[0].Pattern)
		assert.Equal(t, "POST", rules[0].Method)
		assert.Equal(t, 500, rules[0].Status)
		assert.Equal(t, `{"error":"internal"}`, rules[0].Body)
		assert.Empty(t, rules[1].Method)
	})

	t.Run("invalid rule rejected with position", func(t *testing.T) {
		path := writeRules(t, `
- pattern: "**/api/health"
  status: 200
- status: 200
`)
		_, err := LoadRules(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rule 2")
		assert.Contains(t, err.Error(), "pattern is required")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeRules(t, "pattern: [unbalanced")
		_, err := LoadRules(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse rules file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read rules file")
	})
}

func TestDefaultRules(t *testing.T) {
	for _, r := range DefaultRules {
		assert.NoError(t, r.Validate(), "default rule %s must validate", r.Pattern)
	}
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
