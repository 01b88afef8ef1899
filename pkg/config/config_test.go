package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesLoader_Load_EmbeddedOnly(t *testing.T) {
	loader := newValuesLoader(defaultsFS)
	values, err := loader.Load("", "")
	require.NoError(t, err)

	// all values should come from embedded defaults
	assert.Equal(t, "http://localhost:3000", values.BaseURL)
	assert.Equal(t, "/login", values.LoginPath)
	assert.Equal(t, "/dashboard", values.HomePath)
	assert.Equal(t, "airwave_session", values.SessionCookie)
	assert.Equal(t, "tester@airwave.local", values.TestEmail)
	assert.True(t, values.Headless)
	assert.True(t, values.HeadlessSet)
	assert.Equal(t, 15000, values.NavTimeoutMs)
	assert.Equal(t, 10000, values.ActionTimeoutMs)
	assert.Equal(t, 100, values.PollIntervalMs)
	assert.Equal(t, "test-results", values.ArtifactsDir)
	assert.Empty(t, values.NotifyChannels, "notification channels are commented out by default")
}

func TestValuesLoader_Load_GlobalOnly(t *testing.T) {
	tmpDir := t.TempDir()
	globalConfig := filepath.Join(tmpDir, "config")

	configContent := `
base_url = https://staging.airwave.example.com
nav_timeout_ms = 30000
headless = false
`
	require.NoError(t, os.WriteFile(globalConfig, []byte(configContent), 0o600))

	loader := newValuesLoader(defaultsFS)
	values, err := loader.Load("", globalConfig)
	require.NoError(t, err)

	// values from global config
	assert.Equal(t, "https://staging.airwave.example.com", values.BaseURL)
	assert.Equal(t, 30000, values.NavTimeoutMs)
	assert.False(t, values.Headless)
	assert.True(t, values.HeadlessSet)

	// values from embedded (not set in global)
	assert.Equal(t, "/login", values.LoginPath)
	assert.Equal(t, 10000, values.ActionTimeoutMs)
}

func TestValuesLoader_Load_LocalOverridesGlobal(t *testing.T) {
	tmpDir := t.TempDir()
	globalConfig := filepath.Join(tmpDir, "global-config")
	localConfig := filepath.Join(tmpDir, "local-config")

	globalContent := `
base_url = https://staging.airwave.example.com
artifacts_dir = global-results
`
	require.NoError(t, os.WriteFile(globalConfig, []byte(globalContent), 0o600))

	localContent := `
base_url = http://127.0.0.1:8090
`
	require.NoError(t, os.WriteFile(localConfig, []byte(localContent), 0o600))

	loader := newValuesLoader(defaultsFS)
	values, err := loader.Load(localConfig, globalConfig)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8090", values.BaseURL, "local should win over global")
	assert.Equal(t, "global-results", values.ArtifactsDir, "global should win over embedded")
}

func TestValuesLoader_Load_CommentedTemplateFallsBack(t *testing.T) {
	tmpDir := t.TempDir()
	localConfig := filepath.Join(tmpDir, "config")

	// a fully commented-out template must behave like a missing file
	content := "# base_url = https://nope.example.com\n# headless = false\n"
	require.NoError(t, os.WriteFile(localConfig, []byte(content), 0o600))

	loader := newValuesLoader(defaultsFS)
	values, err := loader.Load(localConfig, "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", values.BaseURL)
}

func TestValuesLoader_Load_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative timeout", "nav_timeout_ms = -5\n"},
		{"non-numeric timeout", "action_timeout_ms = soon\n"},
		{"invalid bool", "headless = maybe\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "config")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			loader := newValuesLoader(defaultsFS)
			_, err := loader.Load(path, "")
			require.Error(t, err)
		})
	}
}

func TestValuesLoader_Load_NotifyLists(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config")
	content := `
notify_channels = webhook, slack
notify_webhook_urls = https://a.example.com/hook , https://b.example.com/hook
notify_email_to = qa@airwave.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader := newValuesLoader(defaultsFS)
	values, err := loader.Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"webhook", "slack"}, values.NotifyChannels)
	assert.Equal(t, []string{"https://a.example.com/hook", "https://b.example.com/hook"}, values.NotifyWebhookURLs)
	assert.Equal(t, []string{"qa@airwave.example.com"}, values.NotifyEmailTo)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://env.airwave.example.com")
	t.Setenv(EnvEmail, "env-tester@airwave.example.com")
	t.Setenv(EnvPassword, "env-secret")
	t.Setenv(EnvHeadless, "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent"))
	require.NoError(t, err)

	assert.Equal(t, "https://env.airwave.example.com", cfg.BaseURL)
	assert.Equal(t, "env-tester@airwave.example.com", cfg.TestEmail)
	assert.Equal(t, "env-secret", cfg.TestPassword)
	assert.False(t, cfg.Headless)
}

func TestLoad_DurationAccessors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent"))
	require.NoError(t, err)

	assert.Equal(t, 15*1000, int(cfg.NavTimeout().Milliseconds()))
	assert.Equal(t, 10*1000, int(cfg.ActionTimeout().Milliseconds()))
	assert.Equal(t, 100, int(cfg.PollInterval().Milliseconds()))
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	cfg.LoginPath = "/login"
	cfg.HomePath = "/dashboard"
	require.Error(t, cfg.validate(), "empty base_url must be rejected")

	cfg.BaseURL = "http://localhost:3000"
	require.NoError(t, cfg.validate())

	cfg.HomePath = ""
	require.Error(t, cfg.validate())
}
