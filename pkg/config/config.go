// Package config loads wavetest configuration with a layered merge:
// embedded defaults → global config file → local config file → environment.
// Base URL and test-account credentials are environment-overridable so no
// target address or secret ever needs to be hard-coded in a suite.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

//go:embed defaults
var defaultsFS embed.FS

// environment variables overriding file-based configuration.
const (
	EnvBaseURL  = "AIRWAVE_BASE_URL"
	EnvEmail    = "AIRWAVE_TEST_EMAIL"
	EnvPassword = "AIRWAVE_TEST_PASSWORD" //nolint:gosec // variable name, not a credential
	EnvHeadless = "WAVETEST_HEADLESS"
)

// Config holds the resolved harness configuration.
type Config struct {
	Values
}

// Load loads configuration from the default locations, with localPath
// overriding the default local config file when non-empty.
// merge order: embedded defaults → ~/.config/wavetest/config → local → env.
func Load(localPath string) (*Config, error) {
	globalPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		globalPath = filepath.Join(home, ".config", "wavetest", "config")
	}
	if localPath == "" {
		localPath = filepath.Join(".wavetest", "config")
	}

	values, err := newValuesLoader(defaultsFS).Load(localPath, globalPath)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}

	cfg := &Config{Values: values}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file-based values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvEmail); v != "" {
		c.TestEmail = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.TestPassword = v
	}
	// headless is opt-out: anything but explicit "false" keeps the configured value
	if v := os.Getenv(EnvHeadless); v == "false" {
		c.Headless = false
	}
}

// validate rejects configurations the harness cannot run with.
func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required (set it in config or %s)", EnvBaseURL)
	}
	if c.LoginPath == "" || c.HomePath == "" {
		return fmt.Errorf("login_path and home_path are required")
	}
	return nil
}

// NavTimeout returns the navigation timeout as a duration.
func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutMs) * time.Millisecond
}

// ActionTimeout returns the per-action wait timeout as a duration.
func (c *Config) ActionTimeout() time.Duration {
	return time.Duration(c.ActionTimeoutMs) * time.Millisecond
}

// PollInterval returns the condition-polling interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// InstallGlobal writes the embedded default config to the global location if
// it does not exist yet, returning the path. Used by the CLI on first run.
func InstallGlobal() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", "wavetest")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	path := filepath.Join(dir, "config")
	if _, statErr := os.Stat(path); statErr == nil {
		return path, nil // already installed, never overwrite
	} else if !os.IsNotExist(statErr) {
		return "", fmt.Errorf("check config file: %w", statErr)
	}

	data, err := defaultsFS.ReadFile("defaults/config")
	if err != nil {
		return "", fmt.Errorf("read embedded config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}
