package config

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Values holds scalar configuration values.
// Fields ending in *Set (e.g., HeadlessSet) track whether that field was explicitly
// set in config. This allows distinguishing explicit false/0 from "not set", enabling
// proper merge behavior where local config can override global config with zero values.
type Values struct {
	BaseURL       string
	LoginPath     string
	HomePath      string
	SessionCookie string

	TestEmail    string
	TestPassword string

	Headless    bool
	HeadlessSet bool // tracks if headless was explicitly set
	SlowMoMs    int
	SlowMoMsSet bool // tracks if slow_mo_ms was explicitly set

	NavTimeoutMs       int
	NavTimeoutMsSet    bool // tracks if nav_timeout_ms was explicitly set
	ActionTimeoutMs    int
	ActionTimeoutMsSet bool // tracks if action_timeout_ms was explicitly set
	PollIntervalMs     int
	PollIntervalMsSet  bool // tracks if poll_interval_ms was explicitly set

	ArtifactsDir string

	NotifyChannels      []string
	NotifyOnError       bool
	NotifyOnErrorSet    bool // tracks if notify_on_error was explicitly set
	NotifyOnComplete    bool
	NotifyOnCompleteSet bool // tracks if notify_on_complete was explicitly set
	NotifyTimeoutMs     int
	NotifyTimeoutMsSet  bool // tracks if notify_timeout_ms was explicitly set
	NotifyWebhookURLs   []string
	NotifySlackToken    string
	NotifySlackChannel  string
	NotifyTelegramToken string
	NotifyTelegramChat  string
	NotifySMTPHost      string
	NotifySMTPPort      int
	NotifySMTPPortSet   bool // tracks if notify_smtp_port was explicitly set
	NotifySMTPUsername  string
	NotifySMTPPassword  string
	NotifySMTPStartTLS  bool
	NotifySMTPTLSSet    bool // tracks if notify_smtp_starttls was explicitly set
	NotifyEmailFrom     string
	NotifyEmailTo       []string
	NotifyCustomScript  string
}

// valuesLoader loads Values with embedded filesystem fallback.
type valuesLoader struct {
	embedFS embed.FS
}

// newValuesLoader creates a new valuesLoader with the given embedded filesystem.
func newValuesLoader(embedFS embed.FS) *valuesLoader {
	return &valuesLoader{embedFS: embedFS}
}

// Load loads values from config files with fallback chain: local → global → embedded.
// localConfigPath and globalConfigPath are full paths to config files (not directories).
func (vl *valuesLoader) Load(localConfigPath, globalConfigPath string) (Values, error) {
	// start with embedded defaults
	embedded, err := vl.parseValuesFromEmbedded()
	if err != nil {
		return Values{}, fmt.Errorf("parse embedded defaults: %w", err)
	}

	// parse global config if exists
	global, err := vl.parseValuesFromFile(globalConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse global config: %w", err)
	}

	// parse local config if exists
	local, err := vl.parseValuesFromFile(localConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse local config: %w", err)
	}

	// merge: embedded → global → local (local wins)
	result := embedded
	result.mergeFrom(&global)
	result.mergeFrom(&local)

	return result, nil
}

// parseValuesFromFile reads a config file and parses it into Values.
// returns empty Values (not error) if file doesn't exist or contains only comments/whitespace.
// this enables fallback to embedded defaults for files that are commented templates.
func (vl *valuesLoader) parseValuesFromFile(path string) (Values, error) {
	if path == "" {
		return Values{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return Values{}, nil
		}
		return Values{}, fmt.Errorf("read config %s: %w", path, err)
	}

	// strip comments and check if anything remains
	// if only comments/whitespace, return empty Values to fall back to embedded defaults
	if strings.TrimSpace(stripComments(string(data))) == "" {
		return Values{}, nil
	}

	return vl.parseValuesFromBytes(data)
}

// parseValuesFromEmbedded parses values from the embedded defaults/config file.
func (vl *valuesLoader) parseValuesFromEmbedded() (Values, error) {
	data, err := vl.embedFS.ReadFile("defaults/config")
	if err != nil {
		return Values{}, fmt.Errorf("read embedded defaults: %w", err)
	}
	return vl.parseValuesFromBytes(data)
}

// parseValuesFromBytes parses configuration from a byte slice into Values.
func (vl *valuesLoader) parseValuesFromBytes(data []byte) (Values, error) {
	// ignoreInlineComment: true prevents # from being treated as inline comment marker
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return Values{}, fmt.Errorf("parse config: %w", err)
	}

	var values Values
	section := cfg.Section("") // default section (no section header)

	// string keys
	for _, sk := range []struct {
		key   string
		field *string
	}{
		{"base_url", &values.BaseURL},
		{"login_path", &values.LoginPath},
		{"home_path", &values.HomePath},
		{"session_cookie", &values.SessionCookie},
		{"test_email", &values.TestEmail},
		{"test_password", &values.TestPassword},
		{"artifacts_dir", &values.ArtifactsDir},
		{"notify_slack_token", &values.NotifySlackToken},
		{"notify_slack_channel", &values.NotifySlackChannel},
		{"notify_telegram_token", &values.NotifyTelegramToken},
		{"notify_telegram_chat", &values.NotifyTelegramChat},
		{"notify_smtp_host", &values.NotifySMTPHost},
		{"notify_smtp_username", &values.NotifySMTPUsername},
		{"notify_smtp_password", &values.NotifySMTPPassword},
		{"notify_email_from", &values.NotifyEmailFrom},
		{"notify_custom_script", &values.NotifyCustomScript},
	} {
		if key, keyErr := section.GetKey(sk.key); keyErr == nil {
			*sk.field = key.String()
		}
	}

	// bool keys with explicit-set tracking
	for _, bk := range []struct {
		key   string
		field *bool
		set   *bool
	}{
		{"headless", &values.Headless, &values.HeadlessSet},
		{"notify_on_error", &values.NotifyOnError, &values.NotifyOnErrorSet},
		{"notify_on_complete", &values.NotifyOnComplete, &values.NotifyOnCompleteSet},
		{"notify_smtp_starttls", &values.NotifySMTPStartTLS, &values.NotifySMTPTLSSet},
	} {
		key, keyErr := section.GetKey(bk.key)
		if keyErr != nil {
			continue
		}
		val, boolErr := key.Bool()
		if boolErr != nil {
			return Values{}, fmt.Errorf("invalid %s: %w", bk.key, boolErr)
		}
		*bk.field = val
		*bk.set = true
	}

	// non-negative int keys with explicit-set tracking
	for _, ik := range []struct {
		key   string
		field *int
		set   *bool
	}{
		{"slow_mo_ms", &values.SlowMoMs, &values.SlowMoMsSet},
		{"nav_timeout_ms", &values.NavTimeoutMs, &values.NavTimeoutMsSet},
		{"action_timeout_ms", &values.ActionTimeoutMs, &values.ActionTimeoutMsSet},
		{"poll_interval_ms", &values.PollIntervalMs, &values.PollIntervalMsSet},
		{"notify_timeout_ms", &values.NotifyTimeoutMs, &values.NotifyTimeoutMsSet},
		{"notify_smtp_port", &values.NotifySMTPPort, &values.NotifySMTPPortSet},
	} {
		key, keyErr := section.GetKey(ik.key)
		if keyErr != nil {
			continue
		}
		val, intErr := key.Int()
		if intErr != nil {
			return Values{}, fmt.Errorf("invalid %s: %w", ik.key, intErr)
		}
		if val < 0 {
			return Values{}, fmt.Errorf("invalid %s: must be non-negative, got %d", ik.key, val)
		}
		*ik.field = val
		*ik.set = true
	}

	// comma-separated list keys
	values.NotifyChannels = splitList(section, "notify_channels")
	values.NotifyWebhookURLs = splitList(section, "notify_webhook_urls")
	values.NotifyEmailTo = splitList(section, "notify_email_to")

	return values, nil
}

// splitList reads a comma-separated key into a trimmed slice, nil if absent or empty.
func splitList(section *ini.Section, name string) []string {
	key, err := section.GetKey(name)
	if err != nil {
		return nil
	}
	val := strings.TrimSpace(key.String())
	if val == "" {
		return nil
	}
	var out []string
	for p := range strings.SplitSeq(val, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// stripComments removes full-line # comments so a commented-out template
// counts as an empty config file.
func stripComments(data string) string {
	var b strings.Builder
	for line := range strings.SplitSeq(data, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// mergeFrom merges non-empty values from src into dst.
func (dst *Values) mergeFrom(src *Values) {
	for _, m := range []struct {
		dst *string
		src string
	}{
		{&dst.BaseURL, src.BaseURL},
		{&dst.LoginPath, src.LoginPath},
		{&dst.HomePath, src.HomePath},
		{&dst.SessionCookie, src.SessionCookie},
		{&dst.TestEmail, src.TestEmail},
		{&dst.TestPassword, src.TestPassword},
		{&dst.ArtifactsDir, src.ArtifactsDir},
		{&dst.NotifySlackToken, src.NotifySlackToken},
		{&dst.NotifySlackChannel, src.NotifySlackChannel},
		{&dst.NotifyTelegramToken, src.NotifyTelegramToken},
		{&dst.NotifyTelegramChat, src.NotifyTelegramChat},
		{&dst.NotifySMTPHost, src.NotifySMTPHost},
		{&dst.NotifySMTPUsername, src.NotifySMTPUsername},
		{&dst.NotifySMTPPassword, src.NotifySMTPPassword},
		{&dst.NotifyEmailFrom, src.NotifyEmailFrom},
		{&dst.NotifyCustomScript, src.NotifyCustomScript},
	} {
		if m.src != "" {
			*m.dst = m.src
		}
	}

	if src.HeadlessSet {
		dst.Headless = src.Headless
		dst.HeadlessSet = true
	}
	if src.NotifyOnErrorSet {
		dst.NotifyOnError = src.NotifyOnError
		dst.NotifyOnErrorSet = true
	}
	if src.NotifyOnCompleteSet {
		dst.NotifyOnComplete = src.NotifyOnComplete
		dst.NotifyOnCompleteSet = true
	}
	if src.NotifySMTPTLSSet {
		dst.NotifySMTPStartTLS = src.NotifySMTPStartTLS
		dst.NotifySMTPTLSSet = true
	}

	if src.SlowMoMsSet {
		dst.SlowMoMs = src.SlowMoMs
		dst.SlowMoMsSet = true
	}
	if src.NavTimeoutMsSet {
		dst.NavTimeoutMs = src.NavTimeoutMs
		dst.NavTimeoutMsSet = true
	}
	if src.ActionTimeoutMsSet {
		dst.ActionTimeoutMs = src.ActionTimeoutMs
		dst.ActionTimeoutMsSet = true
	}
	if src.PollIntervalMsSet {
		dst.PollIntervalMs = src.PollIntervalMs
		dst.PollIntervalMsSet = true
	}
	if src.NotifyTimeoutMsSet {
		dst.NotifyTimeoutMs = src.NotifyTimeoutMs
		dst.NotifyTimeoutMsSet = true
	}
	if src.NotifySMTPPortSet {
		dst.NotifySMTPPort = src.NotifySMTPPort
		dst.NotifySMTPPortSet = true
	}

	if len(src.NotifyChannels) > 0 {
		dst.NotifyChannels = src.NotifyChannels
	}
	if len(src.NotifyWebhookURLs) > 0 {
		dst.NotifyWebhookURLs = src.NotifyWebhookURLs
	}
	if len(src.NotifyEmailTo) > 0 {
		dst.NotifyEmailTo = src.NotifyEmailTo
	}
}
