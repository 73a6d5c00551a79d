package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scribetools/scribelog/pkg/scribe"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve finds the effective config file. An explicit path wins; otherwise
// ./scribelog.yaml, then ~/.scribelog/config.yaml. An empty result means no
// config file exists and defaults apply.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if _, err := os.Stat(DefaultConfigName); err == nil {
		return DefaultConfigName, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	fallback := filepath.Join(home, ".scribelog", "config.yaml")
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}

	return "", nil
}

// LoadOrDefault loads the resolved config file, or returns defaults when
// none exists.
func LoadOrDefault(ctx context.Context, explicit string) (*Config, error) {
	path, err := Resolve(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnvironmentOverrides()
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}

	return Load(ctx, path)
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if cfg.Parser.LineBreak == "" {
		cfg.Parser.LineBreak = DefaultLineBreak
	}

	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if err := validateStats(&cfg.Stats); err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateOutput(out *OutputConfig) error {
	if out.Format == "" {
		out.Format = DefaultFormat
	}

	switch out.Format {
	case "text", "json", "tsv":
		// Valid
	default:
		return fmt.Errorf("invalid format %q (must be text, json, or tsv)", out.Format)
	}

	return nil
}

func validateStats(st *StatsConfig) error {
	if st.MinSeverity != "" {
		if _, err := scribe.ParseSeverity(st.MinSeverity); err != nil {
			return fmt.Errorf("min_severity: %w", err)
		}
	}

	if st.TopTitles < 0 {
		return errors.New("top_titles must be >= 0")
	}
	if st.TopTitles == 0 {
		st.TopTitles = DefaultTopTitles
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	// Validate URL format
	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	// Expand environment variables in token
	wh.Token = expandEnvVar(wh.Token)

	// Validate trigger if specified
	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnDiscards, WebhookTriggerAlways, WebhookTriggerNever:
			// Valid
		default:
			return fmt.Errorf("invalid trigger %q (must be on_discards, always, or never)", wh.Trigger)
		}
	} else {
		// Default to on_discards
		wh.Trigger = WebhookTriggerOnDiscards
	}

	// Default timeout
	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}
