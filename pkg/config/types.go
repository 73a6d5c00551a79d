// Package config provides configuration loading and validation for ScribeLog.
package config

import (
	"time"

	"github.com/scribetools/scribelog/pkg/scribe"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Sources are default log files or glob patterns, used when the
	// command line names none.
	Sources []string `yaml:"sources,omitempty"`

	Parser   ParserConfig    `yaml:"parser,omitempty"`
	Output   OutputConfig    `yaml:"output,omitempty"`
	Merge    MergeConfig     `yaml:"merge,omitempty"`
	Stats    StatsConfig     `yaml:"stats,omitempty"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ParserConfig controls parsing behavior.
type ParserConfig struct {
	// LineBreak replaces embedded message line breaks in single-line
	// renderings. Quote it single in YAML to keep it literal, e.g.
	// '\n' or ' | '.
	LineBreak string `yaml:"line_break,omitempty"`

	// Strict makes a mid-file read error fail the whole run instead of
	// degrading to the records parsed so far.
	Strict bool `yaml:"strict,omitempty"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format selects the formatter: text, json, or tsv.
	Format string `yaml:"format,omitempty"`

	// Quiet trims output to a summary line.
	Quiet bool `yaml:"quiet,omitempty"`
}

// MergeConfig controls cross-file merging.
type MergeConfig struct {
	// Enabled merges records from all inputs into one timestamp-ordered
	// timeline.
	Enabled bool `yaml:"enabled,omitempty"`
}

// StatsConfig controls aggregation in the stats command.
type StatsConfig struct {
	// MinSeverity drops records below this severity. Exact level name,
	// e.g. "Warning".
	MinSeverity string `yaml:"min_severity,omitempty"`

	// TopTitles caps the title leaderboard.
	TopTitles int `yaml:"top_titles,omitempty"`
}

// MinSeverityLevel returns the configured minimum severity, if any.
func (s *StatsConfig) MinSeverityLevel() (scribe.Severity, bool) {
	if s.MinSeverity == "" {
		return 0, false
	}
	sev, err := scribe.ParseSeverity(s.MinSeverity)
	if err != nil {
		return 0, false
	}
	return sev, true
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnDiscards fires only when entries were discarded (default).
	WebhookTriggerOnDiscards WebhookTrigger = "on_discards"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending parse reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_discards" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
