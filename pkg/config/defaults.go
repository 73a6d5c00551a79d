package config

import (
	"os"
	"strings"
	"time"
)

// Default values for configuration.
const (
	DefaultFormat         = "tsv"
	DefaultLineBreak      = `\n`
	DefaultTopTitles      = 10
	DefaultWebhookTimeout = 10 * time.Second

	// DefaultConfigName is looked up in the working directory when no
	// config path is given.
	DefaultConfigName = "scribelog.yaml"
)

// Environment variable names.
const (
	EnvSources     = "SCRIBELOG_SOURCES"
	EnvFormat      = "SCRIBELOG_FORMAT"
	EnvMinSeverity = "SCRIBELOG_MIN_SEVERITY"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			LineBreak: DefaultLineBreak,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		Stats: StatsConfig{
			TopTitles: DefaultTopTitles,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sources := os.Getenv(EnvSources); sources != "" {
		c.Sources = nil
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.Sources = append(c.Sources, s)
			}
		}
	}

	if format := os.Getenv(EnvFormat); format != "" {
		c.Output.Format = format
	}

	if sev := os.Getenv(EnvMinSeverity); sev != "" {
		c.Stats.MinSeverity = sev
	}
}
