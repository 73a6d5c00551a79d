package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribetools/scribelog/pkg/config"
	"github.com/scribetools/scribelog/pkg/output"
	"github.com/scribetools/scribelog/pkg/scribe"
	"github.com/scribetools/scribelog/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	ConfigPath string
	Output     string
	LineBreak  string
	Merge      bool
	Strict     bool
	Verbose    bool
	Quiet      bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse Scribe logs into structured records",
		Long: `Parse one or more Scribe-format log files into structured records.

Each entry sits between delimiter lines and carries five labeled fields
(Timestamp, Severity, Title, Win32 ThreadID, Message); message text may
continue over further lines. Entries with an unparseable timestamp or
thread id are discarded and counted.

Files may be plain text or compressed (.gz, .zst). Glob patterns are
expanded, ** matches directories recursively. With no files on the
command line, the config's sources apply.

Exit codes:
  0 - All entries parsed cleanly
  1 - Some entries were discarded, or a file was cut short
  2 - Configuration or runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ./scribelog.yaml, then ~/.scribelog/config.yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json|tsv, default tsv)")
	cmd.Flags().StringVar(&opts.LineBreak, "line-break", "", `Replacement for message line breaks in tsv rows (default '\n')`)
	cmd.Flags().BoolVar(&opts.Merge, "merge", false, "Merge records from all files into one timestamp-ordered timeline")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on a mid-file read error instead of keeping partial records")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include run metadata in text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only; tsv output skips the header row")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_discards", "When to fire webhook (on_discards|always|never)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.LoadOrDefault(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := resolveInputs(args, cfg)
	if err != nil {
		return err
	}

	strict := opts.Strict || cfg.Parser.Strict

	report := output.NewReport()
	report.Metadata.Sources = files
	start := time.Now()

	// Parse each file; keep per-file batches so merging stays optional
	batches := make([][]scribe.Record, 0, len(files))
	partial := false
	for _, file := range files {
		result, err := parseFile(ctx, file)
		if result == nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		if err != nil {
			if strict || ctx.Err() != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}
			fmt.Fprintf(os.Stderr, "Warning: %s: %v (keeping %d records)\n", file, err, len(result.Records))
			partial = true
		}

		report.Summary.FilesParsed++
		report.Summary.LinesRead += result.Lines
		report.Summary.EntriesDiscarded += result.Discarded
		batches = append(batches, result.Records)
	}

	// Merge across files into one timeline, or keep file order
	if (opts.Merge || cfg.Merge.Enabled) && len(batches) > 1 {
		report.Records = scribe.MergeByTimestamp(batches...)
		report.Metadata.Merged = true
	} else {
		for _, batch := range batches {
			report.Records = append(report.Records, batch...)
		}
	}

	report.Summary.RecordsEmitted = len(report.Records)
	report.Metadata.ParsedAt = time.Now()
	report.Metadata.Duration = time.Since(start)

	// Create formatter
	format := opts.Output
	if format == "" {
		format = cfg.Output.Format
	}
	lineBreak := opts.LineBreak
	if lineBreak == "" {
		lineBreak = cfg.Parser.LineBreak
	}

	formatter, err := createFormatter(format, output.FormatOptions{
		Verbose:   opts.Verbose,
		Quiet:     opts.Quiet || cfg.Output.Quiet,
		LineBreak: lineBreak,
	})
	if err != nil {
		return err
	}

	// Output report
	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail the run)
	sendWebhooks(ctx, cfg, opts, report)

	// Set exit code based on results
	if report.HasDiscards() || partial {
		ExitCode = 1
	}

	return nil
}

// parseFile parses one log file. The result is non-nil whenever the file
// could be opened, even if reading it was cut short.
func parseFile(ctx context.Context, path string) (*scribe.Result, error) {
	src, err := scribe.NewFileSource(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	return scribe.Parse(ctx, src)
}

// resolveInputs expands command-line patterns, falling back to the config's
// sources when none are given.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Sources
	}
	if len(patterns) == 0 {
		return nil, errors.New("no input files: name them on the command line or in the config's sources")
	}

	files, err := scribe.ExpandGlobs(patterns)
	if err != nil {
		return nil, fmt.Errorf("expanding input patterns: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no log files matched patterns: %v", patterns)
	}

	return files, nil
}

func createFormatter(format string, opts output.FormatOptions) (output.Formatter, error) {
	switch format {
	case "text":
		return output.NewTextFormatter(opts), nil
	case "json":
		return output.NewJSONFormatter(opts), nil
	case "tsv":
		return output.NewTSVFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, or tsv)", format)
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the run.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *ParseOptions, report *output.Report) {
	// Collect webhooks from config and CLI
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		// Check trigger condition
		if !shouldFireWebhook(wh.Trigger, report.HasDiscards()) {
			continue
		}

		// Send webhook
		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		// Log result
		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ParseOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	// Add config file webhooks
	webhooks = append(webhooks, cfg.Webhooks...)

	// Add CLI webhook if specified
	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnDiscards
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and discards.
func shouldFireWebhook(trigger config.WebhookTrigger, hasDiscards bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnDiscards:
		return hasDiscards
	default:
		// Default to on_discards
		return hasDiscards
	}
}
