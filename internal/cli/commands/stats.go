package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribetools/scribelog/pkg/config"
	"github.com/scribetools/scribelog/pkg/output"
	"github.com/scribetools/scribelog/pkg/scribe"
	"github.com/scribetools/scribelog/pkg/stats"
)

// StatsOptions holds command-line options for the stats command.
type StatsOptions struct {
	ConfigPath   string
	Output       string
	MinSeverity  string
	TopTitles    int
	TimeRange    string
	FailOnSevere bool
	Verbose      bool
	Quiet        bool
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats [files...]",
		Short: "Summarize severities, threads, and titles",
		Long: `Parse Scribe logs and aggregate the records into a summary:
severity counts, busiest threads, most frequent titles, and the time
span covered.

Example:
  scribelog stats app.log
  scribelog stats --min-severity Warning 'logs/**/*.log'
  scribelog stats --time-range 24h --fail-on-severe app.log`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ./scribelog.yaml, then ~/.scribelog/config.yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.MinSeverity, "min-severity", "", "Drop records below this severity (Debug|Info|Warning|Error|Trace)")
	cmd.Flags().IntVar(&opts.TopTitles, "top-titles", 0, "Show this many of the most frequent titles (default 10)")
	cmd.Flags().StringVar(&opts.TimeRange, "time-range", "", "Limit aggregation to a trailing window (e.g. 2h, 24h)")
	cmd.Flags().BoolVar(&opts.FailOnSevere, "fail-on-severe", false, "Exit 1 when Error or Trace records are present")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List zero-count severities and run metadata")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary line only")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, opts *StatsOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
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

	// Aggregation options: flags win over config
	var aggOpts []stats.Option

	minName := opts.MinSeverity
	if minName == "" {
		minName = cfg.Stats.MinSeverity
	}
	if minName != "" {
		sev, err := scribe.ParseSeverity(minName)
		if err != nil {
			return fmt.Errorf("invalid min-severity: %w", err)
		}
		aggOpts = append(aggOpts, stats.WithMinSeverity(sev))
	}

	topTitles := opts.TopTitles
	if topTitles == 0 {
		topTitles = cfg.Stats.TopTitles
	}
	aggOpts = append(aggOpts, stats.WithTopTitles(topTitles))

	if opts.TimeRange != "" {
		duration, err := time.ParseDuration(opts.TimeRange)
		if err != nil {
			return fmt.Errorf("invalid time-range %q: %w", opts.TimeRange, err)
		}
		end := time.Now()
		aggOpts = append(aggOpts, stats.WithTimeRange(end.Add(-duration), end))
	}

	report := output.NewReport()
	report.Metadata.Sources = files
	start := time.Now()

	// Parse all inputs; aggregation is order-independent so no merge here
	var records []scribe.Record
	for _, file := range files {
		result, err := parseFile(ctx, file)
		if result == nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}
			fmt.Fprintf(os.Stderr, "Warning: %s: %v (keeping %d records)\n", file, err, len(result.Records))
		}

		report.Summary.FilesParsed++
		report.Summary.LinesRead += result.Lines
		report.Summary.EntriesDiscarded += result.Discarded
		records = append(records, result.Records...)
	}

	summary := stats.New(aggOpts...).Aggregate(records)

	// Records stay out of the report: stats output is the aggregation
	report.Summary.RecordsEmitted = len(records)
	report.Stats = summary
	report.Metadata.ParsedAt = time.Now()
	report.Metadata.Duration = time.Since(start)

	formatter, err := createFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Set exit code based on results
	if report.HasDiscards() {
		ExitCode = 1
	}
	if opts.FailOnSevere && summary.HasSevere() {
		ExitCode = 1
	}

	return nil
}
