package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scribetools/scribelog/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Check whether a file is a Scribe log",
		Long: `Analyze a log file to check whether it carries the Scribe format.

Samples lines from the file, counts delimiter lines and labeled field
lines, and votes the sampled Timestamp values against known layouts.
Reports a verdict with confidence scores.

Optionally generates a starter config file with --write-config.

Example:
  scribelog detect /var/log/vendor/app.log
  scribelog detect --sample 500 /var/log/vendor/large.log.gz
  scribelog detect --write-config scribelog.yaml app.log
  scribelog detect -w scribelog.yaml app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matched timestamp layouts, not just the best")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Check file exists
	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	// Create detector
	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	// Run detection
	result, err := d.DetectFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	// Write config file if requested
	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, logFile, opts.WriteConfig); err != nil {
			return err
		}
	}

	// Output results
	switch opts.Output {
	case "json":
		return outputDetectJSON(result, logFile, opts)
	default:
		return outputDetectText(result, logFile, opts)
	}
}

func outputDetectText(result *detector.Detection, logFile string, opts *DetectOptions) error {
	fmt.Println("=== Scribe Format Detection ===")
	fmt.Println()
	fmt.Printf("File: %s\n", logFile)
	fmt.Printf("Lines sampled: %d\n", result.SampledLines)
	fmt.Printf("Delimiter lines: %d\n", result.DelimiterCount)
	fmt.Printf("Labeled field lines: %d\n", result.FieldLineCount)
	fmt.Printf("Structure: %.1f%% of sampled lines\n", result.Structure*100)
	fmt.Println()

	if !result.IsScribe() {
		fmt.Println("Verdict: not a Scribe log.")
		fmt.Println()
		fmt.Println("Tip: Scribe entries sit between 40-hyphen delimiter lines and carry")
		fmt.Println("labeled Timestamp/Severity/Title/Win32 ThreadID/Message fields.")
		fmt.Println("Check the first few lines manually.")
		return nil
	}

	fmt.Println("Verdict: Scribe format.")
	fmt.Println()

	best := result.BestLayout()
	if best == nil {
		fmt.Println("No Timestamp values could be matched to a known layout.")
		fmt.Println("Records will be parsed, but entries with unrecognized timestamps are discarded.")
		return nil
	}

	fmt.Printf("Timestamp layout: %s\n", best.Layout.Name)
	fmt.Printf("Confidence: %.1f%% (%d/%d timestamp values matched)\n",
		best.Confidence*100, best.Votes, result.TimestampLines)
	fmt.Println()
	fmt.Printf("Sample value:\n  %s\n", best.SampleLine)
	fmt.Printf("Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Println()

	// Ambiguity warning
	if best.Layout.Ambiguous {
		fmt.Println("WARNING: This layout has date ordering ambiguity (MM/DD vs DD/MM).")
		fmt.Println("Verify the parsed sample above against a known event time.")
		fmt.Println()
	}
	if result.AmbiguityNote != "" {
		fmt.Printf("Note: %s\n", result.AmbiguityNote)
		fmt.Println()
	}

	// Show alternatives if requested
	if opts.ShowAll && len(result.Layouts) > 1 {
		fmt.Println("--- Alternative layouts matched ---")
		for i, m := range result.Layouts[1:] {
			fmt.Printf("%d. %s (%.1f%% confidence, %d votes)\n", i+2, m.Layout.Name, m.Confidence*100, m.Votes)
		}
		fmt.Println()
	}

	return nil
}

// JSONLayout represents a timestamp layout match in JSON output.
type JSONLayout struct {
	Name        string  `json:"name"`
	Layout      string  `json:"layout"`
	Confidence  float64 `json:"confidence"`
	Votes       int     `json:"votes"`
	SampleValue string  `json:"sample_value"`
	Ambiguous   bool    `json:"ambiguous,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File           string       `json:"file"`
	Scribe         bool         `json:"scribe"`
	Structure      float64      `json:"structure"`
	DelimiterLines int          `json:"delimiter_lines"`
	FieldLines     int          `json:"field_lines"`
	SampledLines   int          `json:"sampled_lines"`
	TimestampLines int          `json:"timestamp_lines"`
	Layouts        []JSONLayout `json:"layouts"`
	AmbiguityNote  string       `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(result *detector.Detection, logFile string, opts *DetectOptions) error {
	out := JSONOutput{
		File:           logFile,
		Scribe:         result.IsScribe(),
		Structure:      result.Structure,
		DelimiterLines: result.DelimiterCount,
		FieldLines:     result.FieldLineCount,
		SampledLines:   result.SampledLines,
		TimestampLines: result.TimestampLines,
		AmbiguityNote:  result.AmbiguityNote,
		Layouts:        make([]JSONLayout, 0),
	}

	layouts := result.Layouts
	if !opts.ShowAll && len(layouts) > 1 {
		layouts = layouts[:1] // Only show best match
	}

	for _, m := range layouts {
		out.Layouts = append(out.Layouts, JSONLayout{
			Name:        m.Layout.Name,
			Layout:      m.Layout.Layout,
			Confidence:  m.Confidence,
			Votes:       m.Votes,
			SampleValue: m.SampleLine,
			Ambiguous:   m.Layout.Ambiguous,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config file for the detected log.
func writeStarterConfig(result *detector.Detection, logFile, configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	// Only generate for files that look like Scribe logs
	if !result.IsScribe() {
		return fmt.Errorf("cannot generate config: %s does not look like a Scribe log", logFile)
	}

	// Generate the config content
	config := generateStarterConfig(logFile)

	// Write the file
	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(logFile string) string {
	// Get absolute path for log file if possible
	absLogFile := logFile
	if abs, err := filepath.Abs(logFile); err == nil {
		absLogFile = abs
	}

	return fmt.Sprintf(`# ScribeLog Configuration
# Generated by: scribelog detect

sources:
  - %s
  # Add more log files or use globs:
  # - /var/log/vendor/**/*.log

output:
  # Output format: text, json, or tsv.
  format: tsv
  # quiet: true

# parser:
#   # Replacement for message line breaks in tsv rows. Quote it single
#   # to keep it literal.
#   line_break: '\n'
#   # Fail the run when a file cannot be read to the end.
#   strict: true

# merge:
#   enabled: true

# stats:
#   min_severity: Warning
#   top_titles: 10

# webhooks:
#   - name: ops
#     url: https://example.com/hooks/scribelog
#     token: ${SCRIBELOG_WEBHOOK_TOKEN}
#     trigger: on_discards
#     timeout: 10s
`, absLogFile)
}
