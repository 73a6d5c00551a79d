package output

import (
	"context"
	"fmt"
	"io"

	"github.com/scribetools/scribelog/pkg/stats"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "ScribeLog: %d files, %d records, %d discarded\n",
		report.Summary.FilesParsed,
		report.Summary.RecordsEmitted,
		report.Summary.EntriesDiscarded)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	// Header
	fmt.Fprintln(w, "=== ScribeLog Parse Report ===")
	fmt.Fprintln(w)

	for _, source := range report.Metadata.Sources {
		fmt.Fprintf(w, "Source: %s\n", source)
	}
	if len(report.Metadata.Sources) > 0 {
		fmt.Fprintln(w)
	}

	if report.Stats != nil {
		f.formatStats(report.Stats, w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d files, %d lines, %d records, %d discarded\n",
		report.Summary.FilesParsed,
		report.Summary.LinesRead,
		report.Summary.RecordsEmitted,
		report.Summary.EntriesDiscarded)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Run ID: %s\n", report.RunID)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
		if report.Metadata.Merged {
			fmt.Fprintln(w, "Records merged across files by timestamp")
		}
	}

	return nil
}

func (f *TextFormatter) formatStats(s *stats.Summary, w io.Writer) {
	fmt.Fprintln(w, "Severity counts:")
	for _, c := range s.BySeverity {
		if c.Count == 0 && !f.opts.Verbose {
			continue
		}
		fmt.Fprintf(w, "  %-8s %d\n", c.Name, c.Count)
	}
	fmt.Fprintln(w)

	if len(s.Threads) > 0 {
		fmt.Fprintln(w, "Busiest threads:")
		for i, tc := range s.Threads {
			if i >= 5 && !f.opts.Verbose {
				fmt.Fprintf(w, "  ... and %d more\n", len(s.Threads)-i)
				break
			}
			fmt.Fprintf(w, "  thread %-6d %d record(s)\n", tc.ThreadID, tc.Count)
		}
		fmt.Fprintln(w)
	}

	if len(s.TopTitles) > 0 {
		fmt.Fprintln(w, "Top titles:")
		for _, tc := range s.TopTitles {
			fmt.Fprintf(w, "  %3dx %s\n", tc.Count, tc.Title)
		}
		fmt.Fprintln(w)
	}

	if !s.FirstSeen.IsZero() {
		fmt.Fprintf(w, "Time span: %s to %s (%s)\n",
			s.FirstSeen.Format("2006-01-02 15:04:05"),
			s.LastSeen.Format("2006-01-02 15:04:05"),
			s.Span)
		fmt.Fprintln(w)
	}
}
