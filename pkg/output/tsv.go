package output

import (
	"context"
	"fmt"
	"io"

	"github.com/scribetools/scribelog/pkg/scribe"
)

// TSVFormatter renders records as tab-separated rows, one record per
// line. Embedded message line breaks are replaced so each record stays on
// a single row, which keeps the output loadable in a spreadsheet.
type TSVFormatter struct {
	opts FormatOptions
}

// NewTSVFormatter creates a new TSV formatter with the given options.
func NewTSVFormatter(opts FormatOptions) *TSVFormatter {
	f := &TSVFormatter{opts: opts}
	if f.opts.LineBreak == "" {
		f.opts.LineBreak = `\n`
	}
	return f
}

// Name returns the format name.
func (f *TSVFormatter) Name() string {
	return "tsv"
}

// Format renders the report's records as TSV.
func (f *TSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if !f.opts.Quiet {
		if _, err := fmt.Fprintln(w, "Timestamp\tSeverity\tTitle\tThreadID\tMessage"); err != nil {
			return err
		}
	}

	for _, record := range report.Records {
		row := record.DelimitedReplacing(scribe.DefaultSeparator, f.opts.LineBreak)
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}

	return nil
}
