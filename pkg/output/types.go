// Package output provides formatting and output generation for parse results.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/scribetools/scribelog/pkg/scribe"
	"github.com/scribetools/scribelog/pkg/stats"
)

// Report is the complete output of one run.
type Report struct {
	// RunID uniquely identifies this run for downstream consumers.
	RunID string

	// Summary provides aggregate statistics.
	Summary Summary

	// Records are the parsed entries, in output order.
	Records []scribe.Record

	// Stats holds the severity aggregation, when one was requested.
	Stats *stats.Summary

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// FilesParsed is the number of input files read.
	FilesParsed int

	// LinesRead is the total number of physical lines consumed.
	LinesRead int

	// RecordsEmitted is the number of completed entries.
	RecordsEmitted int

	// EntriesDiscarded is the number of entries dropped because a field
	// failed to parse.
	EntriesDiscarded int
}

// Metadata provides context about the run.
type Metadata struct {
	// Sources lists the log files that were parsed.
	Sources []string

	// ParsedAt is when the run completed.
	ParsedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration

	// Merged reports whether records were merged across files into one
	// timeline.
	Merged bool
}

// NewReport creates an empty report with a fresh run id.
func NewReport() *Report {
	return &Report{
		RunID: uuid.NewString(),
	}
}

// HasDiscards returns true if any entries were dropped.
func (r *Report) HasDiscards() bool {
	return r.Summary.EntriesDiscarded > 0
}
