// Package scribe parses the Scribe vendor log format into structured records.
package scribe

import (
	"strconv"
	"strings"
	"time"
)

const (
	// Delimiter is the fixed marker line separating entries. A line is a
	// delimiter only on exact match - no trimming, no partial matches.
	Delimiter = "----------------------------------------"

	// LineBreak joins continuation lines in a multi-line message.
	LineBreak = "\r\n"

	// DefaultSeparator separates fields in rendered records.
	DefaultSeparator = "\t"

	// timestampLayout renders record timestamps.
	timestampLayout = "2006-01-02 15:04:05"
)

// Record is one parsed log entry. Records are only ever observable fully
// populated; partially accumulated entries live inside the parser and are
// never exposed.
type Record struct {
	// Timestamp is the parsed Timestamp field. Zero if the entry
	// carried no timestamp (an empty entry between two delimiters).
	Timestamp time.Time

	// Severity is the classified Severity field.
	Severity Severity

	// Title is the free-form Title field.
	Title string

	// ThreadID is the Win32 ThreadID field.
	ThreadID int32

	// Message is the Message field plus any continuation lines, joined
	// with LineBreak.
	Message string
}

// Delimited renders the record as a single separated string in the fixed
// field order Timestamp, Severity, Title, ThreadID, Message. A zero
// timestamp renders as the empty string.
func (r Record) Delimited(sep string) string {
	ts := ""
	if !r.Timestamp.IsZero() {
		ts = r.Timestamp.Format(timestampLayout)
	}
	return strings.Join([]string{
		ts,
		r.Severity.String(),
		r.Title,
		strconv.Itoa(int(r.ThreadID)),
		r.Message,
	}, sep)
}

// DelimitedReplacing renders like Delimited but substitutes lineBreak for
// every embedded line-break sequence in the message, for single-line
// contexts such as spreadsheet export.
func (r Record) DelimitedReplacing(sep, lineBreak string) string {
	r.Message = strings.ReplaceAll(r.Message, LineBreak, lineBreak)
	return r.Delimited(sep)
}

// String renders the record with the default tab separator.
func (r Record) String() string {
	return r.Delimited(DefaultSeparator)
}

// Equal reports whether two records hold the same field values. Timestamps
// compare with time.Time.Equal so location differences don't matter.
func (r Record) Equal(other Record) bool {
	return r.Timestamp.Equal(other.Timestamp) &&
		r.Severity == other.Severity &&
		r.Title == other.Title &&
		r.ThreadID == other.ThreadID &&
		r.Message == other.Message
}
