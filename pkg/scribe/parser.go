package scribe

import (
	"context"
	"io"
	"strings"
)

// Result holds the outcome of parsing one stream.
type Result struct {
	// Records are the completed entries, in the order their closing
	// delimiters were seen.
	Records []Record

	// Discarded counts entries dropped because a field failed to parse.
	Discarded int

	// Lines counts physical lines consumed from the source.
	Lines int
}

// Parse runs the entry state machine over src. Each entry is bounded by a
// pair of delimiter lines; a delimiter seen outside an entry opens one,
// and a delimiter seen inside closes it. Closing an untainted entry emits
// a record - even a zero-field one - while a tainted entry is discarded.
// An entry still open at end of stream is never emitted.
//
// A read failure surfaces as an error alongside the records completed
// before it, so callers can tell partial success from an empty stream.
func Parse(ctx context.Context, src LineSource) (*Result, error) {
	res := &Result{}
	builder := newRecordBuilder()
	inside := false

	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res.Lines++

		if line == Delimiter {
			if !inside {
				inside = true
				continue
			}
			if builder.tainted {
				res.Discarded++
			} else {
				res.Records = append(res.Records, builder.build())
			}
			builder.reset()
			inside = false
			continue
		}

		if !inside {
			// Stray text between entries carries no fields.
			continue
		}

		if builder.cursor < fieldCount {
			if strings.TrimSpace(line) == "" {
				// Blank lines before the message tail are skipped
				// without advancing the cursor.
				continue
			}
			value, err := extractValue(line)
			if err != nil {
				builder.taint()
				continue
			}
			builder.setField(value)
			continue
		}

		// Past the five fields everything is message body, blank lines
		// included.
		builder.appendMessage(line)
	}
}

// ParseFile parses one Scribe log file and returns its records in file
// order. Open and read failures are returned together with any records
// completed before the failure; an empty file and a failed file are
// distinguishable.
func ParseFile(ctx context.Context, path string) ([]Record, error) {
	src, err := NewFileSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	res, err := Parse(ctx, src)
	return res.Records, err
}

// ParseReader parses Scribe log lines from r. The reader is not closed.
func ParseReader(ctx context.Context, r io.Reader) ([]Record, error) {
	res, err := Parse(ctx, NewReaderSource(r))
	return res.Records, err
}
