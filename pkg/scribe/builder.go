package scribe

import (
	"strconv"
	"strings"
	"time"
)

// Field positions within an entry, in the order the format fixes them.
const (
	fieldTimestamp = iota
	fieldSeverity
	fieldTitle
	fieldThreadID
	fieldMessage
	fieldCount
)

// recordBuilder accumulates one in-progress entry. It exists only inside
// a parse call; completed entries leave it as immutable Records.
type recordBuilder struct {
	timestamp time.Time
	severity  Severity
	title     string
	threadID  int32
	message   []string

	cursor  int
	tainted bool
}

func newRecordBuilder() *recordBuilder {
	return &recordBuilder{severity: SeverityUnknown}
}

// reset restores the zero state so the next entry starts clean: zero
// timestamp, Unknown severity, empty strings, zero thread id, cursor 0.
func (b *recordBuilder) reset() {
	b.timestamp = time.Time{}
	b.severity = SeverityUnknown
	b.title = ""
	b.threadID = 0
	b.message = b.message[:0]
	b.cursor = 0
	b.tainted = false
}

// taint marks the current entry as discarded. The parser keeps consuming
// its lines so it stays aligned with the delimiters.
func (b *recordBuilder) taint() {
	b.tainted = true
}

// setField assigns the field at the current cursor position from a raw
// extracted value and advances the cursor. Conversion failures taint the
// entry instead of propagating; writes to a tainted entry are dropped.
func (b *recordBuilder) setField(value string) {
	if b.tainted {
		b.cursor++
		return
	}
	switch b.cursor {
	case fieldTimestamp:
		ts, err := parseTimestamp(value)
		if err != nil {
			b.taint()
		} else {
			b.timestamp = ts
		}
	case fieldSeverity:
		b.severity = ClassifySeverity(value)
	case fieldTitle:
		b.title = value
	case fieldThreadID:
		id, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			b.taint()
		} else {
			b.threadID = int32(id)
		}
	case fieldMessage:
		b.message = append(b.message, value)
	}
	b.cursor++
}

// appendMessage adds a continuation line verbatim, with no field
// extraction.
func (b *recordBuilder) appendMessage(line string) {
	if b.tainted {
		return
	}
	b.message = append(b.message, line)
}

// build converts the accumulated state to an immutable Record. Callers
// check the taint flag first; build itself is mechanical.
func (b *recordBuilder) build() Record {
	return Record{
		Timestamp: b.timestamp,
		Severity:  b.severity,
		Title:     b.title,
		ThreadID:  b.threadID,
		Message:   strings.Join(b.message, LineBreak),
	}
}
