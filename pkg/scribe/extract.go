package scribe

import (
	"errors"
	"strings"
)

// errNoFieldSeparator reports a field line with no colon. The parser
// treats it as a per-entry taint, never a stream error.
var errNoFieldSeparator = errors.New("field line has no colon separator")

// extractValue returns everything after the first colon in line, with
// leading and trailing ASCII spaces removed. Only the space character is
// trimmed - tabs and other whitespace are part of the value. Colons after
// the first are preserved verbatim.
func extractValue(line string) (string, error) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", errNoFieldSeparator
	}
	return strings.Trim(line[idx+1:], " "), nil
}
