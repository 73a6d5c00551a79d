package scribe

import (
	"fmt"
	"strings"
)

// Severity is the classified level of a log entry. Ordinals are
// significant - callers sort and filter by them - and follow the vendor's
// convention of placing Trace above Error.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityTrace
	SeverityUnknown
)

// SeverityVerbose is a synonym for SeverityDebug. The vendor's UI labels
// the level "Debug" while its log files write "Verbose"; both carry the
// same ordinal.
const SeverityVerbose = SeverityDebug

// String returns the canonical name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "Debug"
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityTrace:
		return "Trace"
	default:
		return "Unknown"
	}
}

// ClassifySeverity maps a raw severity token to a Severity. Matching is
// case-sensitive, exact first and then substring, so label variants like
// "Information" and "Warning" resolve without an exhaustive token list.
// Unrecognized tokens classify as SeverityUnknown, never an error.
func ClassifySeverity(token string) Severity {
	switch {
	case token == "Debug":
		return SeverityDebug
	case token == "Verbose":
		return SeverityVerbose
	case strings.Contains(token, "Info"):
		return SeverityInfo
	case strings.Contains(token, "Warn"):
		return SeverityWarning
	case token == "Error":
		return SeverityError
	case token == "Trace":
		return SeverityTrace
	default:
		return SeverityUnknown
	}
}

// ParseSeverity converts a canonical severity name to its value. Unlike
// ClassifySeverity it accepts only exact names and reports failure, which
// suits flag and config validation.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "Debug", "Verbose":
		return SeverityDebug, nil
	case "Info":
		return SeverityInfo, nil
	case "Warning":
		return SeverityWarning, nil
	case "Error":
		return SeverityError, nil
	case "Trace":
		return SeverityTrace, nil
	case "Unknown":
		return SeverityUnknown, nil
	default:
		return SeverityUnknown, fmt.Errorf("unknown severity %q", name)
	}
}
