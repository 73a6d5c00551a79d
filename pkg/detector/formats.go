package detector

import "regexp"

// TimestampLayout represents a known Timestamp field layout for detection.
type TimestampLayout struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled regex (set during init)
	PatternStr string         // Pattern string for config output
	Layout     string         // Go time layout for parsing
	Examples   []string       // Example timestamps
	Ambiguous  bool           // True if layout has date ordering ambiguity (MM/DD vs DD/MM)
}

// DefaultLayouts returns the built-in timestamp layouts to detect. These
// mirror the table the parser tries, ordered by specificity.
func DefaultLayouts() []*TimestampLayout {
	layouts := []*TimestampLayout{
		{
			Name:       "Dashed datetime with milliseconds",
			PatternStr: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}$`,
			Layout:     "2006-01-02 15:04:05.000",
			Examples:   []string{"2020-01-01 12:00:00.123"},
		},
		{
			Name:       "Dashed datetime",
			PatternStr: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2020-01-01 12:00:00"},
		},
		{
			Name:       "RFC 3339",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:Z|[+-]\d{2}:\d{2})$`,
			Layout:     "2006-01-02T15:04:05Z07:00",
			Examples:   []string{"2020-01-01T12:00:00Z", "2020-01-01T12:00:00+01:00"},
		},
		{
			Name:       "ISO 8601",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"2020-01-01T12:00:00"},
		},
		{
			Name:       "Twelve-hour clock",
			PatternStr: `^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2} [AP]M$`,
			Layout:     "1/2/2006 3:04:05 PM",
			Examples:   []string{"1/15/2020 3:04:05 PM"},
		},
		{
			Name:       "Slashed date (MM/DD/YYYY)",
			PatternStr: `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`,
			Layout:     "01/02/2006 15:04:05",
			Examples:   []string{"01/15/2020 10:30:00"},
			Ambiguous:  true,
		},
	}

	// Compile all patterns
	for _, l := range layouts {
		l.Pattern = regexp.MustCompile(l.PatternStr)
	}

	return layouts
}
