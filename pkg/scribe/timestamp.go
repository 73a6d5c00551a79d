package scribe

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order when parsing the Timestamp field.
// The vendor writes whatever the host locale produces, so the table covers
// the layouts seen in the wild; first match wins.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"01/02/2006 15:04:05",
	"02/01/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	time.RFC3339,
}

// parseTimestamp parses a Timestamp field value against the known layouts.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
