package stats

import (
	"time"

	"github.com/scribetools/scribelog/pkg/scribe"
)

// Option configures aggregation behavior.
type Option func(*Aggregator)

// WithMinSeverity drops records below the given severity. Ordinal
// comparison applies, so Unknown - the highest ordinal - always passes.
func WithMinSeverity(min scribe.Severity) Option {
	return func(a *Aggregator) {
		a.minSeverity = min
		a.hasMin = true
	}
}

// WithTopTitles caps the title leaderboard (default 10).
func WithTopTitles(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.topTitles = n
		}
	}
}

// WithTimeRange limits aggregation to records within the given window.
// Records without a timestamp fall outside any window.
func WithTimeRange(start, end time.Time) Option {
	return func(a *Aggregator) {
		a.timeRange = &TimeRange{Start: start, End: end}
	}
}
