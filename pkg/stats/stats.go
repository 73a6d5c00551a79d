// Package stats aggregates parsed Scribe records into summaries.
package stats

import (
	"sort"
	"time"

	"github.com/scribetools/scribelog/pkg/scribe"
)

// Aggregator computes summaries over record sequences.
type Aggregator struct {
	minSeverity scribe.Severity
	hasMin      bool
	topTitles   int
	timeRange   *TimeRange
}

// TimeRange defines a time window for filtering records.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		topTitles: 10,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summary is the aggregation over one record sequence.
type Summary struct {
	// TotalRecords is the number of records seen before filtering.
	TotalRecords int

	// Counted is the number of records included after filtering.
	Counted int

	// BySeverity lists per-severity counts in ordinal order, one row
	// per severity level including zero counts.
	BySeverity []SeverityCount

	// Threads lists per-thread counts, busiest first.
	Threads []ThreadCount

	// TopTitles lists the most frequent titles, capped by the
	// aggregator's limit.
	TopTitles []TitleCount

	// FirstSeen and LastSeen bound the counted records' timestamps.
	// Records without a timestamp do not move them.
	FirstSeen time.Time
	LastSeen  time.Time

	// Span is the distance between FirstSeen and LastSeen.
	Span time.Duration
}

// SeverityCount pairs a severity with its record count.
type SeverityCount struct {
	Severity scribe.Severity
	Name     string
	Count    int
}

// ThreadCount pairs a thread id with its record count.
type ThreadCount struct {
	ThreadID int32
	Count    int
}

// TitleCount pairs a title with its occurrence count.
type TitleCount struct {
	Title string
	Count int
}

// Aggregate computes the summary for records.
func (a *Aggregator) Aggregate(records []scribe.Record) *Summary {
	s := &Summary{
		TotalRecords: len(records),
	}

	severities := make(map[scribe.Severity]int)
	threads := make(map[int32]int)
	titles := make(map[string]int)

	for _, r := range records {
		if a.timeRange != nil {
			if r.Timestamp.Before(a.timeRange.Start) || r.Timestamp.After(a.timeRange.End) {
				continue
			}
		}
		if a.hasMin && r.Severity < a.minSeverity {
			continue
		}

		s.Counted++
		severities[r.Severity]++
		threads[r.ThreadID]++
		if r.Title != "" {
			titles[r.Title]++
		}

		if !r.Timestamp.IsZero() {
			if s.FirstSeen.IsZero() || r.Timestamp.Before(s.FirstSeen) {
				s.FirstSeen = r.Timestamp
			}
			if r.Timestamp.After(s.LastSeen) {
				s.LastSeen = r.Timestamp
			}
		}
	}

	for sev := scribe.SeverityDebug; sev <= scribe.SeverityUnknown; sev++ {
		s.BySeverity = append(s.BySeverity, SeverityCount{
			Severity: sev,
			Name:     sev.String(),
			Count:    severities[sev],
		})
	}

	for id, count := range threads {
		s.Threads = append(s.Threads, ThreadCount{ThreadID: id, Count: count})
	}
	sort.Slice(s.Threads, func(i, j int) bool {
		if s.Threads[i].Count != s.Threads[j].Count {
			return s.Threads[i].Count > s.Threads[j].Count
		}
		return s.Threads[i].ThreadID < s.Threads[j].ThreadID
	})

	for title, count := range titles {
		s.TopTitles = append(s.TopTitles, TitleCount{Title: title, Count: count})
	}
	sort.Slice(s.TopTitles, func(i, j int) bool {
		if s.TopTitles[i].Count != s.TopTitles[j].Count {
			return s.TopTitles[i].Count > s.TopTitles[j].Count
		}
		return s.TopTitles[i].Title < s.TopTitles[j].Title
	})
	if len(s.TopTitles) > a.topTitles {
		s.TopTitles = s.TopTitles[:a.topTitles]
	}

	if !s.FirstSeen.IsZero() {
		s.Span = s.LastSeen.Sub(s.FirstSeen)
	}

	return s
}

// CountFor returns the count for one severity level.
func (s *Summary) CountFor(sev scribe.Severity) int {
	for _, c := range s.BySeverity {
		if c.Severity == sev {
			return c.Count
		}
	}
	return 0
}

// HasSevere reports whether any counted record is Error or above.
func (s *Summary) HasSevere() bool {
	for _, c := range s.BySeverity {
		if c.Severity >= scribe.SeverityError && c.Severity != scribe.SeverityUnknown && c.Count > 0 {
			return true
		}
	}
	return false
}
