// Package detector identifies Scribe-format log files and the timestamp
// layout they carry.
package detector

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/scribetools/scribelog/pkg/scribe"
)

// fieldLabels are the five labels a Scribe entry carries, in order.
var fieldLabels = []string{
	"Timestamp:",
	"Severity:",
	"Title:",
	"Win32 ThreadID:",
	"Message:",
}

// Detection holds the result of analyzing a log sample.
type Detection struct {
	Structure      float64       // 0.0 to 1.0: share of sampled lines that are delimiters or labeled fields
	DelimiterCount int           // Exact delimiter lines seen
	FieldLineCount int           // Lines starting with a known field label
	SampledLines   int           // Number of lines sampled
	TimestampLines int           // Timestamp field lines inspected for layout voting
	Layouts        []LayoutMatch // Candidate timestamp layouts, sorted by votes descending
	AmbiguityNote  string        // Warning about date ordering if applicable
}

// LayoutMatch represents a timestamp layout that matched with its score.
type LayoutMatch struct {
	Layout     *TimestampLayout
	Confidence float64   // 0.0 to 1.0 (share of timestamp lines matched)
	Votes      int       // Number of timestamp values that matched
	SampleLine string    // Example value that matched
	ParsedTime time.Time // Parsed timestamp from sample
}

// Detector analyzes log files for Scribe structure.
type Detector struct {
	layouts    []*TimestampLayout
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with the default layout table.
func New(opts ...Option) *Detector {
	d := &Detector{
		layouts:    DefaultLayouts(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFile samples a log file and returns what it found. Compressed
// files are sampled through the same decompression the parser uses.
func (d *Detector) DetectFile(ctx context.Context, path string) (*Detection, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines.
func (d *Detector) DetectFromLines(lines []string) *Detection {
	result := &Detection{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	votes := make(map[string]*LayoutMatch)
	structural := 0

	for _, line := range lines {
		if line == scribe.Delimiter {
			result.DelimiterCount++
			structural++
			continue
		}

		label := matchLabel(line)
		if label == "" {
			continue
		}
		result.FieldLineCount++
		structural++

		if label != "Timestamp:" {
			continue
		}

		// Vote on the timestamp layout using the field value.
		value := strings.Trim(line[len(label):], " ")
		result.TimestampLines++
		for _, layout := range d.layouts {
			if !layout.Pattern.MatchString(value) {
				continue
			}
			parsed, err := time.Parse(layout.Layout, value)
			if err != nil {
				continue
			}

			key := layout.Name
			if votes[key] == nil {
				votes[key] = &LayoutMatch{
					Layout:     layout,
					SampleLine: value,
					ParsedTime: parsed,
				}
			}
			votes[key].Votes++
		}
	}

	result.Structure = float64(structural) / float64(len(lines))

	for _, m := range votes {
		if result.TimestampLines > 0 {
			m.Confidence = float64(m.Votes) / float64(result.TimestampLines)
		}
		result.Layouts = append(result.Layouts, *m)
	}

	// Sort by votes descending, then by pattern length (more specific first)
	sort.Slice(result.Layouts, func(i, j int) bool {
		if result.Layouts[i].Votes != result.Layouts[j].Votes {
			return result.Layouts[i].Votes > result.Layouts[j].Votes
		}
		return len(result.Layouts[i].Layout.PatternStr) > len(result.Layouts[j].Layout.PatternStr)
	})

	if best := result.BestLayout(); best != nil && best.Layout.Ambiguous {
		result.AmbiguityNote = "This layout has date ordering ambiguity (MM/DD vs DD/MM). " +
			"The parser tries the US ordering first; day-first values parse on the fallback layout."
	}

	return result
}

// sampleFile reads up to sampleSize lines from a file.
// Uses simple head sampling for efficiency.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	src, err := scribe.NewFileSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var lines []string
	for len(lines) < d.sampleSize {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// matchLabel returns the field label the line starts with, or "".
func matchLabel(line string) string {
	for _, label := range fieldLabels {
		if strings.HasPrefix(line, label) {
			return label
		}
	}
	return ""
}

// IsScribe reports whether the sample looks like a Scribe log: at least
// one complete delimiter pair and a quarter of the lines structural.
func (r *Detection) IsScribe() bool {
	return r.DelimiterCount >= 2 && r.Structure >= 0.25
}

// BestLayout returns the highest scoring layout, or nil if none matched.
func (r *Detection) BestLayout() *LayoutMatch {
	if len(r.Layouts) == 0 {
		return nil
	}
	return &r.Layouts[0]
}
