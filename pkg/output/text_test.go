package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/scribetools/scribelog/pkg/scribe"
	"github.com/scribetools/scribelog/pkg/stats"
)

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format_Empty(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := &Report{}

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "ScribeLog Parse Report") {
		t.Error("Output missing header")
	}
	if !strings.Contains(output, "0 files, 0 lines, 0 records, 0 discarded") {
		t.Error("Output missing summary")
	}
}

func TestTextFormatter_Format_WithRecords(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Source: test.log") {
		t.Error("Output missing source")
	}
	if !strings.Contains(output, "2 records, 1 discarded") {
		t.Error("Output missing summary counts")
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()

	// Quiet mode should be a single line
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Errorf("Quiet output has %d lines, want 1", len(lines))
	}

	if !strings.Contains(output, "ScribeLog:") {
		t.Error("Quiet output missing prefix")
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Run ID: "+report.RunID) {
		t.Error("Verbose output missing run id")
	}
	if !strings.Contains(output, "Duration:") {
		t.Error("Verbose output missing duration")
	}
}

func TestTextFormatter_Format_WithStats(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := createTestReport()
	report.Stats = stats.New().Aggregate(report.Records)

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()

	checks := []string{
		"Severity counts:",
		"Busiest threads:",
		"Top titles:",
		"Time span:",
	}
	for _, check := range checks {
		if !strings.Contains(output, check) {
			t.Errorf("Output missing %q", check)
		}
	}

	// Severities with no records stay hidden unless verbose
	if strings.Contains(output, "Trace") {
		t.Error("Output lists a severity with no records")
	}
}

func TestTextFormatter_Format_VerboseStatsListAllSeverities(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport()
	report.Stats = stats.New().Aggregate(report.Records)

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Trace") {
		t.Error("Verbose output missing zero-count severity row")
	}
}

func TestTextFormatter_Format_MergedNote(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport()
	report.Metadata.Merged = true

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "merged across files") {
		t.Error("Verbose output missing merge note")
	}
}

func createTestReport() *Report {
	baseTime := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	return &Report{
		RunID: "11111111-2222-3333-4444-555555555555",
		Summary: Summary{
			FilesParsed:      1,
			LinesRead:        100,
			RecordsEmitted:   2,
			EntriesDiscarded: 1,
		},
		Records: []scribe.Record{
			{
				Timestamp: baseTime,
				Severity:  scribe.SeverityInfo,
				Title:     "Startup",
				ThreadID:  42,
				Message:   "service started",
			},
			{
				Timestamp: baseTime.Add(10 * time.Second),
				Severity:  scribe.SeverityError,
				Title:     "Disk",
				ThreadID:  7,
				Message:   "write failed\r\nretrying",
			},
		},
		Metadata: Metadata{
			Sources:  []string{"test.log"},
			ParsedAt: baseTime,
			Duration: 100 * time.Millisecond,
		},
	}
}
