package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewTSVFormatter(t *testing.T) {
	f := NewTSVFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTSVFormatter() returned nil")
	}
	if f.Name() != "tsv" {
		t.Errorf("Name() = %q, want %q", f.Name(), "tsv")
	}
}

func TestTSVFormatter_Format(t *testing.T) {
	f := NewTSVFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Output has %d lines, want 3 (header + 2 records)", len(lines))
	}

	if lines[0] != "Timestamp\tSeverity\tTitle\tThreadID\tMessage" {
		t.Errorf("Header = %q", lines[0])
	}

	want := "2024-01-15 10:00:00\tInfo\tStartup\t42\tservice started"
	if lines[1] != want {
		t.Errorf("Row = %q, want %q", lines[1], want)
	}
}

func TestTSVFormatter_Format_ReplacesMessageLineBreaks(t *testing.T) {
	f := NewTSVFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "\r\n") {
		t.Error("Output contains a raw CRLF inside a row")
	}
	if !strings.Contains(output, `write failed\nretrying`) {
		t.Error("Output missing flattened multi-line message")
	}
}

func TestTSVFormatter_Format_CustomLineBreak(t *testing.T) {
	f := NewTSVFormatter(FormatOptions{LineBreak: " | "})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "write failed | retrying") {
		t.Error("Output missing custom line break replacement")
	}
}

func TestTSVFormatter_Format_Quiet(t *testing.T) {
	f := NewTSVFormatter(FormatOptions{Quiet: true})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if strings.Contains(buf.String(), "Timestamp\tSeverity") {
		t.Error("Quiet output contains header row")
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("Quiet output has %d lines, want 2", len(lines))
	}
}

func TestTSVFormatter_Format_NoRecords(t *testing.T) {
	f := NewTSVFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), NewReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("Output has %d lines, want header only", len(lines))
	}
}
