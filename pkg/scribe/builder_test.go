package scribe

import (
	"testing"
	"time"
)

func TestRecordBuilder_FieldProgression(t *testing.T) {
	b := newRecordBuilder()

	b.setField("2020-01-01 12:00:00")
	b.setField("Info")
	b.setField("Hello")
	b.setField("42")
	b.setField("line one")

	if b.cursor != fieldCount {
		t.Fatalf("Expected cursor %d after five fields, got %d", fieldCount, b.cursor)
	}
	if b.tainted {
		t.Fatal("Expected untainted builder")
	}

	b.appendMessage("continuation line")

	got := b.build()
	want := Record{
		Timestamp: time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC),
		Severity:  SeverityInfo,
		Title:     "Hello",
		ThreadID:  42,
		Message:   "line one\r\ncontinuation line",
	}
	if !got.Equal(want) {
		t.Errorf("build() = %+v, want %+v", got, want)
	}
}

func TestRecordBuilder_TaintOnBadTimestamp(t *testing.T) {
	b := newRecordBuilder()
	b.setField("not a timestamp")

	if !b.tainted {
		t.Error("Expected taint after timestamp parse failure")
	}
	if b.cursor != 1 {
		t.Errorf("Expected cursor to advance to 1, got %d", b.cursor)
	}
}

func TestRecordBuilder_TaintOnBadThreadID(t *testing.T) {
	b := newRecordBuilder()
	b.setField("2020-01-01 12:00:00")
	b.setField("Info")
	b.setField("Hello")
	b.setField("notanumber")

	if !b.tainted {
		t.Error("Expected taint after thread id parse failure")
	}
}

func TestRecordBuilder_ThreadIDRange(t *testing.T) {
	// Thread ids are 32-bit signed; overflow taints.
	b := newRecordBuilder()
	b.setField("2020-01-01 12:00:00")
	b.setField("Info")
	b.setField("Hello")
	b.setField("2147483648")

	if !b.tainted {
		t.Error("Expected taint for thread id above int32 range")
	}

	b = newRecordBuilder()
	b.setField("2020-01-01 12:00:00")
	b.setField("Info")
	b.setField("Hello")
	b.setField("-2147483648")

	if b.tainted {
		t.Error("Expected minimum int32 thread id to parse")
	}
	if b.threadID != -2147483648 {
		t.Errorf("threadID = %d, want -2147483648", b.threadID)
	}
}

func TestRecordBuilder_TaintedWritesDropped(t *testing.T) {
	b := newRecordBuilder()
	b.setField("garbage")
	b.setField("Error")
	b.appendMessage("ignored")

	if b.severity != SeverityUnknown {
		t.Errorf("Tainted builder recorded severity %v", b.severity)
	}
	if len(b.message) != 0 {
		t.Error("Tainted builder recorded message lines")
	}
	if b.cursor != 2 {
		t.Errorf("Tainted builder should still track cursor, got %d", b.cursor)
	}
}

func TestRecordBuilder_Reset(t *testing.T) {
	b := newRecordBuilder()
	b.setField("2020-01-01 12:00:00")
	b.setField("Error")
	b.setField("Title")
	b.setField("7")
	b.setField("msg")
	b.taint()

	b.reset()

	if b.cursor != 0 || b.tainted {
		t.Error("reset should clear cursor and taint")
	}
	got := b.build()
	want := Record{Severity: SeverityUnknown}
	if !got.Equal(want) {
		t.Errorf("Record after reset = %+v, want zero values", got)
	}
}
