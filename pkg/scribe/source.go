package scribe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// LineSource supplies the ordered lines of one log stream. Next returns
// io.EOF once the stream is exhausted. The source owns the underlying
// resource; the parser only reads.
type LineSource interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// FileSource reads lines from a single log file. Files ending in .gz or
// .zst are decompressed transparently.
type FileSource struct {
	file    *os.File
	gzip    *gzip.Reader
	zstd    *zstd.Decoder
	scanner *bufio.Scanner
	path    string
	line    int
}

// NewFileSource opens path for line-by-line reading.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	s := &FileSource{file: f, path: path}

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("opening gzip log %s: %w", path, err)
		}
		s.gzip = gz
		r = gz
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("opening zstd log %s: %w", path, err)
		}
		s.zstd = dec
		r = dec
	}

	s.scanner = bufio.NewScanner(r)
	s.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	return s, nil
}

// Next returns the next line of the file.
// Returns io.EOF when the file is exhausted.
func (s *FileSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if s.scanner.Scan() {
		s.line++
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s at line %d: %w", s.path, s.line+1, err)
	}
	return "", io.EOF
}

// Close releases the file and any decompressor.
func (s *FileSource) Close() error {
	if s.zstd != nil {
		s.zstd.Close()
		s.zstd = nil
	}
	var gzErr error
	if s.gzip != nil {
		gzErr = s.gzip.Close()
		s.gzip = nil
	}
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		if err != nil {
			return err
		}
	}
	return gzErr
}

// ReaderSource reads lines from an io.Reader. Closing a ReaderSource does
// not close the underlying reader.
type ReaderSource struct {
	scanner *bufio.Scanner
}

// NewReaderSource wraps r as a LineSource.
func NewReaderSource(r io.Reader) *ReaderSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ReaderSource{scanner: sc}
}

// Next returns the next line of the reader.
// Returns io.EOF when the reader is exhausted.
func (s *ReaderSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return "", io.EOF
}

// Close is a no-op; the caller owns the reader.
func (s *ReaderSource) Close() error { return nil }
