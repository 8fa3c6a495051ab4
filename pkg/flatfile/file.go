// Package flatfile persists records as newline-delimited text files.
//
// Houses and tenants are rewritten whole after each mutation (SaveAll);
// agreements and payments are append-only logs (AppendOne).
package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/pathutil"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

// ErrIOFailure is returned when a record file cannot be read or written.
var ErrIOFailure = errors.New("record file I/O failure")

const maxLineSize = 1 << 20

// File is a record file of type T.
type File[T any] struct {
	path  string
	codec rental.Codec[T]
}

// New creates a File for path using codec to encode and decode lines.
func New[T any](path string, codec rental.Codec[T]) *File[T] {
	return &File[T]{path: path, codec: codec}
}

// Path returns the file path.
func (f *File[T]) Path() string {
	return f.path
}

// LoadAll reads every decodable record in file order.
// A missing file yields an empty slice and no error. Malformed lines are
// logged and counted in skipped; they never abort the read.
func (f *File[T]) LoadAll() (records []T, skipped int, err error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No previous records found", "path", f.path)
		return []T{}, 0, nil
	}
	if err != nil {
		return []T{}, 0, fmt.Errorf("%w: failed to open %s: %w", ErrIOFailure, f.path, err)
	}
	defer file.Close()

	records = []T{}
	reader := bufio.NewReader(file)

	lineNo := 0
	for {
		line, tooLong, err := readLine(reader, maxLineSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []T{}, 0, fmt.Errorf("%w: failed to read %s: %w", ErrIOFailure, f.path, err)
		}
		lineNo++

		if tooLong {
			skipped++
			slog.Warn("Skipping oversized record", "path", f.path, "line", lineNo, "limit", maxLineSize)
			continue
		}
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		record, err := f.codec.Decode(line)
		if err != nil {
			skipped++
			slog.Warn("Skipping malformed record", "path", f.path, "line", lineNo, "error", err)
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}

// readLine returns the next line without its terminator. A line longer
// than limit bytes is consumed to its end and reported as tooLong with an
// empty text. io.EOF is returned only when no more lines remain.
func readLine(r *bufio.Reader, limit int) (string, bool, error) {
	var buf []byte
	seen, tooLong := false, false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && seen {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		seen = true

		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// SaveAll rewrites the file with one line per record, in order.
// Every record is encoded before the file is touched, so an unencodable
// record leaves the previous contents intact.
func (f *File[T]) SaveAll(records []T) error {
	var sb strings.Builder
	for i, record := range records {
		line, err := f.codec.Encode(record)
		if err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if err := pathutil.EnsureParentDir(f.path); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.WriteFile(f.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrIOFailure, f.path, err)
	}

	return nil
}

// AppendOne appends a single encoded record to the end of the file,
// creating it if needed.
func (f *File[T]) AppendOne(record T) error {
	line, err := f.codec.Encode(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if err := pathutil.EnsureParentDir(f.path); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s for appending: %w", ErrIOFailure, f.path, err)
	}

	if _, err := file.WriteString(line + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("%w: failed to append to %s: %w", ErrIOFailure, f.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", ErrIOFailure, f.path, err)
	}

	return nil
}
