// Package backup reads event store backups: newline-delimited JSON files with
// one {"type":"event","payload":{"event":...,"hash":...}} entry per line.
package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alfredjeanlab/esaudit/internal/model"
)

// maxLineSize bounds a single backup line.
const maxLineSize = 64 << 20

// ErrNotFound is returned when a backup location does not exist.
var ErrNotFound = errors.New("backup not found")

// NotFoundError reports a missing backup. It matches ErrNotFound.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return "File not found: " + e.Location
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports a line that is not a valid backup entry.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse JSON line: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read decodes every non-blank line of r. The verbatim bytes of each event's
// data value are kept in OriginalData.
func Read(r io.Reader) ([]model.Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var entries []model.Entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		e, err := ParseEntry(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return entries, nil
}

// ParseEntry decodes a single backup entry.
func ParseEntry(b []byte) (model.Entry, error) {
	var e model.Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return model.Entry{}, err
	}
	if data := e.Payload.Event.Data; data != nil {
		e.OriginalData = bytes.Clone(data)
	}
	return e, nil
}

// Load opens src and reads all of its entries.
func Load(ctx context.Context, src Source) ([]model.Entry, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	slog.DebugContext(ctx, "backup opened", "source", src.String())
	entries, err := Read(rc)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "backup loaded", "source", src.String(), "entries", len(entries))
	return entries, nil
}

// FindByID returns the first entry whose event id is id.
func FindByID(entries []model.Entry, id string) (model.Entry, bool) {
	for _, e := range entries {
		if e.ID() == id {
			return e, true
		}
	}
	return model.Entry{}, false
}

// Hashes returns the stored digests of entries, in order.
func Hashes(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Hash()
	}
	return out
}
