// Package sink writes outcome records to the append-only results file.
//
// Every record, success or failure, is one newline-terminated JSON line so
// the file stays a uniform JSON-lines document no matter how outcomes
// interleave.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ride-estimates/internal/domain/route"
	"ride-estimates/internal/ports"
)

// FileSink appends one JSON line per outcome to a local file. Appends from
// concurrent request pipelines are serialized by a mutex on top of O_APPEND,
// so each record lands whole.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens (creating if needed) the sink file for appending.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create sink directory: %v", route.ErrSinkWrite, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", route.ErrSinkWrite, path, err)
	}

	return &FileSink{file: file}, nil
}

// Append serializes the result and writes it as one line.
func (s *FileSink) Append(ctx context.Context, res *route.Result) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", route.ErrSinkWrite, err)
	}

	line, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("%w: marshal result %s: %v", route.ErrSinkWrite, res.UUID, err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("%w: append result %s: %v", route.ErrSinkWrite, res.UUID, err)
	}

	return nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

var _ ports.Sink = (*FileSink)(nil)
