package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nukewatch/reactorstatus/internal/classify"
)

// PSVWriter appends serialized records to a pipe-delimited text artifact,
// one record per line, newline-terminated.
type PSVWriter struct {
	f     *os.File
	w     *bufio.Writer
	count int
}

// NewPSVWriter creates (or truncates) the output file, creating parent
// directories as needed.
func NewPSVWriter(path string) (*PSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return &PSVWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Append writes the records in order.
func (p *PSVWriter) Append(recs []classify.Record) error {
	for _, r := range recs {
		if _, err := p.w.WriteString(r.PSV() + "\n"); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		p.count++
	}
	return nil
}

// Count reports how many records have been written so far.
func (p *PSVWriter) Count() int { return p.count }

// Close flushes and closes the artifact.
func (p *PSVWriter) Close() error {
	if err := p.w.Flush(); err != nil {
		p.f.Close()
		return err
	}
	return p.f.Close()
}
