package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// FileSink is the persistent append-only log destination.
type FileSink struct {
	*os.File
	Path string
}

// OpenFileSink opens path for appending, creating it and its directory when missing.
func OpenFileSink(path string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &FileSink{File: f, Path: path}, nil
}

// Sinks collects every writer a run logs to so they can be closed together.
type Sinks struct {
	writers []io.Writer
	closers []io.Closer
}

// Add registers a writer. Writers that also implement io.Closer are closed by Close.
func (s *Sinks) Add(w io.Writer) {
	if w == nil {
		return
	}
	s.writers = append(s.writers, w)
	if c, ok := w.(io.Closer); ok && w != io.Writer(os.Stderr) && w != io.Writer(os.Stdout) {
		s.closers = append(s.closers, c)
	}
}

// Writer returns the fan-out writer over all registered sinks.
func (s *Sinks) Writer() io.Writer {
	if len(s.writers) == 0 {
		return os.Stderr
	}
	return MultiWriter(s.writers...)
}

// Close closes every closable sink and returns the first error.
func (s *Sinks) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

// logBridge adapts the standard log.Logger to write to our structured Logger
type logBridge struct{}

func (b *logBridge) Write(p []byte) (n int, err error) {
	msg := string(bytes.TrimSpace(p))
	Default().Info(msg)
	return len(p), nil
}

// RedirectStdLog configures the standard 'log' package to write to our structured logger.
func RedirectStdLog() {
	log.SetFlags(0)
	log.SetOutput(&logBridge{})
}
