// Package logging configures the structured loggers used by every binary.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacedodge/internal/config"
)

// Options controls logger construction.
type Options struct {
	Prefix string
	Level  string // debug, info, warn, error; empty means info
}

// New creates a logger that writes to w.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.InfoLevel
	if opts.Level != "" {
		if parsed, err := log.ParseLevel(strings.ToLower(opts.Level)); err == nil {
			level = parsed
		}
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          opts.Prefix,
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// FromEnv builds a logger from LOG_LEVEL and LOG_FILE. When LOG_FILE is empty
// the fallback writer is used. The returned closer must be called on exit.
func FromEnv(prefix string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	opts := Options{
		Prefix: prefix,
		Level:  config.GetEnv("LOG_LEVEL", "info"),
	}

	path := config.GetEnv("LOG_FILE", "")
	if path == "" {
		return New(fallback, opts), nopCloser{}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return New(fallback, opts), nopCloser{}, fmt.Errorf("open log file %s: %w", path, err)
	}
	return New(f, opts), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
