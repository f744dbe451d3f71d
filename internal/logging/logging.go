// Package logging wires log/slog for the scanner tools: a console handler for
// diagnostics, an optional per-run JSON log file, and a run ID attached to
// every record so one scan's output can be correlated across both sinks.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// File permissions for the log directory and per-run log files.
const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// Static errors
var (
	// ErrInvalidLogLevel is returned for level names other than debug, info,
	// warn and error.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// GenerateRunID generates a new UUID v4 identifying one scan run.
func GenerateRunID() string {
	return uuid.New().String()
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}

// Options configures Setup.
type Options struct {
	// Level is the minimum level for all handlers.
	Level slog.Level

	// RunID is attached to every record as "run_id".
	RunID string

	// LogDir, when non-empty, additionally writes records as JSON lines to a
	// per-run file in this directory. The directory is created if needed.
	LogDir string

	// ConsoleWriter receives the human-oriented text output. Defaults to
	// os.Stderr so reports on stdout stay clean.
	ConsoleWriter io.Writer
}

// Setup installs the default slog logger. It returns a cleanup function that
// closes the per-run log file (a no-op when no LogDir was given).
//
// Setup must be called once during startup, before any logging occurs.
func Setup(opts Options) (func() error, error) {
	console := opts.ConsoleWriter
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: opts.Level}),
	}
	cleanup := func() error { return nil }

	if opts.LogDir != "" {
		file, err := openRunLogFile(opts.LogDir, opts.RunID)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: opts.Level}))
		cleanup = file.Close
	}

	var handler slog.Handler = NewMultiHandler(handlers...)
	if opts.RunID != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("run_id", opts.RunID)})
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// openRunLogFile creates a uniquely named log file for this run, e.g.
// "<hostname>_20060102T150405Z_<run-id>.json".
func openRunLogFile(dir, runID string) (*os.File, error) {
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	name := fmt.Sprintf("%s_%s_%s.json", hostname, timestamp, runID)

	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
