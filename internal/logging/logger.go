// Package logging provides structured logging for helmsman applications.
// It wraps Go's log/slog package to produce JSON-formatted logs with
// navigation context propagation, suitable for post-hoc analysis of
// route-resolution traces.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger provides structured logging with navigation context propagation.
// It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	closer io.Closer
}

// Options configures log output.
type Options struct {
	// Dir is the directory to write helmsman.log into. Empty means
	// stderr.
	Dir string
	// Level is one of DEBUG, INFO, WARN, ERROR. Unrecognized values
	// fall back to INFO.
	Level string
	// Rotation controls size-based rotation of the log file. The zero
	// value disables rotation.
	Rotation RotationConfig
}

// NewLogger creates a Logger writing JSON-formatted entries. With a
// non-empty Dir the log file is created at {dir}/helmsman.log, rotated
// per the rotation config; otherwise entries go to stderr.
func NewLogger(opts Options) (*Logger, error) {
	var writer io.Writer = os.Stderr
	var closer io.Closer

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rw, err := NewRotatingWriter(filepath.Join(opts.Dir, "helmsman.log"), opts.Rotation)
		if err != nil {
			return nil, err
		}
		writer = rw
		closer = rw
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	})

	return &Logger{
		logger: slog.New(handler),
		closer: closer,
	}, nil
}

// parseLevel converts a string log level to slog.Level.
// Defaults to INFO if the level string is not recognized.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog returns the underlying slog.Logger for injection into components
// that take one directly.
func (l *Logger) Slog() *slog.Logger { return l.logger }

// WithCoordinator returns a child Logger with the coordinator ID added
// to all entries.
func (l *Logger) WithCoordinator(id string) *Logger {
	return l.child(l.logger.With("coordinator", id))
}

// WithRoute returns a child Logger with the route identifier added to
// all entries.
func (l *Logger) WithRoute(id string) *Logger {
	return l.child(l.logger.With("route", id))
}

// WithComponent returns a child Logger with a component name added to
// all entries, e.g. "router" or "deeplink".
func (l *Logger) WithComponent(name string) *Logger {
	return l.child(l.logger.With("component", name))
}

// With returns a child Logger with arbitrary alternating key-value
// attributes.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	return l.child(l.logger.With(args...))
}

func (l *Logger) child(sl *slog.Logger) *Logger {
	return &Logger{logger: sl, closer: l.closer}
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Info logs a message at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Warn logs a message at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Error logs a message at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Close flushes and closes the log file. It is a no-op for stderr
// loggers.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// NopLogger returns a Logger that discards all output. Useful for tests
// and for disabling logging entirely.
func NopLogger() *Logger {
	return &Logger{logger: slog.New(slog.DiscardHandler)}
}

// ParseLevel normalizes a level string, returning LevelInfo for
// unrecognized input.
func ParseLevel(level string) string {
	switch strings.ToUpper(level) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return strings.ToUpper(level)
	default:
		return LevelInfo
	}
}

// ValidLevels returns the list of valid log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
