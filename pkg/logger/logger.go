package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance with the specified log level,
// writing JSON lines to stdout
func New(level string) *Logger {
	return newWithWriter(level, os.Stdout)
}

// NewFile creates a logger that appends to the given file path. The file is
// opened in append mode so an external rotation can truncate it underneath us.
// Falls back to stdout when the file cannot be opened.
func NewFile(level, path string) *Logger {
	if path == "" {
		return New(level)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		l := New(level)
		l.Warn("Failed to open log file, logging to stdout", "path", path, "error", err)
		return l
	}
	return newWithWriter(level, f)
}

func newWithWriter(level string, w *os.File) *Logger {
	var logLevel slog.Level

	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "INFO":
		logLevel = slog.LevelInfo
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewJSONHandler(w, opts)
	logger := slog.New(handler)

	return &Logger{Logger: logger}
}

// WithRefNo returns a logger with transaction reference context
func (l *Logger) WithRefNo(refNo string) *Logger {
	return &Logger{
		Logger: l.With("ref_no", refNo),
	}
}

// WithError returns a logger with error context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.With("error", err),
	}
}
