package alphamap

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with alphamap-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds a dictionary name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogRejectedLine logs a text line that matched the range pattern but was
// rejected. Rejections are per-line diagnostics; loading continues.
func (l *Logger) LogRejectedLine(line int, begin, end Char) {
	l.Warn("rejected range definition",
		"line", line,
		"range", Range{Begin: begin, End: end}.String(),
	)
}

// LogLoad logs a named alphabet load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, ranges int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "alphabet load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "alphabet load completed",
			"name", name,
			"ranges", ranges,
		)
	}
}
