package alphamap

import "log/slog"

// defaultMaxLineLen bounds a single line of a text alphabet definition.
// The format caps out well below this; over-long lines are skipped, not
// fatal.
const defaultMaxLineLen = 1024

type options struct {
	logger     *Logger
	maxLineLen int
}

// Option configures text loading behavior.
type Option func(*options)

// WithLogger configures structured logging for load diagnostics.
// Rejected range definitions are logged at warn level. By default
// diagnostics go to a text logger on stderr; pass NoopLogger() to
// silence them. A nil logger is ignored.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMaxLineLength overrides the per-line byte bound applied while
// scanning text definitions. Lines exceeding the bound are skipped like
// any other non-matching line.
func WithMaxLineLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineLen = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:     NewLogger(nil),
		maxLineLen: defaultMaxLineLen,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
