package streamknn

import (
	"errors"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with regressor-specific helpers.
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

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithWindowSize adds a window size field to the logger.
func (l *Logger) WithWindowSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("window_size", size),
	}
}

// LogLearn logs a learn operation.
func (l *Logger) LogLearn(windowSize, dimension int) {
	l.Debug("learn completed",
		"window_size", windowSize,
		"dimension", dimension,
	)
}

// LogPredict logs a predict operation. Warm-up refusals are logged at debug
// level rather than as errors.
func (l *Logger) LogPredict(k int, err error) {
	switch {
	case errors.Is(err, ErrInsufficientData):
		l.Debug("prediction skipped",
			"k", k,
			"reason", err,
		)
	case err != nil:
		l.Error("prediction failed",
			"k", k,
			"error", err,
		)
	default:
		l.Debug("prediction completed",
			"k", k,
		)
	}
}
