package lloyd

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with lloyd-specific context.
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

// LogIteration logs one Lloyd iteration at debug level.
func (l *Logger) LogIteration(ctx context.Context, iteration int, shift float64, emptyClusters int) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"shift", shift,
		"empty_clusters", emptyClusters,
	)
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, iterations, clusters int, converged bool) {
	l.InfoContext(ctx, "clustering run completed",
		"iterations", iterations,
		"clusters", clusters,
		"converged", converged,
	)
}
