package nnbench

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/nnbench/distance"
	"github.com/hupe1980/nnbench/index"
)

// Logger wraps slog.Logger with nnbench-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRunID tags every record with the run identifier.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithFamily adds a distance family field to the logger.
func (l *Logger) WithFamily(f distance.Family) *Logger {
	return &Logger{
		Logger: l.Logger.With("family", f.String()),
	}
}

// WithKernels adds a kernel set field to the logger.
func (l *Logger) WithKernels(k distance.Kernels) *Logger {
	return &Logger{
		Logger: l.Logger.With("kernels", k.Name()),
	}
}

// LogAllocation logs the acquisition of a vector buffer.
func (l *Logger) LogAllocation(ctx context.Context, what, allocator string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "allocation failed",
			"buffer", what,
			"allocator", allocator,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "allocation completed",
			"buffer", what,
			"allocator", allocator,
			"bytes", bytes,
		)
	}
}

// LogGeneration logs the end of random data generation.
func (l *Logger) LogGeneration(ctx context.Context, bytes int64, seed int64, elapsed time.Duration) {
	l.InfoContext(ctx, "vector generation completed",
		"bytes", bytes,
		"seed", seed,
		"elapsed", elapsed,
	)
}

// LogScan logs a completed linear scan.
func (l *Logger) LogScan(ctx context.Context, elements int, res index.Result, elapsed time.Duration) {
	l.InfoContext(ctx, "scan completed",
		"elements", elements,
		"index", res.Index,
		"distance", res.Distance,
		"elapsed", elapsed,
	)
}

// LogVerify logs one kernel set / family comparison of the verification pass.
func (l *Logger) LogVerify(ctx context.Context, elements int, mismatches uint64) {
	if mismatches > 0 {
		l.WarnContext(ctx, "verification found mismatches",
			"elements", elements,
			"mismatches", mismatches,
		)
	} else {
		l.DebugContext(ctx, "verification passed",
			"elements", elements,
		)
	}
}
