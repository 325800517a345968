package index

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with hnswkv-specific fields, grounded on the
// teacher's Logger (logger.go).
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger backed by handler. A nil handler uses a text
// handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)})
	return &Logger{Logger: slog.New(handler)}
}

func (l *Logger) withNamespace(namespace string) *Logger {
	return &Logger{Logger: l.Logger.With("namespace", namespace)}
}

func (l *Logger) withInstance(instanceID string) *Logger {
	return &Logger{Logger: l.Logger.With("instance_id", instanceID)}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, id uint32, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed", "id", id, "dimension", dimension, "error", err)
		return
	}
	l.DebugContext(ctx, "insert completed", "id", id, "dimension", dimension)
}

// LogSearch logs a knn_search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed", "k", k, "error", err)
		return
	}
	l.DebugContext(ctx, "search completed", "k", k, "results", resultsFound)
}

// LogGet logs a get operation.
func (l *Logger) LogGet(ctx context.Context, id uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "get failed", "id", id, "error", err)
		return
	}
	l.DebugContext(ctx, "get completed", "id", id)
}
