package hnsw

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with index-specific context, grounded on the
// teacher module's top-level Logger wrapper. A nil *Logger is valid and
// disables logging entirely (each logging method checks for nil).
type Logger struct {
	*slog.Logger
}

// NewLogger wraps an existing slog.Handler.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

func (l *Logger) logInsert(id any, dimension int, created bool, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Error("insert failed", "id", id, "dimension", dimension, "error", err)
		return
	}
	l.Debug("insert", "id", id, "dimension", dimension, "created", created)
}

func (l *Logger) logRemove(id any, ok bool) {
	if l == nil {
		return
	}
	l.Debug("remove", "id", id, "removed", ok)
}

func (l *Logger) logResize(oldSize, newSize int) {
	if l == nil {
		return
	}
	l.Info("resize", "old_size", oldSize, "new_size", newSize)
}

func (l *Logger) logSearch(k int, ef int, results int) {
	if l == nil {
		return
	}
	l.Debug("search", "k", k, "ef", ef, "results", results)
}
