package observability

import (
	"context"
	"log/slog"

	"github.com/LyraHealth/auto-thunk/id"
	"github.com/LyraHealth/auto-thunk/thunk"
)

// Compile-time interface check.
var _ thunk.Logger = (*Logger)(nil)

// Logger writes descriptor logs through slog.
type Logger struct {
	logger *slog.Logger
	level  slog.Level
}

// LoggerOption configures a Logger.
type LoggerOption func(*Logger)

// WithLevel sets the level records are written at. Default is Info.
func WithLevel(l slog.Level) LoggerOption {
	return func(lg *Logger) { lg.level = l }
}

// NewLogger returns a Logger writing to l, or to slog.Default() when l is nil.
func NewLogger(l *slog.Logger, opts ...LoggerOption) *Logger {
	if l == nil {
		l = slog.Default()
	}
	lg := &Logger{logger: l, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(lg)
	}
	return lg
}

// Log implements thunk.Logger.
func (l *Logger) Log(ctx context.Context, identifier string, payload any) {
	attrs := []slog.Attr{
		slog.String("log_id", identifier),
		slog.Any("payload", payload),
	}
	if tid, ok := id.FromContext(ctx); ok {
		attrs = append(attrs, slog.String("thunk_id", tid.String()))
	}
	l.logger.LogAttrs(ctx, l.level, "thunk log", attrs...)
}
