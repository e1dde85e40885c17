package logging

import (
	"context"
	"log/slog"
)

// Logger receives the engine's records. Proving and accepted proofs are
// reported at Debug, rejected proofs at Warn.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger writing to logger. With nil, every record goes to
// whatever slog.Default() is at the time it is written.
func New(logger *slog.Logger) Logger {
	return slogLogger{base: logger}
}

type slogLogger struct {
	base  *slog.Logger
	attrs []any
}

func (l slogLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelDebug, msg, args)
}

func (l slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelWarn, msg, args)
}

func (l slogLogger) With(args ...any) Logger {
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	return slogLogger{base: l.base, attrs: append(attrs, args...)}
}

func (l slogLogger) emit(ctx context.Context, level slog.Level, msg string, args []any) {
	logger := l.base
	if logger == nil {
		logger = slog.Default()
	}
	if !logger.Enabled(ctx, level) {
		return
	}
	if len(l.attrs) > 0 {
		logger = logger.With(l.attrs...)
	}
	logger.Log(ctx, level, msg, args...)
}

// Nop returns a Logger that discards every record.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) With(...any) Logger                  { return n }
