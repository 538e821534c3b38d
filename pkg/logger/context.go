package logger

import (
	"context"
	"sync"
)

type ctxKey struct{}

// LoggerCtxKey is the context key under which the request logger is stored.
var LoggerCtxKey = ctxKey{}

var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// Default returns the process-wide fallback logger, built lazily so test
// binaries get the quiet test configuration.
func Default() Logger {
	defaultOnce.Do(func() {
		defaultLogger = NewLogger(nil)
	})
	return defaultLogger
}

// ContextWithLogger returns a child context carrying the given logger.
func ContextWithLogger(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, log)
}

// FromContext returns the logger stored in ctx, or the default logger when the
// context carries none.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if log, ok := ctx.Value(LoggerCtxKey).(Logger); ok && log != nil {
			return log
		}
	}
	return Default()
}
