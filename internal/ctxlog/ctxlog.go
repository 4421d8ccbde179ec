// Package ctxlog carries the run's slog.Logger through context.Context, so
// advice, the weaver and plan building all log to the logger the app set up.
package ctxlog

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// WithLogger returns a copy of ctx that carries logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// With returns a copy of ctx whose logger has the given attributes added,
// for example the aspect an advice factory is building for.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// FromContext returns the logger carried by ctx, or slog.Default when ctx
// has none. Code outside an app run (tests, library use) still logs.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}
