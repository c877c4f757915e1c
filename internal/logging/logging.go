// Package logging carries request-scoped loggers through the reservation
// core. The HTTP middleware attaches a logger enriched with the request id to
// each context; services recover it here so every line emitted for one
// booking flow shares the same correlation attributes.
package logging

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// ContextWithLogger returns a derived context carrying logger. A nil context
// or logger leaves ctx unchanged.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger attached to ctx, or nil when none is.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return logger
}

// Operation returns the request-scoped logger from ctx when one is attached,
// the fallback otherwise, labelled with the service and operation handling
// the request plus any extra attributes. A nil fallback resolves to
// slog.Default, so the result is always usable.
func Operation(ctx context.Context, fallback *slog.Logger, service, operation string, attrs ...any) *slog.Logger {
	logger := FromContext(ctx)
	if logger == nil {
		logger = fallback
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := make([]any, 0, 4+len(attrs))
	pairs = append(pairs, "service", service)
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	pairs = append(pairs, attrs...)
	return logger.With(pairs...)
}
