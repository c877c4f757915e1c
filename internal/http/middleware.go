package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/logging"
)

// RequestLogger attaches a correlation id to every request, carries a request
// scoped logger through the context, and logs start/completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			logger := base.With(
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
			)

			w.Header().Set("X-Request-Id", requestID)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}
