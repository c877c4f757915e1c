package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/booking"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	return logging.Operation(ctx, base, serviceName, operation, attrs...)
}

// ErrorKind maps sentinel, policy, and validation errors to a stable logging
// label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	}

	var policyErr *booking.PolicyViolation
	if errors.As(err, &policyErr) {
		return "window_rejected"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "internal"
}
