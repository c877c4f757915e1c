package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique key is already present.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrSlotTaken is returned when a confirmed reservation already claims the
	// (table, date, slot) key a commit is trying to write.
	ErrSlotTaken = errors.New("persistence: slot already taken")
	// ErrConstraintViolation is returned for inputs that violate schema rules.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrUnavailable is returned when the store itself cannot be reached, so
	// callers can distinguish infrastructure failures from business rejections.
	ErrUnavailable = errors.New("persistence: storage unavailable")
)
