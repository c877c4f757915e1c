package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrSlotTaken is returned when a commit loses the race for a
	// (table, date, slot) key. Callers should retry against fresh availability.
	ErrSlotTaken = errors.New("application: slot just taken")
	// ErrAlreadyExists is returned when a duplicate key creation is attempted.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrStorageUnavailable is returned when the store cannot be reached, so
	// callers can distinguish infrastructure failures from business rejections.
	ErrStorageUnavailable = errors.New("application: storage unavailable")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
