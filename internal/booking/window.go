// Package booking holds the pure domain rules of the reservation core: the
// advance-booking window policy and the first-fit table assignment strategy.
// Nothing in this package touches storage or the clock; callers supply both.
package booking

import (
	"fmt"
	"time"
)

// DefaultHorizonDays is how far ahead a booking may target when no explicit
// policy is configured.
const DefaultHorizonDays = 3

// Violation codes reported by the window policy.
const (
	ViolationPastDate      = "past_date"
	ViolationBeyondHorizon = "beyond_horizon"
)

// PolicyViolation explains why a candidate date was rejected. The message is
// safe to surface verbatim to end users.
type PolicyViolation struct {
	Code     string
	Message  string
	DaysOver int
}

// Error implements the error interface.
func (v *PolicyViolation) Error() string {
	if v == nil {
		return ""
	}
	return v.Message
}

// WindowPolicy decides whether a candidate date is bookable "now". Comparison
// is by calendar date, not instant: any time today is acceptable for a booking
// today.
type WindowPolicy struct {
	HorizonDays int
}

// NewWindowPolicy returns a policy with the given horizon, falling back to the
// default when horizonDays is negative.
func NewWindowPolicy(horizonDays int) WindowPolicy {
	if horizonDays < 0 {
		horizonDays = DefaultHorizonDays
	}
	return WindowPolicy{HorizonDays: horizonDays}
}

// Validate reports nil when target is bookable as of today, and a
// *PolicyViolation otherwise. Each argument is truncated to its calendar date
// in its own location before comparison, so "today" is the caller's wall-clock
// date regardless of the zone the target was parsed in.
func (p WindowPolicy) Validate(target, today time.Time) error {
	targetDay := dateOf(target)
	todayDay := dateOf(today)

	if targetDay.Before(todayDay) {
		return &PolicyViolation{
			Code:    ViolationPastDate,
			Message: "cannot book for past dates",
		}
	}

	daysAhead := int(targetDay.Sub(todayDay).Hours() / 24)
	if daysAhead > p.HorizonDays {
		return &PolicyViolation{
			Code:     ViolationBeyondHorizon,
			DaysOver: daysAhead - p.HorizonDays,
			Message: fmt.Sprintf("bookings can only be made up to %d days in advance; the requested date is %d days ahead",
				p.HorizonDays, daysAhead),
		}
	}

	return nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
