// Package timeslot models the fixed daily grid of bookable times shared by
// every restaurant. The grid is generated once at startup and never mutated,
// so values may be read concurrently without synchronization.
package timeslot

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// Grid is an ordered, immutable sequence of time-of-day values at a fixed
// interval. Slot ordering questions ("nearest slot at or after", "next N
// slots") are answered by sequence position rather than string comparison.
type Grid struct {
	slots []string
	index map[string]int
}

// NewGrid builds a grid from an opening time to a closing time, both
// inclusive, stepping by interval. Times use the 24h "HH:MM" form.
func NewGrid(open, close string, interval time.Duration) (*Grid, error) {
	openAt, err := time.Parse(clockLayout, open)
	if err != nil {
		return nil, fmt.Errorf("timeslot: invalid opening time %q: %w", open, err)
	}
	closeAt, err := time.Parse(clockLayout, close)
	if err != nil {
		return nil, fmt.Errorf("timeslot: invalid closing time %q: %w", close, err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("timeslot: interval must be positive, got %s", interval)
	}
	if closeAt.Before(openAt) {
		return nil, fmt.Errorf("timeslot: closing time %s precedes opening time %s", close, open)
	}

	grid := &Grid{index: make(map[string]int)}
	for cursor := openAt; !cursor.After(closeAt); cursor = cursor.Add(interval) {
		slot := cursor.Format(clockLayout)
		grid.index[slot] = len(grid.slots)
		grid.slots = append(grid.slots, slot)
	}

	return grid, nil
}

// Slots returns the ordered slot values. The result is a copy.
func (g *Grid) Slots() []string {
	out := make([]string, len(g.slots))
	copy(out, g.slots)
	return out
}

// Len reports the number of slots in the grid.
func (g *Grid) Len() int {
	return len(g.slots)
}

// At returns the slot at the given position.
func (g *Grid) At(i int) (string, bool) {
	if i < 0 || i >= len(g.slots) {
		return "", false
	}
	return g.slots[i], true
}

// Index reports the position of an exact slot value.
func (g *Grid) Index(slot string) (int, bool) {
	i, ok := g.index[slot]
	return i, ok
}

// PositionAtOrAfter returns the position of the first slot whose time is at or
// after the requested clock value. It reports false when the request is
// malformed or lies past the final slot of the day; the grid never wraps to
// the next day.
func (g *Grid) PositionAtOrAfter(requested string) (int, bool) {
	if i, ok := g.index[requested]; ok {
		return i, true
	}

	requestedAt, err := time.Parse(clockLayout, requested)
	if err != nil {
		return 0, false
	}

	for i, slot := range g.slots {
		slotAt, err := time.Parse(clockLayout, slot)
		if err != nil {
			continue
		}
		if !slotAt.Before(requestedAt) {
			return i, true
		}
	}

	return 0, false
}

// Contains reports whether the exact slot value belongs to the grid.
func (g *Grid) Contains(slot string) bool {
	_, ok := g.index[slot]
	return ok
}
