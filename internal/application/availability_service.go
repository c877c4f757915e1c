package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/booking"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/timeslot"
)

// BookedSlotLister exposes the ledger read the availability engine needs.
type BookedSlotLister interface {
	ListBookedSlots(ctx context.Context, restaurantID int64, date string) ([]persistence.BookedSlot, error)
}

// AvailabilityService computes open (slot, table) pairs from catalog data and
// the current ledger contents. Reads tolerate slightly stale data; a slot
// reported open here may still lose the race at commit time, which is why the
// ledger re-checks.
type AvailabilityService struct {
	catalog CatalogRepository
	ledger  BookedSlotLister
	grid    *timeslot.Grid
	logger  *slog.Logger
}

// NewAvailabilityService wires dependencies for availability queries.
func NewAvailabilityService(catalog CatalogRepository, ledger BookedSlotLister, grid *timeslot.Grid) *AvailabilityService {
	return NewAvailabilityServiceWithLogger(catalog, ledger, grid, nil)
}

// NewAvailabilityServiceWithLogger constructs an availability service with a specified logger.
func NewAvailabilityServiceWithLogger(catalog CatalogRepository, ledger BookedSlotLister, grid *timeslot.Grid, logger *slog.Logger) *AvailabilityService {
	return &AvailabilityService{
		catalog: catalog,
		ledger:  ledger,
		grid:    grid,
		logger:  defaultLogger(logger),
	}
}

// AvailableSlots returns at most one open (slot, table) pair per time slot in
// grid order: the smallest free table that seats the party, per the first-fit
// strategy. An unknown restaurant or a party larger than every table yields an
// empty result, not an error.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, query AvailabilityQuery) ([]SlotOption, error) {
	if s == nil {
		return nil, fmt.Errorf("AvailabilityService is nil")
	}

	vErr := &ValidationError{}
	validateAvailabilityQuery(query, vErr)
	if vErr.HasErrors() {
		return nil, vErr
	}

	tables, err := s.catalog.ListTables(ctx, query.RestaurantID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		return nil, mapRepoError(err)
	}
	if len(tables) == 0 {
		return nil, nil
	}

	bookedSlots, err := s.ledger.ListBookedSlots(ctx, query.RestaurantID, query.Date)
	if err != nil {
		mapped := mapRepoError(err)
		serviceLogger(ctx, s.logger, "availability", "available_slots",
			"restaurant_id", query.RestaurantID, "date", query.Date).
			ErrorContext(ctx, "ledger read failed", "error", mapped, "error_kind", ErrorKind(mapped))
		return nil, mapped
	}

	booked := make(map[persistence.BookedSlot]struct{}, len(bookedSlots))
	for _, slot := range bookedSlots {
		booked[slot] = struct{}{}
	}

	candidates := make([]booking.Table, 0, len(tables))
	for _, table := range tables {
		candidates = append(candidates, booking.Table{
			ID:       table.ID,
			Number:   table.Number,
			Capacity: table.Capacity,
		})
	}

	assignments := booking.FirstFit(s.grid.Slots(), candidates, query.PartySize,
		func(tableID int64, slot string) bool {
			_, taken := booked[persistence.BookedSlot{TableID: tableID, TimeSlot: slot}]
			return taken
		})

	options := make([]SlotOption, 0, len(assignments))
	for _, assignment := range assignments {
		options = append(options, SlotOption{
			Time:          assignment.Slot,
			TableID:       assignment.Table.ID,
			TableNumber:   assignment.Table.Number,
			TableCapacity: assignment.Table.Capacity,
		})
	}

	return options, nil
}

// NearestSlot returns the first open slot at or after the requested time, or
// ErrNotFound when none remains. The search never wraps into the next day;
// scanning alternative dates is the caller's concern.
func (s *AvailabilityService) NearestSlot(ctx context.Context, query NearestSlotQuery) (NearestSlotResult, error) {
	if s == nil {
		return NearestSlotResult{}, fmt.Errorf("AvailabilityService is nil")
	}

	vErr := &ValidationError{}
	validateAvailabilityQuery(query.AvailabilityQuery, vErr)
	if !validClockValue(query.RequestedTime) {
		vErr.add("time", "time must use the 24h HH:MM form")
	}
	if vErr.HasErrors() {
		return NearestSlotResult{}, vErr
	}

	// A request past the final slot of the day has no answer; the grid never
	// wraps to the next day.
	fromPosition, ok := s.grid.PositionAtOrAfter(query.RequestedTime)
	if !ok {
		return NearestSlotResult{}, ErrNotFound
	}

	options, err := s.AvailableSlots(ctx, query.AvailabilityQuery)
	if err != nil {
		return NearestSlotResult{}, err
	}

	for _, option := range options {
		position, exists := s.grid.Index(option.Time)
		if !exists || position < fromPosition {
			continue
		}
		return NearestSlotResult{
			Slot:       option,
			ExactMatch: option.Time == query.RequestedTime,
		}, nil
	}

	return NearestSlotResult{}, ErrNotFound
}

func validateAvailabilityQuery(query AvailabilityQuery, vErr *ValidationError) {
	if query.RestaurantID <= 0 {
		vErr.add("restaurant_id", "restaurant id is required")
	}
	if !validDateValue(query.Date) {
		vErr.add("date", "date must use the YYYY-MM-DD form")
	}
	if query.PartySize <= 0 {
		vErr.add("party_size", "party size must be positive")
	}
}
