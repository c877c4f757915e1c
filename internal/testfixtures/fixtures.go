package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/application"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/catalog"
)

var phoneCounter uint64

var referenceTime = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// Bookings generated against it fall inside the default booking window.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns the calendar date of ReferenceTime shifted by the
// given number of days, in the wire format used by the reservation API.
func ReferenceDate(daysAhead int) string {
	return referenceTime.AddDate(0, 0, daysAhead).Format("2006-01-02")
}

// NextPhone returns a deterministic, unique phone number.
func NextPhone() string {
	idx := atomic.AddUint64(&phoneCounter, 1)
	return fmt.Sprintf("+9198765%05d", idx)
}

// CommitParamsOption configures a generated reservation commit request.
type CommitParamsOption func(*application.CommitReservationParams)

// NewCommitParams returns commit parameters for a valid booking one day ahead
// of ReferenceTime, with optional overrides.
func NewCommitParams(opts ...CommitParamsOption) application.CommitReservationParams {
	params := application.CommitReservationParams{
		RestaurantID: 1,
		TableID:      1,
		Phone:        NextPhone(),
		CustomerName: "Asha Rao",
		Date:         ReferenceDate(1),
		TimeSlot:     "19:00",
		PartySize:    2,
	}
	for _, opt := range opts {
		opt(&params)
	}
	return params
}

// WithTable overrides the target table.
func WithTable(tableID int64) CommitParamsOption {
	return func(p *application.CommitReservationParams) {
		p.TableID = tableID
	}
}

// WithRestaurant overrides the target restaurant.
func WithRestaurant(restaurantID int64) CommitParamsOption {
	return func(p *application.CommitReservationParams) {
		p.RestaurantID = restaurantID
	}
}

// WithDate overrides the booking date.
func WithDate(date string) CommitParamsOption {
	return func(p *application.CommitReservationParams) {
		p.Date = date
	}
}

// WithTimeSlot overrides the booking slot.
func WithTimeSlot(slot string) CommitParamsOption {
	return func(p *application.CommitReservationParams) {
		p.TimeSlot = slot
	}
}

// WithPhone overrides the customer phone number.
func WithPhone(phone string) CommitParamsOption {
	return func(p *application.CommitReservationParams) {
		p.Phone = phone
	}
}

// WithPartySize overrides the party size.
func WithPartySize(size int) CommitParamsOption {
	return func(p *application.CommitReservationParams) {
		p.PartySize = size
	}
}

// SmallCatalogSeed returns a two-restaurant catalog small enough to reason
// about in persistence tests, using the standard table layout.
func SmallCatalogSeed() catalog.Seed {
	return catalog.Seed{
		Restaurants: []catalog.RestaurantSeed{
			{
				ID:       1,
				Name:     "Test Kitchen",
				Cuisine:  "Continental",
				Location: "Indiranagar",
				City:     "Bangalore",
				Rating:   4.2,
				Tables:   catalog.StandardTables(),
			},
			{
				ID:       2,
				Name:     "Harbour House",
				Cuisine:  "Seafood",
				Location: "Koramangala",
				City:     "Bangalore",
				Rating:   4.6,
				Tables:   catalog.StandardTables(),
			},
		},
	}
}
