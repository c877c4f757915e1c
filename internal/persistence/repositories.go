package persistence

import "context"

// RestaurantFilter narrows catalog searches. All fields are optional;
// Cuisine and Location match as case-insensitive substrings, Name as a
// case-insensitive substring of the restaurant name.
type RestaurantFilter struct {
	Cuisine  string
	Location string
	Name     string
}

// RestaurantRepository exposes read operations over the seeded catalog.
type RestaurantRepository interface {
	GetRestaurant(ctx context.Context, id int64) (Restaurant, error)
	SearchRestaurants(ctx context.Context, filter RestaurantFilter) ([]Restaurant, error)
	ListTables(ctx context.Context, restaurantID int64) ([]Table, error)
}

// CommitReservationParams carries the fields the ledger writes on a commit.
// Ref assignment happens inside the commit transaction.
type CommitReservationParams struct {
	RestaurantID int64
	TableID      int64
	Phone        string
	CustomerName string
	Date         string
	TimeSlot     string
	PartySize    int
}

// ReservationRepository is the authoritative booking ledger. CommitReservation
// performs the invariant re-check, reference allocation, insert, and customer
// counter update as one atomic unit; racing commits for the same
// (table, date, slot) key resolve to exactly one success, the rest observing
// ErrSlotTaken.
type ReservationRepository interface {
	CommitReservation(ctx context.Context, params CommitReservationParams) (ReservationDetail, error)
	CancelReservation(ctx context.Context, ref string) error
	GetReservation(ctx context.Context, ref string) (ReservationDetail, error)
	ListCustomerReservations(ctx context.Context, phone string, limit int) ([]ReservationDetail, error)
	ListBookedSlots(ctx context.Context, restaurantID int64, date string) ([]BookedSlot, error)
	Stats(ctx context.Context) (Stats, error)
}

// CustomerRepository stores phone-keyed customer profiles.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer Customer) (Customer, error)
	GetCustomer(ctx context.Context, phone string) (Customer, error)
	CustomerExists(ctx context.Context, phone string) (bool, error)
}
