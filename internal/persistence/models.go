package persistence

import "time"

// Reservation status values. A reservation is created confirmed and the only
// transition is confirmed -> cancelled; rows are never deleted.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Restaurant represents a catalog entry. Catalog data is read-only after
// seeding.
type Restaurant struct {
	ID          int64
	Name        string
	Cuisine     string
	Location    string
	City        string
	Address     string
	Phone       string
	Rating      float64
	PriceRange  string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// Table represents a physical seating unit belonging to one restaurant.
// Capacity is fixed for the lifetime of the table.
type Table struct {
	ID           int64
	RestaurantID int64
	Number       int
	Capacity     int
	IsActive     bool
}

// Reservation is the ledger record for a single booking. Ref is the
// human-readable booking reference shown to customers; Date is a calendar
// date in "YYYY-MM-DD" form and TimeSlot a grid value in "HH:MM" form.
type Reservation struct {
	ID           int64
	Ref          string
	RestaurantID int64
	TableID      int64
	Phone        string
	CustomerName string
	Date         string
	TimeSlot     string
	PartySize    int
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReservationDetail joins a reservation with the restaurant and table display
// fields callers present to customers.
type ReservationDetail struct {
	Reservation
	RestaurantName     string
	RestaurantLocation string
	TableNumber        int
	TableCapacity      int
}

// Customer maps a phone number to a profile and lifetime booking counters.
type Customer struct {
	Phone               string
	Name                string
	CreatedAt           time.Time
	TotalReservations   int
	LastReservationDate string
}

// BookedSlot identifies a (table, slot) pair claimed by a confirmed
// reservation on some date.
type BookedSlot struct {
	TableID  int64
	TimeSlot string
}

// Stats aggregates store-wide counters for operational visibility.
type Stats struct {
	Restaurants          int
	Tables               int
	Customers            int
	ActiveReservations   int
	LifetimeReservations int
}
