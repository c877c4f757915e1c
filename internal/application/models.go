package application

// SlotOption pairs an open time slot with the table that would serve it.
type SlotOption struct {
	Time          string
	TableID       int64
	TableNumber   int
	TableCapacity int
}

// NearestSlotResult reports the outcome of a nearest-slot search. ExactMatch
// is true when the returned slot equals the requested time, letting callers
// decide whether to confirm an alternate time with the customer.
type NearestSlotResult struct {
	Slot       SlotOption
	ExactMatch bool
}

// AvailabilityQuery identifies a restaurant/date/party combination.
type AvailabilityQuery struct {
	RestaurantID int64
	Date         string
	PartySize    int
}

// NearestSlotQuery extends an availability query with a requested time.
type NearestSlotQuery struct {
	AvailabilityQuery
	RequestedTime string
}

// CommitReservationParams carries the fields required to commit a booking.
type CommitReservationParams struct {
	RestaurantID int64
	TableID      int64
	Phone        string
	CustomerName string
	Date         string
	TimeSlot     string
	PartySize    int
}

// RegisterCustomerParams carries the fields required to create a customer
// profile.
type RegisterCustomerParams struct {
	Phone string
	Name  string
}
