package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/testfixtures"
)

func commitParams(opts ...func(*persistence.CommitReservationParams)) persistence.CommitReservationParams {
	params := persistence.CommitReservationParams{
		RestaurantID: 1,
		TableID:      1,
		Phone:        testfixtures.NextPhone(),
		CustomerName: "Asha Rao",
		Date:         testfixtures.ReferenceDate(1),
		TimeSlot:     "19:00",
		PartySize:    2,
	}
	for _, opt := range opts {
		opt(&params)
	}
	return params
}

func TestRestaurantRepository(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	t.Run("get by id", func(t *testing.T) {
		restaurant, err := harness.Restaurants.GetRestaurant(ctx, 1)
		if err != nil {
			t.Fatalf("GetRestaurant returned error: %v", err)
		}
		if restaurant.Name != "Test Kitchen" || !restaurant.IsActive {
			t.Fatalf("unexpected restaurant: %+v", restaurant)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := harness.Restaurants.GetRestaurant(ctx, 99)
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("search orders by rating", func(t *testing.T) {
		restaurants, err := harness.Restaurants.SearchRestaurants(ctx, persistence.RestaurantFilter{})
		if err != nil {
			t.Fatalf("SearchRestaurants returned error: %v", err)
		}
		if len(restaurants) != 2 {
			t.Fatalf("expected 2 restaurants, got %d", len(restaurants))
		}
		if restaurants[0].Name != "Harbour House" {
			t.Fatalf("expected highest rated first, got %s", restaurants[0].Name)
		}
	})

	t.Run("search by cuisine substring", func(t *testing.T) {
		restaurants, err := harness.Restaurants.SearchRestaurants(ctx, persistence.RestaurantFilter{Cuisine: "Sea"})
		if err != nil {
			t.Fatalf("SearchRestaurants returned error: %v", err)
		}
		if len(restaurants) != 1 || restaurants[0].ID != 2 {
			t.Fatalf("expected only Harbour House, got %+v", restaurants)
		}
	})

	t.Run("search with no match", func(t *testing.T) {
		restaurants, err := harness.Restaurants.SearchRestaurants(ctx, persistence.RestaurantFilter{Location: "Mars"})
		if err != nil {
			t.Fatalf("SearchRestaurants returned error: %v", err)
		}
		if len(restaurants) != 0 {
			t.Fatalf("expected no restaurants, got %d", len(restaurants))
		}
	})

	t.Run("list tables in capacity order", func(t *testing.T) {
		tables, err := harness.Restaurants.ListTables(ctx, 1)
		if err != nil {
			t.Fatalf("ListTables returned error: %v", err)
		}
		if len(tables) != 9 {
			t.Fatalf("expected 9 tables, got %d", len(tables))
		}
		for i := 1; i < len(tables); i++ {
			if tables[i].Capacity < tables[i-1].Capacity {
				t.Fatalf("tables out of capacity order at %d: %+v", i, tables)
			}
		}
		if tables[0].Capacity != 2 || tables[8].Capacity != 6 {
			t.Fatalf("unexpected capacity bounds: %+v", tables)
		}
	})
}

func TestCommitReservation(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	params := commitParams()
	detail, err := harness.Reservations.CommitReservation(ctx, params)
	if err != nil {
		t.Fatalf("CommitReservation returned error: %v", err)
	}

	if detail.Ref != "TT1000" {
		t.Fatalf("expected first reference TT1000, got %q", detail.Ref)
	}
	if detail.Status != persistence.StatusConfirmed {
		t.Fatalf("expected confirmed status, got %q", detail.Status)
	}
	if detail.RestaurantName != "Test Kitchen" || detail.TableNumber != 1 || detail.TableCapacity != 2 {
		t.Fatalf("detail not hydrated: %+v", detail)
	}

	customer, err := harness.Customers.GetCustomer(ctx, params.Phone)
	if err != nil {
		t.Fatalf("GetCustomer returned error: %v", err)
	}
	if customer.TotalReservations != 1 {
		t.Fatalf("expected lifetime counter 1, got %d", customer.TotalReservations)
	}
	if customer.LastReservationDate != params.Date {
		t.Fatalf("expected last reservation date %s, got %s", params.Date, customer.LastReservationDate)
	}
}

func TestCommitReservationRejectsDoubleBooking(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	first := commitParams()
	if _, err := harness.Reservations.CommitReservation(ctx, first); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	second := commitParams()
	_, err := harness.Reservations.CommitReservation(ctx, second)
	if !errors.Is(err, persistence.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	// The same table is free at a different slot and on a different date.
	if _, err := harness.Reservations.CommitReservation(ctx, commitParams(func(p *persistence.CommitReservationParams) {
		p.TimeSlot = "19:30"
	})); err != nil {
		t.Fatalf("different slot should commit: %v", err)
	}
	if _, err := harness.Reservations.CommitReservation(ctx, commitParams(func(p *persistence.CommitReservationParams) {
		p.Date = testfixtures.ReferenceDate(2)
	})); err != nil {
		t.Fatalf("different date should commit: %v", err)
	}
}

func TestCommitReservationReferencesAreMonotonic(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		params := commitParams(func(p *persistence.CommitReservationParams) {
			p.TableID = int64(i + 1)
		})
		detail, err := harness.Reservations.CommitReservation(ctx, params)
		if err != nil {
			t.Fatalf("commit %d failed: %v", i, err)
		}
		expected := fmt.Sprintf("TT%d", 1000+i)
		if detail.Ref != expected {
			t.Fatalf("expected reference %s, got %s", expected, detail.Ref)
		}
	}
}

func TestCommitReservationUnknownTable(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)

	_, err := harness.Reservations.CommitReservation(context.Background(), commitParams(func(p *persistence.CommitReservationParams) {
		p.TableID = 999
	}))
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestCommitReservationConcurrentRace(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	const contenders = 8
	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := harness.Reservations.CommitReservation(ctx, commitParams(func(p *persistence.CommitReservationParams) {
				p.Phone = fmt.Sprintf("+91000000%04d", i)
			}))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, persistence.ErrSlotTaken):
			rejected++
		default:
			t.Fatalf("unexpected commit error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("expected exactly one winner, got %d", succeeded)
	}
	if rejected != contenders-1 {
		t.Fatalf("expected %d rejections, got %d", contenders-1, rejected)
	}
}

func TestCancelReservation(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	detail, err := harness.Reservations.CommitReservation(ctx, commitParams())
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := harness.Reservations.CancelReservation(ctx, detail.Ref); err != nil {
		t.Fatalf("CancelReservation returned error: %v", err)
	}

	stored, err := harness.Reservations.GetReservation(ctx, detail.Ref)
	if err != nil {
		t.Fatalf("GetReservation returned error: %v", err)
	}
	if stored.Status != persistence.StatusCancelled {
		t.Fatalf("expected cancelled status, got %q", stored.Status)
	}

	// Cancelled is terminal: a second cancel reports not found.
	if err := harness.Reservations.CancelReservation(ctx, detail.Ref); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second cancel, got %v", err)
	}

	// The freed key is immediately bookable again.
	rebooked, err := harness.Reservations.CommitReservation(ctx, commitParams())
	if err != nil {
		t.Fatalf("rebooking freed slot failed: %v", err)
	}
	if rebooked.Ref == detail.Ref {
		t.Fatalf("expected a fresh reference, got %s twice", rebooked.Ref)
	}
}

func TestCancelReservationUnknownRef(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)

	err := harness.Reservations.CancelReservation(context.Background(), "TT9999")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListBookedSlots(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	date := testfixtures.ReferenceDate(1)
	if _, err := harness.Reservations.CommitReservation(ctx, commitParams()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if _, err := harness.Reservations.CommitReservation(ctx, commitParams(func(p *persistence.CommitReservationParams) {
		p.TableID = 4
		p.TimeSlot = "20:00"
	})); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	cancelled, err := harness.Reservations.CommitReservation(ctx, commitParams(func(p *persistence.CommitReservationParams) {
		p.TableID = 7
		p.TimeSlot = "21:00"
	}))
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if err := harness.Reservations.CancelReservation(ctx, cancelled.Ref); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	booked, err := harness.Reservations.ListBookedSlots(ctx, 1, date)
	if err != nil {
		t.Fatalf("ListBookedSlots returned error: %v", err)
	}
	if len(booked) != 2 {
		t.Fatalf("expected 2 booked slots, got %d", len(booked))
	}
	keys := map[persistence.BookedSlot]bool{}
	for _, slot := range booked {
		keys[slot] = true
	}
	if !keys[persistence.BookedSlot{TableID: 1, TimeSlot: "19:00"}] ||
		!keys[persistence.BookedSlot{TableID: 4, TimeSlot: "20:00"}] {
		t.Fatalf("unexpected booked slots: %v", booked)
	}

	// Another restaurant's ledger is empty for the date.
	other, err := harness.Reservations.ListBookedSlots(ctx, 2, date)
	if err != nil {
		t.Fatalf("ListBookedSlots returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty ledger for restaurant 2, got %v", other)
	}
}

func TestListCustomerReservations(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	phone := testfixtures.NextPhone()
	var refs []string
	for i := 0; i < 3; i++ {
		detail, err := harness.Reservations.CommitReservation(ctx, commitParams(func(p *persistence.CommitReservationParams) {
			p.Phone = phone
			p.TableID = int64(i + 1)
		}))
		if err != nil {
			t.Fatalf("commit %d failed: %v", i, err)
		}
		refs = append(refs, detail.Ref)
		harness.Clock.Advance(time.Minute)
	}

	if err := harness.Reservations.CancelReservation(ctx, refs[1]); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	details, err := harness.Reservations.ListCustomerReservations(ctx, phone, 5)
	if err != nil {
		t.Fatalf("ListCustomerReservations returned error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 confirmed reservations, got %d", len(details))
	}
	if details[0].Ref != refs[2] || details[1].Ref != refs[0] {
		t.Fatalf("expected most recent first, got %s then %s", details[0].Ref, details[1].Ref)
	}

	limited, err := harness.Reservations.ListCustomerReservations(ctx, phone, 1)
	if err != nil {
		t.Fatalf("ListCustomerReservations returned error: %v", err)
	}
	if len(limited) != 1 || limited[0].Ref != refs[2] {
		t.Fatalf("expected only the latest reservation, got %+v", limited)
	}
}

func TestStats(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	detail, err := harness.Reservations.CommitReservation(ctx, commitParams())
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if _, err := harness.Reservations.CommitReservation(ctx, commitParams(func(p *persistence.CommitReservationParams) {
		p.TableID = 2
	})); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if err := harness.Reservations.CancelReservation(ctx, detail.Ref); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	stats, err := harness.Reservations.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Restaurants != 2 || stats.Tables != 18 {
		t.Fatalf("unexpected catalog counters: %+v", stats)
	}
	if stats.ActiveReservations != 1 || stats.LifetimeReservations != 2 {
		t.Fatalf("unexpected reservation counters: %+v", stats)
	}
	if stats.Customers != 2 {
		t.Fatalf("expected 2 customers, got %d", stats.Customers)
	}
}

func TestCustomerRepository(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	phone := testfixtures.NextPhone()
	customer, err := harness.Customers.CreateCustomer(ctx, persistence.Customer{Phone: phone, Name: "Asha Rao"})
	if err != nil {
		t.Fatalf("CreateCustomer returned error: %v", err)
	}
	if customer.TotalReservations != 0 || customer.LastReservationDate != "" {
		t.Fatalf("expected fresh profile, got %+v", customer)
	}

	if _, err := harness.Customers.CreateCustomer(ctx, persistence.Customer{Phone: phone, Name: "Asha Rao"}); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	exists, err := harness.Customers.CustomerExists(ctx, phone)
	if err != nil || !exists {
		t.Fatalf("expected customer to exist, got exists=%v err=%v", exists, err)
	}

	if _, err := harness.Customers.GetCustomer(ctx, "+910000000000"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
