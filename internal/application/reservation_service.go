package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/booking"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

// LedgerRepository captures the persistence interactions of the reservation
// service.
type LedgerRepository interface {
	CommitReservation(ctx context.Context, params persistence.CommitReservationParams) (persistence.ReservationDetail, error)
	CancelReservation(ctx context.Context, ref string) error
	GetReservation(ctx context.Context, ref string) (persistence.ReservationDetail, error)
	ListCustomerReservations(ctx context.Context, phone string, limit int) ([]persistence.ReservationDetail, error)
	Stats(ctx context.Context) (persistence.Stats, error)
}

// ReservationService orchestrates validation, the booking window policy, and
// the atomic ledger commit.
type ReservationService struct {
	ledger LedgerRepository
	policy booking.WindowPolicy
	now    func() time.Time
	logger *slog.Logger
}

// NewReservationService wires dependencies for reservation operations.
func NewReservationService(ledger LedgerRepository, policy booking.WindowPolicy, now func() time.Time) *ReservationService {
	return NewReservationServiceWithLogger(ledger, policy, now, nil)
}

// NewReservationServiceWithLogger constructs a reservation service with a specified logger.
func NewReservationServiceWithLogger(ledger LedgerRepository, policy booking.WindowPolicy, now func() time.Time, logger *slog.Logger) *ReservationService {
	if now == nil {
		now = time.Now
	}
	return &ReservationService{
		ledger: ledger,
		policy: policy,
		now:    now,
		logger: defaultLogger(logger),
	}
}

// Commit validates the request, re-runs the booking window policy against the
// current clock, and delegates to the ledger's atomic commit. The policy
// re-check does not trust any earlier availability lookup: time may have
// passed since then. A key lost to a racing commit surfaces as ErrSlotTaken.
func (s *ReservationService) Commit(ctx context.Context, params CommitReservationParams) (persistence.ReservationDetail, error) {
	if s == nil {
		return persistence.ReservationDetail{}, fmt.Errorf("ReservationService is nil")
	}

	params.Phone = strings.TrimSpace(params.Phone)
	params.CustomerName = strings.TrimSpace(params.CustomerName)

	vErr := &ValidationError{}
	if params.RestaurantID <= 0 {
		vErr.add("restaurant_id", "restaurant id is required")
	}
	if params.TableID <= 0 {
		vErr.add("table_id", "table id is required")
	}
	if params.Phone == "" {
		vErr.add("phone", "phone number is required")
	}
	if params.CustomerName == "" {
		vErr.add("name", "customer name is required")
	}
	if params.PartySize <= 0 {
		vErr.add("party_size", "party size must be positive")
	}
	if !validClockValue(params.TimeSlot) {
		vErr.add("time_slot", "time slot must use the 24h HH:MM form")
	}

	target, dateOK := parseDateValue(params.Date)
	if !dateOK {
		vErr.add("date", "date must use the YYYY-MM-DD form")
	}
	if vErr.HasErrors() {
		return persistence.ReservationDetail{}, vErr
	}

	if err := s.policy.Validate(target, s.now()); err != nil {
		return persistence.ReservationDetail{}, err
	}

	logger := serviceLogger(ctx, s.logger, "reservation", "commit",
		"restaurant_id", params.RestaurantID,
		"table_id", params.TableID,
		"date", params.Date,
		"time_slot", params.TimeSlot,
	)

	detail, err := s.ledger.CommitReservation(ctx, persistence.CommitReservationParams{
		RestaurantID: params.RestaurantID,
		TableID:      params.TableID,
		Phone:        params.Phone,
		CustomerName: params.CustomerName,
		Date:         params.Date,
		TimeSlot:     params.TimeSlot,
		PartySize:    params.PartySize,
	})
	if err != nil {
		mapped := mapRepoError(err)
		logger.WarnContext(ctx, "commit rejected", "error", mapped, "error_kind", ErrorKind(mapped))
		return persistence.ReservationDetail{}, mapped
	}

	logger.InfoContext(ctx, "reservation confirmed", "ref", detail.Ref)
	return detail, nil
}

// Cancel transitions a confirmed reservation to cancelled, immediately
// freeing its (table, date, slot) key for new commits. A missing or
// already-cancelled reference reports ErrNotFound.
func (s *ReservationService) Cancel(ctx context.Context, ref string) error {
	if s == nil {
		return fmt.Errorf("ReservationService is nil")
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrNotFound
	}

	if err := s.ledger.CancelReservation(ctx, ref); err != nil {
		return mapRepoError(err)
	}

	serviceLogger(ctx, s.logger, "reservation", "cancel", "ref", ref).
		InfoContext(ctx, "reservation cancelled")
	return nil
}

// Get retrieves a reservation by its booking reference.
func (s *ReservationService) Get(ctx context.Context, ref string) (persistence.ReservationDetail, error) {
	if s == nil {
		return persistence.ReservationDetail{}, fmt.Errorf("ReservationService is nil")
	}

	detail, err := s.ledger.GetReservation(ctx, strings.TrimSpace(ref))
	if err != nil {
		return persistence.ReservationDetail{}, mapRepoError(err)
	}
	return detail, nil
}

// RecentReservations returns a customer's confirmed reservations, most recent
// first, for the directory-lookup "welcome back" flow.
func (s *ReservationService) RecentReservations(ctx context.Context, phone string, limit int) ([]persistence.ReservationDetail, error) {
	if s == nil {
		return nil, fmt.Errorf("ReservationService is nil")
	}

	phone = strings.TrimSpace(phone)
	if phone == "" {
		vErr := &ValidationError{}
		vErr.add("phone", "phone number is required")
		return nil, vErr
	}

	details, err := s.ledger.ListCustomerReservations(ctx, phone, limit)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return details, nil
}

// ValidateDate exposes the booking window policy to callers that want to
// check a date before proposing it to the customer.
func (s *ReservationService) ValidateDate(date string) error {
	if s == nil {
		return fmt.Errorf("ReservationService is nil")
	}

	target, ok := parseDateValue(date)
	if !ok {
		vErr := &ValidationError{}
		vErr.add("date", "date must use the YYYY-MM-DD form")
		return vErr
	}

	return s.policy.Validate(target, s.now())
}

// Stats reports store-wide counters.
func (s *ReservationService) Stats(ctx context.Context) (persistence.Stats, error) {
	if s == nil {
		return persistence.Stats{}, fmt.Errorf("ReservationService is nil")
	}

	stats, err := s.ledger.Stats(ctx)
	if err != nil {
		return persistence.Stats{}, mapRepoError(err)
	}
	return stats, nil
}
