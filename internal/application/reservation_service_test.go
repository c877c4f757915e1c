package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/booking"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

type stubLedgerRepo struct {
	commitParams persistence.CommitReservationParams
	commitDetail persistence.ReservationDetail
	commitErr    error

	cancelledRef string
	cancelErr    error

	detail  persistence.ReservationDetail
	details []persistence.ReservationDetail
	stats   persistence.Stats
	err     error
}

func (s *stubLedgerRepo) CommitReservation(ctx context.Context, params persistence.CommitReservationParams) (persistence.ReservationDetail, error) {
	s.commitParams = params
	if s.commitErr != nil {
		return persistence.ReservationDetail{}, s.commitErr
	}
	return s.commitDetail, nil
}

func (s *stubLedgerRepo) CancelReservation(ctx context.Context, ref string) error {
	s.cancelledRef = ref
	return s.cancelErr
}

func (s *stubLedgerRepo) GetReservation(ctx context.Context, ref string) (persistence.ReservationDetail, error) {
	if s.err != nil {
		return persistence.ReservationDetail{}, s.err
	}
	return s.detail, nil
}

func (s *stubLedgerRepo) ListCustomerReservations(ctx context.Context, phone string, limit int) ([]persistence.ReservationDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.details, nil
}

func (s *stubLedgerRepo) Stats(ctx context.Context) (persistence.Stats, error) {
	if s.err != nil {
		return persistence.Stats{}, s.err
	}
	return s.stats, nil
}

var frozenNow = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

func newReservationService(ledger *stubLedgerRepo) *ReservationService {
	return NewReservationService(ledger, booking.NewWindowPolicy(3), func() time.Time { return frozenNow })
}

func validCommitParams() CommitReservationParams {
	return CommitReservationParams{
		RestaurantID: 1,
		TableID:      3,
		Phone:        "+919876500001",
		CustomerName: "Asha Rao",
		Date:         "2025-06-02",
		TimeSlot:     "19:00",
		PartySize:    4,
	}
}

func TestCommitHappyPath(t *testing.T) {
	ledger := &stubLedgerRepo{commitDetail: persistence.ReservationDetail{
		Reservation: persistence.Reservation{Ref: "TT1000", Status: persistence.StatusConfirmed},
	}}
	svc := newReservationService(ledger)

	detail, err := svc.Commit(context.Background(), validCommitParams())
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if detail.Ref != "TT1000" {
		t.Fatalf("expected ref TT1000, got %q", detail.Ref)
	}
	if ledger.commitParams.TableID != 3 || ledger.commitParams.TimeSlot != "19:00" {
		t.Fatalf("ledger received unexpected params: %+v", ledger.commitParams)
	}
}

func TestCommitTrimsCustomerFields(t *testing.T) {
	ledger := &stubLedgerRepo{}
	svc := newReservationService(ledger)

	params := validCommitParams()
	params.Phone = "  +919876500001  "
	params.CustomerName = " Asha Rao "

	if _, err := svc.Commit(context.Background(), params); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if ledger.commitParams.Phone != "+919876500001" || ledger.commitParams.CustomerName != "Asha Rao" {
		t.Fatalf("expected trimmed fields, got %+v", ledger.commitParams)
	}
}

func TestCommitValidation(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*CommitReservationParams)
		wantField string
	}{
		{name: "missing restaurant", mutate: func(p *CommitReservationParams) { p.RestaurantID = 0 }, wantField: "restaurant_id"},
		{name: "missing table", mutate: func(p *CommitReservationParams) { p.TableID = 0 }, wantField: "table_id"},
		{name: "blank phone", mutate: func(p *CommitReservationParams) { p.Phone = "   " }, wantField: "phone"},
		{name: "blank name", mutate: func(p *CommitReservationParams) { p.CustomerName = "" }, wantField: "name"},
		{name: "zero party", mutate: func(p *CommitReservationParams) { p.PartySize = 0 }, wantField: "party_size"},
		{name: "malformed slot", mutate: func(p *CommitReservationParams) { p.TimeSlot = "7pm" }, wantField: "time_slot"},
		{name: "malformed date", mutate: func(p *CommitReservationParams) { p.Date = "02-06-2025" }, wantField: "date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newReservationService(&stubLedgerRepo{})
			params := validCommitParams()
			tc.mutate(&params)

			_, err := svc.Commit(context.Background(), params)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tc.wantField]; !ok {
				t.Fatalf("expected field error for %s, got %v", tc.wantField, vErr.FieldErrors)
			}
		})
	}
}

func TestCommitEnforcesBookingWindow(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		svc := newReservationService(&stubLedgerRepo{})
		params := validCommitParams()
		params.Date = "2025-05-31"

		_, err := svc.Commit(context.Background(), params)
		var violation *booking.PolicyViolation
		if !errors.As(err, &violation) || violation.Code != booking.ViolationPastDate {
			t.Fatalf("expected past_date violation, got %v", err)
		}
	})

	t.Run("beyond horizon", func(t *testing.T) {
		svc := newReservationService(&stubLedgerRepo{})
		params := validCommitParams()
		params.Date = "2025-06-05"

		_, err := svc.Commit(context.Background(), params)
		var violation *booking.PolicyViolation
		if !errors.As(err, &violation) || violation.Code != booking.ViolationBeyondHorizon {
			t.Fatalf("expected beyond_horizon violation, got %v", err)
		}
		if violation.DaysOver != 1 {
			t.Fatalf("expected DaysOver 1, got %d", violation.DaysOver)
		}
	})

	t.Run("horizon edge accepted", func(t *testing.T) {
		svc := newReservationService(&stubLedgerRepo{})
		params := validCommitParams()
		params.Date = "2025-06-04"

		if _, err := svc.Commit(context.Background(), params); err != nil {
			t.Fatalf("expected edge date to be accepted, got %v", err)
		}
	})
}

func TestCommitMapsLedgerErrors(t *testing.T) {
	cases := []struct {
		name    string
		repoErr error
		want    error
	}{
		{name: "slot taken", repoErr: persistence.ErrSlotTaken, want: ErrSlotTaken},
		{name: "missing table", repoErr: persistence.ErrNotFound, want: ErrNotFound},
		{name: "store down", repoErr: persistence.ErrUnavailable, want: ErrStorageUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newReservationService(&stubLedgerRepo{commitErr: tc.repoErr})
			_, err := svc.Commit(context.Background(), validCommitParams())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	t.Run("delegates trimmed ref", func(t *testing.T) {
		ledger := &stubLedgerRepo{}
		svc := newReservationService(ledger)

		if err := svc.Cancel(context.Background(), "  TT1000 "); err != nil {
			t.Fatalf("Cancel returned error: %v", err)
		}
		if ledger.cancelledRef != "TT1000" {
			t.Fatalf("expected trimmed ref, got %q", ledger.cancelledRef)
		}
	})

	t.Run("blank ref", func(t *testing.T) {
		svc := newReservationService(&stubLedgerRepo{})
		if err := svc.Cancel(context.Background(), "  "); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown ref", func(t *testing.T) {
		svc := newReservationService(&stubLedgerRepo{cancelErr: persistence.ErrNotFound})
		if err := svc.Cancel(context.Background(), "TT9999"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRecentReservationsRequiresPhone(t *testing.T) {
	svc := newReservationService(&stubLedgerRepo{})

	_, err := svc.RecentReservations(context.Background(), "   ", 5)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateDate(t *testing.T) {
	svc := newReservationService(&stubLedgerRepo{})

	if err := svc.ValidateDate("2025-06-03"); err != nil {
		t.Fatalf("expected in-window date to pass, got %v", err)
	}
	if err := svc.ValidateDate("2025-06-09"); err == nil {
		t.Fatal("expected out-of-window date to fail")
	}
	var vErr *ValidationError
	if err := svc.ValidateDate("someday"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for malformed date, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ledger := &stubLedgerRepo{stats: persistence.Stats{Restaurants: 10, Tables: 90, ActiveReservations: 4}}
	svc := newReservationService(ledger)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Restaurants != 10 || stats.Tables != 90 || stats.ActiveReservations != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
