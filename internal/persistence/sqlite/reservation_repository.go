package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

const reservationDetailColumns = `
	r.id, r.reservation_ref, r.restaurant_id, r.table_id, r.phone_number, r.customer_name,
	r.date, r.time_slot, r.party_size, r.status, r.created_at, r.updated_at,
	rest.name, rest.location, t.table_number, t.capacity
`

const reservationDetailJoins = `
	FROM reservations r
	JOIN restaurants rest ON r.restaurant_id = rest.id
	JOIN tables t ON r.table_id = t.id
`

// CommitReservation writes a confirmed reservation as a single atomic unit:
// invariant re-check, reference allocation, insert, and customer counter
// upsert all happen in one transaction. When a confirmed reservation already
// claims the (table, date, slot) key, persistence.ErrSlotTaken is returned and
// nothing is written; the reference counter is only advanced past the
// invariant check, but a failed insert after that point still burns the value,
// which keeps references unique without requiring them to be gap-free.
func (s *Storage) CommitReservation(ctx context.Context, params persistence.CommitReservationParams) (persistence.ReservationDetail, error) {
	var detail persistence.ReservationDetail

	err := s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var claimed int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM reservations
			WHERE table_id = ? AND date = ? AND time_slot = ? AND status = ?
		`, params.TableID, params.Date, params.TimeSlot, persistence.StatusConfirmed).Scan(&claimed)
		if err != nil {
			return mapError(err)
		}
		if claimed > 0 {
			return persistence.ErrSlotTaken
		}

		var refNumber int64
		err = tx.QueryRow(`
			UPDATE reservation_counter SET next_ref = next_ref + 1 WHERE id = 1
			RETURNING next_ref - 1
		`).Scan(&refNumber)
		if err != nil {
			return fmt.Errorf("sqlite: allocate reservation reference: %w", mapError(err))
		}
		ref := fmt.Sprintf("%s%d", s.refPrefix, refNumber)

		now := s.timestamp()
		_, err = tx.Exec(`
			INSERT INTO reservations
				(reservation_ref, restaurant_id, table_id, phone_number, customer_name, date, time_slot, party_size, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			ref,
			params.RestaurantID,
			params.TableID,
			params.Phone,
			params.CustomerName,
			params.Date,
			params.TimeSlot,
			params.PartySize,
			persistence.StatusConfirmed,
			now,
			now,
		)
		if err != nil {
			// The partial unique index backs the count check above; a racing
			// commit that slipped between them surfaces here.
			mapped := mapError(err)
			if errors.Is(mapped, persistence.ErrDuplicate) && strings.Contains(err.Error(), "idx_reservations_active_slot") {
				return persistence.ErrSlotTaken
			}
			return mapped
		}

		_, err = tx.Exec(`
			INSERT INTO customers (phone_number, name, created_at, total_reservations, last_reservation_date)
			VALUES (?, ?, ?, 1, ?)
			ON CONFLICT(phone_number) DO UPDATE SET
				total_reservations = total_reservations + 1,
				last_reservation_date = excluded.last_reservation_date
		`, params.Phone, params.CustomerName, now, params.Date)
		if err != nil {
			return mapError(err)
		}

		row := tx.QueryRow(`SELECT `+reservationDetailColumns+reservationDetailJoins+` WHERE r.reservation_ref = ?`, ref)
		detail, err = scanReservationDetail(row)
		if err != nil {
			return mapError(err)
		}

		return nil
	})
	if err != nil {
		return persistence.ReservationDetail{}, err
	}

	return detail, nil
}

// CancelReservation transitions a confirmed reservation to cancelled. A
// missing or already-cancelled reference reports persistence.ErrNotFound;
// cancelled is terminal and the row is kept for history.
func (s *Storage) CancelReservation(ctx context.Context, ref string) error {
	result, err := s.pool.DB().ExecContext(ctx, `
		UPDATE reservations
		SET status = ?, updated_at = ?
		WHERE reservation_ref = ? AND status = ?
	`, persistence.StatusCancelled, s.timestamp(), ref, persistence.StatusConfirmed)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

// GetReservation retrieves a reservation by reference, hydrated with
// restaurant and table display fields.
func (s *Storage) GetReservation(ctx context.Context, ref string) (persistence.ReservationDetail, error) {
	row := s.pool.DB().QueryRowContext(ctx,
		`SELECT `+reservationDetailColumns+reservationDetailJoins+` WHERE r.reservation_ref = ?`, ref)

	detail, err := scanReservationDetail(row)
	if err != nil {
		return persistence.ReservationDetail{}, mapError(err)
	}
	return detail, nil
}

// ListCustomerReservations returns the customer's confirmed reservations,
// most recently created first.
func (s *Storage) ListCustomerReservations(ctx context.Context, phone string, limit int) ([]persistence.ReservationDetail, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.pool.DB().QueryContext(ctx, `
		SELECT `+reservationDetailColumns+reservationDetailJoins+`
		WHERE r.phone_number = ? AND r.status = ?
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ?
	`, phone, persistence.StatusConfirmed, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var details []persistence.ReservationDetail
	for rows.Next() {
		detail, err := scanReservationDetail(rows)
		if err != nil {
			return nil, mapError(err)
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return details, nil
}

// ListBookedSlots returns the (table, slot) pairs claimed by confirmed
// reservations for a restaurant on a date. Availability reads go through this
// path without blocking writers; commits re-check the invariant themselves.
func (s *Storage) ListBookedSlots(ctx context.Context, restaurantID int64, date string) ([]persistence.BookedSlot, error) {
	rows, err := s.pool.DB().QueryContext(ctx, `
		SELECT table_id, time_slot
		FROM reservations
		WHERE restaurant_id = ? AND date = ? AND status = ?
	`, restaurantID, date, persistence.StatusConfirmed)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var booked []persistence.BookedSlot
	for rows.Next() {
		var slot persistence.BookedSlot
		if err := rows.Scan(&slot.TableID, &slot.TimeSlot); err != nil {
			return nil, mapError(err)
		}
		booked = append(booked, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return booked, nil
}

// Stats aggregates store-wide counters.
func (s *Storage) Stats(ctx context.Context) (persistence.Stats, error) {
	var stats persistence.Stats

	err := s.pool.DB().QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM restaurants WHERE is_active = 1),
			(SELECT COUNT(*) FROM tables WHERE is_active = 1),
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM reservations WHERE status = ?),
			(SELECT COUNT(*) FROM reservations)
	`, persistence.StatusConfirmed).Scan(
		&stats.Restaurants,
		&stats.Tables,
		&stats.Customers,
		&stats.ActiveReservations,
		&stats.LifetimeReservations,
	)
	if err != nil {
		return persistence.Stats{}, mapError(err)
	}

	return stats, nil
}

func scanReservationDetail(row rowScanner) (persistence.ReservationDetail, error) {
	var detail persistence.ReservationDetail
	var createdAt, updatedAt string

	err := row.Scan(
		&detail.ID,
		&detail.Ref,
		&detail.RestaurantID,
		&detail.TableID,
		&detail.Phone,
		&detail.CustomerName,
		&detail.Date,
		&detail.TimeSlot,
		&detail.PartySize,
		&detail.Status,
		&createdAt,
		&updatedAt,
		&detail.RestaurantName,
		&detail.RestaurantLocation,
		&detail.TableNumber,
		&detail.TableCapacity,
	)
	if err != nil {
		return persistence.ReservationDetail{}, err
	}

	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		detail.CreatedAt = parsed
	}
	if parsed, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		detail.UpdatedAt = parsed
	}

	return detail, nil
}
