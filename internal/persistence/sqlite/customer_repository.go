package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

// CreateCustomer stores a new customer profile. A phone number that is
// already present yields persistence.ErrDuplicate; creation is not
// idempotent.
func (s *Storage) CreateCustomer(ctx context.Context, customer persistence.Customer) (persistence.Customer, error) {
	createdAt := customer.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now().UTC()
	}

	_, err := s.pool.DB().ExecContext(ctx, `
		INSERT INTO customers (phone_number, name, created_at, total_reservations, last_reservation_date)
		VALUES (?, ?, ?, 0, NULL)
	`, customer.Phone, customer.Name, createdAt.Format(time.RFC3339))
	if err != nil {
		return persistence.Customer{}, mapError(err)
	}

	return s.GetCustomer(ctx, customer.Phone)
}

// GetCustomer retrieves a customer profile by phone number.
func (s *Storage) GetCustomer(ctx context.Context, phone string) (persistence.Customer, error) {
	var customer persistence.Customer
	var createdAt string
	var lastDate sql.NullString

	err := s.pool.DB().QueryRowContext(ctx, `
		SELECT phone_number, name, created_at, total_reservations, last_reservation_date
		FROM customers
		WHERE phone_number = ?
	`, phone).Scan(&customer.Phone, &customer.Name, &createdAt, &customer.TotalReservations, &lastDate)
	if err != nil {
		return persistence.Customer{}, mapError(err)
	}

	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		customer.CreatedAt = parsed
	}
	customer.LastReservationDate = lastDate.String

	return customer, nil
}

// CustomerExists reports whether a profile exists for the phone number.
func (s *Storage) CustomerExists(ctx context.Context, phone string) (bool, error) {
	var count int
	err := s.pool.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers WHERE phone_number = ?`, phone).Scan(&count)
	if err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}
