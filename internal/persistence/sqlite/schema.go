package sqlite

import (
	"context"
	"fmt"
)

// schemaStatements creates the reservation store tables and the indexes
// backing the query patterns of the availability and directory flows. The
// partial unique index on confirmed reservations turns the double-booking
// invariant into a conditional insert enforced by the database itself.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		cuisine TEXT NOT NULL,
		location TEXT NOT NULL,
		city TEXT NOT NULL,
		address TEXT,
		phone TEXT,
		rating REAL NOT NULL DEFAULT 4.0,
		price_range TEXT,
		description TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_restaurants_cuisine ON restaurants(cuisine)`,
	`CREATE INDEX IF NOT EXISTS idx_restaurants_location ON restaurants(location)`,
	`CREATE INDEX IF NOT EXISTS idx_restaurants_name ON restaurants(name)`,

	`CREATE TABLE IF NOT EXISTS tables (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
		table_number INTEGER NOT NULL,
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		is_active INTEGER NOT NULL DEFAULT 1,
		UNIQUE (restaurant_id, table_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tables_restaurant ON tables(restaurant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tables_capacity ON tables(capacity)`,

	`CREATE TABLE IF NOT EXISTS customers (
		phone_number TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		total_reservations INTEGER NOT NULL DEFAULT 0,
		last_reservation_date TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reservation_ref TEXT UNIQUE NOT NULL,
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
		table_id INTEGER NOT NULL REFERENCES tables(id),
		phone_number TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		date TEXT NOT NULL,
		time_slot TEXT NOT NULL,
		party_size INTEGER NOT NULL CHECK (party_size > 0),
		status TEXT NOT NULL DEFAULT 'confirmed' CHECK (status IN ('confirmed', 'cancelled')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_restaurant_date ON reservations(restaurant_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_date_slot ON reservations(date, time_slot)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_phone ON reservations(phone_number, created_at DESC)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_active_slot
		ON reservations(table_id, date, time_slot) WHERE status = 'confirmed'`,

	`CREATE TABLE IF NOT EXISTS reservation_counter (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_ref INTEGER NOT NULL
	)`,
}

// Migrate creates the schema and initializes the reservation reference
// counter. It is idempotent; an existing counter is never reset.
func (s *Storage) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: apply schema: %w", mapError(err))
		}
	}

	_, err := s.pool.DB().ExecContext(ctx,
		`INSERT OR IGNORE INTO reservation_counter (id, next_ref) VALUES (1, ?)`, s.seqStart)
	if err != nil {
		return fmt.Errorf("sqlite: initialize reservation counter: %w", mapError(err))
	}

	return nil
}
