// Package sqlite implements the reservation store on an embedded SQLite
// database using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"time"
)

// Options tune storage behavior that is policy rather than schema.
type Options struct {
	// RefPrefix is the alphabetic prefix of reservation references.
	RefPrefix string
	// SeqStart is the first numeric reference value issued by a fresh store.
	SeqStart int64
	// Now overrides the time source, used by tests.
	Now func() time.Time
}

// Storage is the single logical store of truth for catalog, ledger, and
// customer data. It implements persistence.RestaurantRepository,
// persistence.ReservationRepository, and persistence.CustomerRepository.
type Storage struct {
	pool      *ConnectionPool
	refPrefix string
	seqStart  int64
	now       func() time.Time
}

// Open connects to the SQLite database at dsn.
func Open(dsn string, opts Options) (*Storage, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}

	if opts.RefPrefix == "" {
		opts.RefPrefix = "TT"
	}
	if opts.SeqStart <= 0 {
		opts.SeqStart = 1000
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Storage{
		pool:      pool,
		refPrefix: opts.RefPrefix,
		seqStart:  opts.SeqStart,
		now:       opts.Now,
	}, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	return s.pool.Close()
}

// Ping verifies the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
