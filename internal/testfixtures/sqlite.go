package testfixtures

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/catalog"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// storage instance for integration-style persistence tests. The catalog is
// seeded with SmallCatalogSeed and the clock starts at ReferenceTime.
type SQLiteHarness struct {
	Restaurants  persistence.RestaurantRepository
	Reservations persistence.ReservationRepository
	Customers    persistence.CustomerRepository
	Clock        *Clock

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// HarnessOption configures the harness before the store is opened.
type HarnessOption func(*harnessConfig)

type harnessConfig struct {
	seed catalog.Seed
}

// WithSeed replaces the default catalog seed.
func WithSeed(seed catalog.Seed) HarnessOption {
	return func(cfg *harnessConfig) {
		cfg.seed = seed
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated and seeded automatically. A cleanup callback is registered with
// the provided testing.TB.
func NewSQLiteHarness(tb testing.TB, opts ...HarnessOption) *SQLiteHarness {
	tb.Helper()

	cfg := harnessConfig{seed: SmallCatalogSeed()}
	for _, opt := range opts {
		opt(&cfg)
	}

	dir := tb.TempDir()
	path := filepath.Join(dir, "tableturner.db")
	clock := NewClock(time.Time{})

	storage, err := sqlite.Open(path, sqlite.Options{Now: clock.NowFunc()})
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	if err := storage.Seed(context.Background(), cfg.seed); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to seed catalog: %v", err)
	}

	harness := &SQLiteHarness{
		Restaurants:  storage,
		Reservations: storage,
		Customers:    storage,
		Clock:        clock,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
