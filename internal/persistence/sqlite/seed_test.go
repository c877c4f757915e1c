package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/catalog"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence/sqlite"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/testfixtures"
)

func openStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tableturner.db")
	storage, err := sqlite.Open(path, sqlite.Options{})
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate storage: %v", err)
	}
	return storage
}

func TestSeedIsIdempotent(t *testing.T) {
	storage := openStorage(t)
	ctx := context.Background()

	seed := testfixtures.SmallCatalogSeed()
	if err := storage.Seed(ctx, seed); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := storage.Seed(ctx, seed); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	// A different seed against a populated store is also a no-op.
	if err := storage.Seed(ctx, catalog.DefaultSeed()); err != nil {
		t.Fatalf("seed against populated store failed: %v", err)
	}

	stats, err := storage.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Restaurants != 2 || stats.Tables != 18 {
		t.Fatalf("expected the original catalog to be preserved, got %+v", stats)
	}
}

func TestSeedRejectsInvalidCatalog(t *testing.T) {
	storage := openStorage(t)

	bad := catalog.Seed{Restaurants: []catalog.RestaurantSeed{{ID: 1}, {ID: 1}}}
	if err := storage.Seed(context.Background(), bad); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	storage := openStorage(t)
	ctx := context.Background()

	if err := storage.Migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	if err := storage.Seed(ctx, testfixtures.SmallCatalogSeed()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	detail, err := storage.CommitReservation(ctx, persistence.CommitReservationParams{
		RestaurantID: 1,
		TableID:      1,
		Phone:        testfixtures.NextPhone(),
		CustomerName: "Asha Rao",
		Date:         testfixtures.ReferenceDate(1),
		TimeSlot:     "12:00",
		PartySize:    2,
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	// Re-running migrations must not reset the reference counter.
	if err := storage.Migrate(ctx); err != nil {
		t.Fatalf("migrate after commit failed: %v", err)
	}
	next, err := storage.CommitReservation(ctx, persistence.CommitReservationParams{
		RestaurantID: 1,
		TableID:      2,
		Phone:        testfixtures.NextPhone(),
		CustomerName: "Asha Rao",
		Date:         testfixtures.ReferenceDate(1),
		TimeSlot:     "12:00",
		PartySize:    2,
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if detail.Ref != "TT1000" || next.Ref != "TT1001" {
		t.Fatalf("expected TT1000 then TT1001, got %s then %s", detail.Ref, next.Ref)
	}
}
