package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/catalog"
)

// Seed populates the catalog tables from the given seed set. When the store
// already holds restaurants the call is a no-op, so repeated startups do not
// duplicate catalog rows.
func (s *Storage) Seed(ctx context.Context, seed catalog.Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var existing int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM restaurants`).Scan(&existing); err != nil {
			return mapError(err)
		}
		if existing > 0 {
			return nil
		}

		for _, restaurant := range seed.Restaurants {
			_, err := tx.Exec(`
				INSERT INTO restaurants (id, name, cuisine, location, city, address, phone, rating, price_range, description, is_active, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
			`,
				restaurant.ID,
				restaurant.Name,
				restaurant.Cuisine,
				restaurant.Location,
				restaurant.City,
				restaurant.Address,
				restaurant.Phone,
				restaurant.Rating,
				restaurant.PriceRange,
				restaurant.Description,
				s.timestamp(),
			)
			if err != nil {
				return fmt.Errorf("sqlite: seed restaurant %d: %w", restaurant.ID, mapError(err))
			}

			for _, table := range restaurant.Tables {
				_, err := tx.Exec(`
					INSERT INTO tables (restaurant_id, table_number, capacity, is_active)
					VALUES (?, ?, ?, 1)
				`, restaurant.ID, table.Number, table.Capacity)
				if err != nil {
					return fmt.Errorf("sqlite: seed table %d of restaurant %d: %w",
						table.Number, restaurant.ID, mapError(err))
				}
			}
		}

		return nil
	})
}
