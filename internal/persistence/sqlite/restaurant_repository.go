package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

// GetRestaurant retrieves an active restaurant by id.
func (s *Storage) GetRestaurant(ctx context.Context, id int64) (persistence.Restaurant, error) {
	query := `
		SELECT id, name, cuisine, location, city, address, phone, rating, price_range, description, is_active, created_at
		FROM restaurants
		WHERE id = ? AND is_active = 1
	`

	restaurant, err := scanRestaurant(s.pool.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		return persistence.Restaurant{}, mapError(err)
	}
	return restaurant, nil
}

// SearchRestaurants returns active restaurants matching the filter, ordered by
// rating descending with name as a tiebreaker.
func (s *Storage) SearchRestaurants(ctx context.Context, filter persistence.RestaurantFilter) ([]persistence.Restaurant, error) {
	query := `
		SELECT id, name, cuisine, location, city, address, phone, rating, price_range, description, is_active, created_at
		FROM restaurants
		WHERE is_active = 1
	`
	args := make([]any, 0, 3)

	if cuisine := strings.TrimSpace(filter.Cuisine); cuisine != "" {
		query += " AND cuisine LIKE ?"
		args = append(args, "%"+cuisine+"%")
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		query += " AND location LIKE ?"
		args = append(args, "%"+location+"%")
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+name+"%")
	}

	query += " ORDER BY rating DESC, name ASC"

	rows, err := s.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var restaurants []persistence.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, mapError(err)
		}
		restaurants = append(restaurants, restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return restaurants, nil
}

// ListTables returns the active tables of a restaurant ordered by ascending
// capacity, then table number.
func (s *Storage) ListTables(ctx context.Context, restaurantID int64) ([]persistence.Table, error) {
	query := `
		SELECT id, restaurant_id, table_number, capacity, is_active
		FROM tables
		WHERE restaurant_id = ? AND is_active = 1
		ORDER BY capacity ASC, table_number ASC
	`

	rows, err := s.pool.DB().QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var tables []persistence.Table
	for rows.Next() {
		var table persistence.Table
		var active int
		if err := rows.Scan(&table.ID, &table.RestaurantID, &table.Number, &table.Capacity, &active); err != nil {
			return nil, mapError(err)
		}
		table.IsActive = active != 0
		tables = append(tables, table)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return tables, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row rowScanner) (persistence.Restaurant, error) {
	var restaurant persistence.Restaurant
	var address, phone, priceRange, description sql.NullString
	var active int
	var createdAt string

	err := row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Cuisine,
		&restaurant.Location,
		&restaurant.City,
		&address,
		&phone,
		&restaurant.Rating,
		&priceRange,
		&description,
		&active,
		&createdAt,
	)
	if err != nil {
		return persistence.Restaurant{}, err
	}

	restaurant.Address = address.String
	restaurant.Phone = phone.String
	restaurant.PriceRange = priceRange.String
	restaurant.Description = description.String
	restaurant.IsActive = active != 0
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		restaurant.CreatedAt = parsed
	}

	return restaurant, nil
}
