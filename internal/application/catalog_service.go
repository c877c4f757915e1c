package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

// CatalogRepository captures the read operations the catalog service needs.
type CatalogRepository interface {
	GetRestaurant(ctx context.Context, id int64) (persistence.Restaurant, error)
	SearchRestaurants(ctx context.Context, filter persistence.RestaurantFilter) ([]persistence.Restaurant, error)
	ListTables(ctx context.Context, restaurantID int64) ([]persistence.Table, error)
}

// CatalogService answers read-only questions about restaurants and their
// tables. Catalog data is immutable after seeding, so no operation here has
// side effects.
type CatalogService struct {
	catalog CatalogRepository
	logger  *slog.Logger
}

// NewCatalogService wires dependencies for catalog reads.
func NewCatalogService(catalog CatalogRepository) *CatalogService {
	return NewCatalogServiceWithLogger(catalog, nil)
}

// NewCatalogServiceWithLogger constructs a catalog service with a specified logger.
func NewCatalogServiceWithLogger(catalog CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, logger: defaultLogger(logger)}
}

// SearchRestaurants returns restaurants matching the filter ordered by rating
// descending. An empty filter returns the whole catalog.
func (s *CatalogService) SearchRestaurants(ctx context.Context, filter persistence.RestaurantFilter) ([]persistence.Restaurant, error) {
	if s == nil {
		return nil, fmt.Errorf("CatalogService is nil")
	}

	restaurants, err := s.catalog.SearchRestaurants(ctx, filter)
	if err != nil {
		mapped := mapRepoError(err)
		serviceLogger(ctx, s.logger, "catalog", "search_restaurants").
			ErrorContext(ctx, "search failed", "error", mapped, "error_kind", ErrorKind(mapped))
		return nil, mapped
	}

	return restaurants, nil
}

// GetRestaurant retrieves one restaurant by id.
func (s *CatalogService) GetRestaurant(ctx context.Context, id int64) (persistence.Restaurant, error) {
	if s == nil {
		return persistence.Restaurant{}, fmt.Errorf("CatalogService is nil")
	}

	restaurant, err := s.catalog.GetRestaurant(ctx, id)
	if err != nil {
		return persistence.Restaurant{}, mapRepoError(err)
	}
	return restaurant, nil
}

// ListTables retrieves the active tables of a restaurant in ascending
// capacity order.
func (s *CatalogService) ListTables(ctx context.Context, restaurantID int64) ([]persistence.Table, error) {
	if s == nil {
		return nil, fmt.Errorf("CatalogService is nil")
	}

	tables, err := s.catalog.ListTables(ctx, restaurantID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return tables, nil
}

// mapRepoError converts persistence sentinels to their application
// equivalents so callers never depend on the storage package.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrSlotTaken):
		return ErrSlotTaken
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}
