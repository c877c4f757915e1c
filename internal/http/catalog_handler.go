package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

// CatalogReader is the slice of the catalog service the handler needs.
type CatalogReader interface {
	SearchRestaurants(ctx context.Context, filter persistence.RestaurantFilter) ([]persistence.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (persistence.Restaurant, error)
	ListTables(ctx context.Context, restaurantID int64) ([]persistence.Table, error)
}

// CatalogHandler serves restaurant catalog reads.
type CatalogHandler struct {
	catalog   CatalogReader
	responder responder
}

// NewCatalogHandler constructs a catalog handler.
func NewCatalogHandler(catalog CatalogReader, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, responder: newResponder(logger)}
}

type restaurantResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Cuisine     string  `json:"cuisine"`
	Location    string  `json:"location"`
	City        string  `json:"city"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Rating      float64 `json:"rating"`
	PriceRange  string  `json:"price_range,omitempty"`
	Description string  `json:"description,omitempty"`
}

type tableResponse struct {
	ID       int64 `json:"id"`
	Number   int   `json:"number"`
	Capacity int   `json:"capacity"`
}

// Search handles GET /restaurants with optional cuisine, location, and name
// query filters.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := persistence.RestaurantFilter{
		Cuisine:  r.URL.Query().Get("cuisine"),
		Location: r.URL.Query().Get("location"),
		Name:     r.URL.Query().Get("name"),
	}

	restaurants, err := h.catalog.SearchRestaurants(ctx, filter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	payload := make([]restaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		payload = append(payload, toRestaurantResponse(restaurant))
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, payload)
}

// Get handles GET /restaurants/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request, rawID string) {
	ctx := r.Context()

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidRestaurantID)
		return
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, id)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toRestaurantResponse(restaurant))
}

// Tables handles GET /restaurants/{id}/tables.
func (h *CatalogHandler) Tables(w http.ResponseWriter, r *http.Request, rawID string) {
	ctx := r.Context()

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidRestaurantID)
		return
	}

	tables, err := h.catalog.ListTables(ctx, id)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	payload := make([]tableResponse, 0, len(tables))
	for _, table := range tables {
		payload = append(payload, tableResponse{ID: table.ID, Number: table.Number, Capacity: table.Capacity})
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, payload)
}

func toRestaurantResponse(restaurant persistence.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		Cuisine:     restaurant.Cuisine,
		Location:    restaurant.Location,
		City:        restaurant.City,
		Address:     restaurant.Address,
		Phone:       restaurant.Phone,
		Rating:      restaurant.Rating,
		PriceRange:  restaurant.PriceRange,
		Description: restaurant.Description,
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
