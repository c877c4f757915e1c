package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/application"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

// CustomerDirectory is the slice of the customer service the handler needs.
type CustomerDirectory interface {
	Register(ctx context.Context, params application.RegisterCustomerParams) (persistence.Customer, error)
	Lookup(ctx context.Context, phone string) (persistence.Customer, error)
}

// ReservationHistory lists a customer's recent confirmed bookings.
type ReservationHistory interface {
	RecentReservations(ctx context.Context, phone string, limit int) ([]persistence.ReservationDetail, error)
}

// CustomerHandler serves customer profiles and their booking history.
type CustomerHandler struct {
	customers CustomerDirectory
	history   ReservationHistory
	responder responder
}

// NewCustomerHandler constructs a customer handler.
func NewCustomerHandler(customers CustomerDirectory, history ReservationHistory, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, history: history, responder: newResponder(logger)}
}

type registerCustomerRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type customerResponse struct {
	Phone               string `json:"phone"`
	Name                string `json:"name"`
	TotalReservations   int    `json:"total_reservations"`
	LastReservationDate string `json:"last_reservation_date,omitempty"`
	CreatedAt           string `json:"created_at"`
}

// Register handles POST /customers.
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	customer, err := h.customers.Register(ctx, application.RegisterCustomerParams{
		Phone: strings.TrimSpace(req.Phone),
		Name:  strings.TrimSpace(req.Name),
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, toCustomerResponse(customer))
}

// Lookup handles GET /customers/{phone}.
func (h *CustomerHandler) Lookup(w http.ResponseWriter, r *http.Request, phone string) {
	ctx := r.Context()

	phone = strings.TrimSpace(phone)
	if phone == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidPhoneNumber)
		return
	}

	customer, err := h.customers.Lookup(ctx, phone)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toCustomerResponse(customer))
}

// Reservations handles GET /customers/{phone}/reservations with an optional
// limit query parameter.
func (h *CustomerHandler) Reservations(w http.ResponseWriter, r *http.Request, phone string) {
	ctx := r.Context()

	phone = strings.TrimSpace(phone)
	if phone == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidPhoneNumber)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.responder.writeError(ctx, w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	reservations, err := h.history.RecentReservations(ctx, phone, limit)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	payload := make([]reservationResponse, 0, len(reservations))
	for _, detail := range reservations {
		payload = append(payload, toReservationResponse(detail))
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, payload)
}

func toCustomerResponse(customer persistence.Customer) customerResponse {
	return customerResponse{
		Phone:               customer.Phone,
		Name:                customer.Name,
		TotalReservations:   customer.TotalReservations,
		LastReservationDate: customer.LastReservationDate,
		CreatedAt:           formatTimestamp(customer.CreatedAt),
	}
}
