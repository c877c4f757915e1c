package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/application"
	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/persistence"
)

// ReservationLedger is the slice of the reservation service the handler needs.
type ReservationLedger interface {
	Commit(ctx context.Context, params application.CommitReservationParams) (persistence.ReservationDetail, error)
	Cancel(ctx context.Context, ref string) error
	Get(ctx context.Context, ref string) (persistence.ReservationDetail, error)
	Stats(ctx context.Context) (persistence.Stats, error)
}

// ReservationHandler serves booking commits, cancellations, and lookups.
type ReservationHandler struct {
	ledger    ReservationLedger
	responder responder
}

// NewReservationHandler constructs a reservation handler.
func NewReservationHandler(ledger ReservationLedger, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{ledger: ledger, responder: newResponder(logger)}
}

type createReservationRequest struct {
	RestaurantID int64  `json:"restaurant_id"`
	TableID      int64  `json:"table_id"`
	Phone        string `json:"phone"`
	CustomerName string `json:"customer_name"`
	Date         string `json:"date"`
	TimeSlot     string `json:"time_slot"`
	PartySize    int    `json:"party_size"`
}

type reservationResponse struct {
	Ref                string `json:"ref"`
	RestaurantID       int64  `json:"restaurant_id"`
	RestaurantName     string `json:"restaurant_name"`
	RestaurantLocation string `json:"restaurant_location"`
	TableNumber        int    `json:"table_number"`
	TableCapacity      int    `json:"table_capacity"`
	Phone              string `json:"phone"`
	CustomerName       string `json:"customer_name"`
	Date               string `json:"date"`
	TimeSlot           string `json:"time_slot"`
	PartySize          int    `json:"party_size"`
	Status             string `json:"status"`
	CreatedAt          string `json:"created_at"`
}

type statsResponse struct {
	Restaurants          int `json:"restaurants"`
	Tables               int `json:"tables"`
	Customers            int `json:"customers"`
	ActiveReservations   int `json:"active_reservations"`
	LifetimeReservations int `json:"lifetime_reservations"`
}

// Create handles POST /reservations.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	detail, err := h.ledger.Commit(ctx, application.CommitReservationParams{
		RestaurantID: req.RestaurantID,
		TableID:      req.TableID,
		Phone:        strings.TrimSpace(req.Phone),
		CustomerName: strings.TrimSpace(req.CustomerName),
		Date:         req.Date,
		TimeSlot:     req.TimeSlot,
		PartySize:    req.PartySize,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, toReservationResponse(detail))
}

// Get handles GET /reservations/{ref}.
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request, ref string) {
	ctx := r.Context()

	ref = strings.TrimSpace(ref)
	if ref == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidReservationRef)
		return
	}

	detail, err := h.ledger.Get(ctx, ref)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toReservationResponse(detail))
}

// Cancel handles DELETE /reservations/{ref}. Cancelling frees the slot for
// rebooking; the ledger row itself is kept.
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ref string) {
	ctx := r.Context()

	ref = strings.TrimSpace(ref)
	if ref == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidReservationRef)
		return
	}

	if err := h.ledger.Cancel(ctx, ref); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, map[string]string{"ref": ref, "status": persistence.StatusCancelled})
}

// Stats handles GET /stats.
func (h *ReservationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.ledger.Stats(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, statsResponse{
		Restaurants:          stats.Restaurants,
		Tables:               stats.Tables,
		Customers:            stats.Customers,
		ActiveReservations:   stats.ActiveReservations,
		LifetimeReservations: stats.LifetimeReservations,
	})
}

func toReservationResponse(detail persistence.ReservationDetail) reservationResponse {
	return reservationResponse{
		Ref:                detail.Ref,
		RestaurantID:       detail.RestaurantID,
		RestaurantName:     detail.RestaurantName,
		RestaurantLocation: detail.RestaurantLocation,
		TableNumber:        detail.TableNumber,
		TableCapacity:      detail.TableCapacity,
		Phone:              detail.Phone,
		CustomerName:       detail.CustomerName,
		Date:               detail.Date,
		TimeSlot:           detail.TimeSlot,
		PartySize:          detail.PartySize,
		Status:             detail.Status,
		CreatedAt:          formatTimestamp(detail.CreatedAt),
	}
}
