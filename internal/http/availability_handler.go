package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sreeganeshvemuri-byte/restaurant-reservation-agent/internal/application"
)

// AvailabilityProvider is the slice of the availability service the handler
// needs.
type AvailabilityProvider interface {
	AvailableSlots(ctx context.Context, query application.AvailabilityQuery) ([]application.SlotOption, error)
	NearestSlot(ctx context.Context, query application.NearestSlotQuery) (application.NearestSlotResult, error)
}

// AvailabilityHandler serves open-slot queries for a restaurant and date.
type AvailabilityHandler struct {
	availability AvailabilityProvider
	responder    responder
}

// NewAvailabilityHandler constructs an availability handler.
func NewAvailabilityHandler(availability AvailabilityProvider, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, responder: newResponder(logger)}
}

type slotOptionResponse struct {
	Time          string `json:"time"`
	TableID       int64  `json:"table_id"`
	TableNumber   int    `json:"table_number"`
	TableCapacity int    `json:"table_capacity"`
}

type availabilityResponse struct {
	RestaurantID int64                `json:"restaurant_id"`
	Date         string               `json:"date"`
	PartySize    int                  `json:"party_size"`
	Slots        []slotOptionResponse `json:"slots"`
}

type nearestSlotResponse struct {
	RestaurantID  int64              `json:"restaurant_id"`
	Date          string             `json:"date"`
	PartySize     int                `json:"party_size"`
	RequestedTime string             `json:"requested_time"`
	Slot          slotOptionResponse `json:"slot"`
	ExactMatch    bool               `json:"exact_match"`
}

// Query handles GET /restaurants/{id}/availability. The date and party_size
// query parameters are required; when a time parameter is present the response
// is the nearest open slot at or after that time instead of the full list.
func (h *AvailabilityHandler) Query(w http.ResponseWriter, r *http.Request, rawID string) {
	ctx := r.Context()

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidRestaurantID)
		return
	}

	params := r.URL.Query()
	partySize, err := strconv.Atoi(params.Get("party_size"))
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errors.New("party_size must be an integer"))
		return
	}

	query := application.AvailabilityQuery{
		RestaurantID: id,
		Date:         params.Get("date"),
		PartySize:    partySize,
	}

	if requested := params.Get("time"); requested != "" {
		h.nearest(ctx, w, application.NearestSlotQuery{AvailabilityQuery: query, RequestedTime: requested})
		return
	}

	slots, err := h.availability.AvailableSlots(ctx, query)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	payload := availabilityResponse{
		RestaurantID: query.RestaurantID,
		Date:         query.Date,
		PartySize:    query.PartySize,
		Slots:        make([]slotOptionResponse, 0, len(slots)),
	}
	for _, slot := range slots {
		payload.Slots = append(payload.Slots, toSlotOptionResponse(slot))
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, payload)
}

func (h *AvailabilityHandler) nearest(ctx context.Context, w http.ResponseWriter, query application.NearestSlotQuery) {
	result, err := h.availability.NearestSlot(ctx, query)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, nearestSlotResponse{
		RestaurantID:  query.RestaurantID,
		Date:          query.Date,
		PartySize:     query.PartySize,
		RequestedTime: query.RequestedTime,
		Slot:          toSlotOptionResponse(result.Slot),
		ExactMatch:    result.ExactMatch,
	})
}

func toSlotOptionResponse(slot application.SlotOption) slotOptionResponse {
	return slotOptionResponse{
		Time:          slot.Time,
		TableID:       slot.TableID,
		TableNumber:   slot.TableNumber,
		TableCapacity: slot.TableCapacity,
	}
}
