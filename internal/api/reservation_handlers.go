// Package api exposes the reservation engine over HTTP. Handlers decode and
// validate request bodies, resolve the caller from the auth middleware, and
// delegate everything else to the services.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"parkwise/internal/auth"
	"parkwise/internal/db"
	"parkwise/internal/entities"
)

// ReservationAllocator is the slice of the reservation service the handlers
// need; narrowed to an interface so handler tests can run against a fake.
type ReservationAllocator interface {
	Allocate(ctx context.Context, req entities.AllocationRequest) (*db.Reservation, error)
	SetStatus(ctx context.Context, req entities.StatusUpdateRequest) (*db.Reservation, error)
}

type ReservationHandler struct {
	service ReservationAllocator
}

func NewReservationHandler(service ReservationAllocator) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	reservation, err := h.service.Allocate(r.Context(), entities.AllocationRequest{
		LocationName:        req.LocationName,
		LocationID:          req.LocationID,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		VehicleRegistration: req.VehicleRegistration,
		UserID:              userID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateReservationResponse{
		ReservationID: reservation.ID,
		SlotID:        reservation.SlotID,
		LocationID:    reservation.LocationID,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		Status:        string(reservation.Status),
		Message:       "Reservation confirmed.",
	})
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	reservation, err := h.service.SetStatus(r.Context(), entities.StatusUpdateRequest{
		ReservationID: req.ReservationID,
		LocationName:  req.LocationName,
		LocationID:    req.LocationID,
		NewStatus:     req.NewStatus,
		UserID:        userID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":        "Reservation status updated",
		"reservation_id": reservation.ID,
		"status":         string(reservation.Status),
	})
}
