package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkwise/internal/db"
	"parkwise/internal/entities"
)

type LocationAdmin interface {
	Create(ctx context.Context, req entities.LocationRequest) (*db.Location, error)
	Update(ctx context.Context, id int, req entities.LocationRequest) (*db.Location, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]entities.LotSummary, error)
}

type AdminHandler struct {
	locations LocationAdmin
}

func NewAdminHandler(locations LocationAdmin) *AdminHandler {
	return &AdminHandler{locations: locations}
}

func (h *AdminHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var req entities.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	location, err := h.locations.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Lot created successfully",
		"lot_id":  location.ID,
	})
}

func (h *AdminHandler) UpdateLot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid lot ID", http.StatusBadRequest)
		return
	}

	var req entities.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if _, err := h.locations.Update(r.Context(), id, req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lot updated successfully"})
}

func (h *AdminHandler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid lot ID", http.StatusBadRequest)
		return
	}

	if err := h.locations.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lot deleted successfully"})
}

func (h *AdminHandler) ListLots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.locations.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": lots})
}
