package api

import (
	"context"
	"net/http"

	"parkwise/internal/auth"
	"parkwise/internal/entities"
)

type DashboardReader interface {
	UserDashboard(ctx context.Context, userID int) (*entities.UserDashboard, error)
	AdminDashboard(ctx context.Context) (*entities.AdminDashboard, error)
	LotStats(ctx context.Context) ([]entities.LotStats, error)
	UserStats(ctx context.Context) (*entities.UserStats, error)
	FinancialStats(ctx context.Context) (*entities.FinancialStats, error)
}

type DashboardHandler struct {
	service DashboardReader
}

func NewDashboardHandler(service DashboardReader) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) UserDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	dashboard, err := h.service.UserDashboard(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.AdminDashboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) LotStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.LotStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"lot_stats": stats})
}

func (h *DashboardHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.UserStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) FinancialStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.FinancialStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
