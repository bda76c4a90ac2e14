package api

import (
	"context"
	"encoding/json"
	"net/http"

	"parkwise/internal/db"
	"parkwise/internal/entities"
)

type PaymentRecorder interface {
	Record(ctx context.Context, req entities.PaymentRequest) (*db.Payment, error)
}

type PaymentHandler struct {
	service PaymentRecorder
}

func NewPaymentHandler(service PaymentRecorder) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	payment, err := h.service.Record(r.Context(), entities.PaymentRequest{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        req.Status,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":    "Payment recorded successfully",
		"payment_id": payment.ID,
	})
}
