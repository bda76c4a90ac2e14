package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkwise/internal/auth"
	"parkwise/internal/db"
	"parkwise/internal/entities"
	"parkwise/internal/errors"
)

type fakeAllocator struct {
	reservation *db.Reservation
	allocErr    error
	statusErr   error
	gotAlloc    entities.AllocationRequest
	gotStatus   entities.StatusUpdateRequest
}

func (f *fakeAllocator) Allocate(_ context.Context, req entities.AllocationRequest) (*db.Reservation, error) {
	f.gotAlloc = req
	if f.allocErr != nil {
		return nil, f.allocErr
	}
	return f.reservation, nil
}

func (f *fakeAllocator) SetStatus(_ context.Context, req entities.StatusUpdateRequest) (*db.Reservation, error) {
	f.gotStatus = req
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &db.Reservation{ID: req.ReservationID, Status: db.StatusCancelled}, nil
}

func authedRequest(t *testing.T, method, target string, body any, userID int) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

func TestCreateReservationOK(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := &fakeAllocator{reservation: &db.Reservation{
		ID: 12, SlotID: 3, LocationID: 1,
		StartTime: start, EndTime: start.Add(time.Hour), Status: db.StatusActive,
	}}
	h := NewReservationHandler(svc)

	req := authedRequest(t, http.MethodPost, "/api/reservations", CreateReservationRequest{
		LocationName:        "Central",
		StartTime:           start,
		EndTime:             start.Add(time.Hour),
		VehicleRegistration: "KA01AB1234",
	}, 42)
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 42, svc.gotAlloc.UserID)

	var resp CreateReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 12, resp.ReservationID)
	assert.Equal(t, "active", resp.Status)
}

func TestCreateReservationErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{errors.ErrNoAvailableSlot, http.StatusConflict},
		{errors.ErrInvalidWindow, http.StatusBadRequest},
		{errors.ErrInvalidRegistration, http.StatusBadRequest},
		{errors.ErrLocationNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		h := NewReservationHandler(&fakeAllocator{allocErr: tc.err})
		req := authedRequest(t, http.MethodPost, "/api/reservations", CreateReservationRequest{}, 1)
		rec := httptest.NewRecorder()
		h.CreateReservation(rec, req)
		assert.Equal(t, tc.code, rec.Code, "error %v", tc.err)
	}
}

func TestCreateReservationRequiresAuth(t *testing.T) {
	h := NewReservationHandler(&fakeAllocator{})
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateStatusOK(t *testing.T) {
	svc := &fakeAllocator{}
	h := NewReservationHandler(svc)

	req := authedRequest(t, http.MethodPut, "/api/reservations/status", UpdateStatusRequest{
		ReservationID: 5,
		LocationID:    3,
		NewStatus:     "cancelled",
	}, 9)
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 9, svc.gotStatus.UserID)
	assert.Equal(t, 3, svc.gotStatus.LocationID)
	assert.Equal(t, "cancelled", svc.gotStatus.NewStatus)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "cancelled", resp["status"])
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	h := NewReservationHandler(&fakeAllocator{statusErr: errors.ErrInvalidTransition})
	req := authedRequest(t, http.MethodPut, "/api/reservations/status", UpdateStatusRequest{
		ReservationID: 5,
		NewStatus:     "active",
	}, 9)
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
