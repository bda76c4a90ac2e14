package api

import "time"

// CreateReservationRequest is the booking payload. Times are RFC 3339.
type CreateReservationRequest struct {
	LocationName        string    `json:"location_name"`
	LocationID          int       `json:"location_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	VehicleRegistration string    `json:"vehicle_registration"`
}

type CreateReservationResponse struct {
	ReservationID int       `json:"reservation_id"`
	SlotID        int       `json:"slot_id"`
	LocationID    int       `json:"location_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
}

type UpdateStatusRequest struct {
	ReservationID int    `json:"reservation_id"`
	LocationName  string `json:"location_name"`
	LocationID    int    `json:"location_id"`
	NewStatus     string `json:"new_status"`
}

type RecordPaymentRequest struct {
	ReservationID int     `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
