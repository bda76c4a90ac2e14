package entities

import "time"

// AllocationRequest is a booking request entering the allocator. The
// location may be referenced by name or numeric id; name wins when both
// are set.
type AllocationRequest struct {
	LocationName        string    `json:"location_name"`
	LocationID          int       `json:"location_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	VehicleRegistration string    `json:"vehicle_registration"`
	UserID              int       `json:"-"`
}

// StatusUpdateRequest moves a reservation through the status lifecycle. The
// location is referenced the same way as in AllocationRequest: by name or
// numeric id, name winning when both are set.
type StatusUpdateRequest struct {
	ReservationID int    `json:"reservation_id"`
	LocationName  string `json:"location_name"`
	LocationID    int    `json:"location_id"`
	NewStatus     string `json:"new_status"`
	UserID        int    `json:"-"`
}

type PaymentRequest struct {
	ReservationID int     `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id"`
}

type LocationRequest struct {
	Name       string  `json:"name"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
	Phone      string  `json:"phone"`
	TotalSlots int     `json:"total_slots"`
	HourlyRate float64 `json:"hourly_rate"`
	IsActive   *bool   `json:"is_active"`
}
