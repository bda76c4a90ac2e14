// Package db holds the persisted entity types shared by the repository and
// service layers. Rows are scanned by hand; there is no ORM.
package db

import "time"

type User struct {
	ID        int
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Location struct {
	ID         int
	Name       string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
	TotalSlots int
	HourlyRate float64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Slot struct {
	ID          int
	LocationID  int
	SlotNumber  string
	VehicleType string
	IsCovered   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Reservation struct {
	ID                  int
	UserID              int
	SlotID              int
	LocationID          int
	VehicleRegistration string
	StartTime           time.Time
	EndTime             time.Time
	Status              ReservationStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Payment struct {
	ID            int
	ReservationID int
	Amount        float64
	Method        string
	Status        string
	TransactionID string
	PaidAt        time.Time
}
