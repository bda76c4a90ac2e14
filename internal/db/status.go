package db

import "fmt"

// ReservationStatus is the lifecycle state of a reservation.
//
// The stored vocabulary is active/completed/cancelled. The legacy API names
// "occupied" (for active) and "available" (for completed/released) are still
// accepted on input and normalized by ParseStatus.
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// legalTransitions maps each status to the set of statuses it may move to.
// Completed and cancelled are terminal; reactivating a cancelled reservation
// is refused until a product decision says otherwise.
var legalTransitions = map[ReservationStatus][]ReservationStatus{
	StatusActive:    {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseStatus normalizes a status string, accepting the legacy names.
func ParseStatus(s string) (ReservationStatus, error) {
	switch s {
	case "active", "occupied":
		return StatusActive, nil
	case "completed", "available":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
