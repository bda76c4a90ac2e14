// Package errors defines the error taxonomy of the reservation engine.
//
// Business outcomes (no free slot, unknown location) are sentinel errors so
// handlers can map them to precise HTTP statuses; anything below the
// business layer is wrapped and surfaced as a generic failure.
package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidWindow is returned when end <= start.
	ErrInvalidWindow = errors.New("end time must be after start time")

	// ErrInvalidRegistration is returned when the vehicle plate does not
	// match the required format.
	ErrInvalidRegistration = errors.New("invalid vehicle registration format")

	// ErrLocationNotFound is returned when the requested location does not
	// exist or is inactive.
	ErrLocationNotFound = errors.New("parking location not found")

	// ErrNoAvailableSlot is the legitimate "fully booked" outcome: every
	// slot in the location overlaps the requested window.
	ErrNoAvailableSlot = errors.New("no available slot for the requested window")

	// ErrNotFound covers unknown reservations, lots, and users.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a losing race on insert: another reservation for
	// the same slot and an overlapping window committed first.
	ErrConflict = errors.New("conflicting reservation exists")

	// ErrInvalidTransition is returned when a status update is not in the
	// transition table.
	ErrInvalidTransition = errors.New("illegal status transition")

	// ErrLocationNotEmpty is returned when deleting a location whose slots
	// carry reservation history.
	ErrLocationNotEmpty = errors.New("location has reservation history")
)

// HTTPError carries an HTTP status code alongside a message.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// StatusFor maps engine errors to HTTP status codes. Unknown errors map to
// 500 so storage failures never leak detail to the caller.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidWindow),
		errors.Is(err, ErrInvalidRegistration),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, ErrLocationNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoAvailableSlot), errors.Is(err, ErrConflict),
		errors.Is(err, ErrLocationNotEmpty):
		return http.StatusConflict
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
