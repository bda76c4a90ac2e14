// Package service holds the business logic of the reservation engine. Each
// service owns its repositories and the cache invalidator; nothing in here
// touches SQL or Redis directly.
package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"parkwise/internal/cache"
	"parkwise/internal/db"
	"parkwise/internal/entities"
	"parkwise/internal/errors"
	"parkwise/internal/repository"
)

// plateRe is the required vehicle registration format (Indian plates,
// e.g. KA01AB1234).
var plateRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{1,2}[0-9]{4}$`)

// ReservationService maps booking requests to concrete slots and owns
// reservation status transitions.
type ReservationService struct {
	reservations repository.ReservationRepository
	locations    repository.LocationRepository
	invalidator  *cache.Invalidator
	logger       *zap.Logger
}

func NewReservationService(
	reservations repository.ReservationRepository,
	locations repository.LocationRepository,
	invalidator *cache.Invalidator,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		locations:    locations,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// Allocate picks the first slot of the requested location whose existing
// non-cancelled reservations do not overlap [start, end) and persists a new
// active reservation on it. First-fit over ascending slot id: deterministic,
// not load-balanced. A slot lost to a concurrent request is skipped and the
// scan continues with the next candidate.
func (s *ReservationService) Allocate(ctx context.Context, req entities.AllocationRequest) (*db.Reservation, error) {
	if req.StartTime.IsZero() || req.EndTime.IsZero() || !req.EndTime.After(req.StartTime) {
		return nil, errors.ErrInvalidWindow
	}
	if !plateRe.MatchString(req.VehicleRegistration) {
		return nil, errors.ErrInvalidRegistration
	}

	location, err := s.locations.GetByRef(ctx, req.LocationName, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !location.IsActive {
		return nil, errors.ErrLocationNotFound
	}

	slots, err := s.reservations.SlotsForLocation(ctx, location.ID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	for _, slot := range slots {
		reservation := &db.Reservation{
			UserID:              req.UserID,
			SlotID:              slot.ID,
			LocationID:          location.ID,
			VehicleRegistration: req.VehicleRegistration,
			StartTime:           req.StartTime,
			EndTime:             req.EndTime,
			Status:              db.StatusActive,
		}

		err := s.reservations.Create(ctx, reservation)
		if err != nil {
			if stderrors.Is(err, errors.ErrConflict) {
				continue
			}
			return nil, err
		}

		s.invalidator.Invalidate(ctx, cache.OpCreateReservation, cache.Scope{UserID: req.UserID})
		s.logger.Info("reservation allocated",
			zap.Int("reservation_id", reservation.ID),
			zap.Int("slot_id", slot.ID),
			zap.String("slot_number", slot.SlotNumber),
			zap.Int("user_id", req.UserID))
		return reservation, nil
	}

	return nil, errors.ErrNoAvailableSlot
}

// SetStatus transitions a reservation owned by the given user at the given
// location and returns the updated row. The transition table is enforced by
// the store; a successful update invalidates the user's dashboard before
// returning.
func (s *ReservationService) SetStatus(ctx context.Context, req entities.StatusUpdateRequest) (*db.Reservation, error) {
	newStatus, err := db.ParseStatus(req.NewStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidTransition, err)
	}

	location, err := s.locations.GetByRef(ctx, req.LocationName, req.LocationID)
	if err != nil {
		return nil, err
	}

	err = s.reservations.UpdateStatus(ctx, req.ReservationID, req.UserID, location.ID, newStatus)
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.OpUpdateStatus, cache.Scope{UserID: req.UserID})
	s.logger.Info("reservation status updated",
		zap.Int("reservation_id", req.ReservationID),
		zap.String("status", string(newStatus)))
	return s.reservations.GetByID(ctx, req.ReservationID)
}
