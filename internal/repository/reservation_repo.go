// Package repository contains all SQL access for the reservation engine.
// It is the sole authority for the overlap invariant: no two non-cancelled
// reservations on the same slot may hold intersecting [start, end) windows.
package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"parkwise/internal/db"
	"parkwise/internal/errors"
)

// pq error code raised by the no_overlapping_reservations exclusion
// constraint when two racing inserts genuinely conflict.
const pqExclusionViolation = "23P01"

type ReservationRepository interface {
	// SlotsForLocation returns the active slots of a location in ascending
	// id order. The order is the allocator's tie-breaking rule and must be
	// stable.
	SlotsForLocation(ctx context.Context, locationID int) ([]db.Slot, error)

	// Create inserts the reservation if its window does not overlap any
	// non-cancelled reservation on the same slot. The overlap check and
	// the insert run in one transaction serialized per slot; a losing race
	// surfaces as errors.ErrConflict.
	Create(ctx context.Context, res *db.Reservation) error

	// UpdateStatus transitions the reservation matching (id, user,
	// location) according to the transition table. Returns
	// errors.ErrNotFound when nothing matches and
	// errors.ErrInvalidTransition when the move is not legal.
	UpdateStatus(ctx context.Context, reservationID, userID, locationID int, newStatus db.ReservationStatus) error

	// GetByID fetches a single reservation.
	GetByID(ctx context.Context, id int) (*db.Reservation, error)
}

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(database *sql.DB) ReservationRepository {
	return &reservationRepository{db: database}
}

func (r *reservationRepository) SlotsForLocation(ctx context.Context, locationID int) ([]db.Slot, error) {
	query := `
		SELECT id, location_id, slot_number, vehicle_type, is_covered, is_active, created_at, updated_at
		FROM parking_slots
		WHERE location_id = $1 AND is_active
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("query slots for location %d: %w", locationID, err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		var s db.Slot
		if err := rows.Scan(&s.ID, &s.LocationID, &s.SlotNumber, &s.VehicleType, &s.IsCovered, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}
	return slots, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *db.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reservation tx: %w", err)
	}
	defer tx.Rollback()

	// Serialize concurrent allocations on this slot. Locking the slot row
	// makes the overlap check and the insert a single atomic unit; the
	// exclusion constraint below is the deterministic backstop.
	var slotID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM parking_slots WHERE id = $1 FOR UPDATE`, res.SlotID).Scan(&slotID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.ErrNotFound
		}
		return fmt.Errorf("lock slot %d: %w", res.SlotID, err)
	}

	var overlapping bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE slot_id = $1
			  AND status <> 'cancelled'
			  AND start_time < $3
			  AND end_time > $2
		)`, res.SlotID, res.StartTime, res.EndTime).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("check overlap on slot %d: %w", res.SlotID, err)
	}
	if overlapping {
		return errors.ErrConflict
	}

	now := time.Now().UTC()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations (user_id, slot_id, location_id, vehicle_registration, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, created_at, updated_at`,
		res.UserID, res.SlotID, res.LocationID, res.VehicleRegistration,
		res.StartTime, res.EndTime, res.Status, now,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if isPqCode(err, pqExclusionViolation) {
			return errors.ErrConflict
		}
		return fmt.Errorf("insert reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, reservationID, userID, locationID int, newStatus db.ReservationStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin status tx: %w", err)
	}
	defer tx.Rollback()

	var current db.ReservationStatus
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM reservations
		WHERE id = $1 AND user_id = $2 AND location_id = $3
		FOR UPDATE`, reservationID, userID, locationID).Scan(&current)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.ErrNotFound
		}
		return fmt.Errorf("load reservation %d for status update: %w", reservationID, err)
	}

	if !db.CanTransition(current, newStatus) {
		return fmt.Errorf("%w: %s -> %s", errors.ErrInvalidTransition, current, newStatus)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2`,
		newStatus, reservationID)
	if err != nil {
		return fmt.Errorf("update reservation %d status: %w", reservationID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit status update: %w", err)
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int) (*db.Reservation, error) {
	var res db.Reservation
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, slot_id, location_id, vehicle_registration, start_time, end_time, status, created_at, updated_at
		FROM reservations WHERE id = $1`, id).Scan(
		&res.ID, &res.UserID, &res.SlotID, &res.LocationID, &res.VehicleRegistration,
		&res.StartTime, &res.EndTime, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("query reservation %d: %w", id, err)
	}
	return &res, nil
}
