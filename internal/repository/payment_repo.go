package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"parkwise/internal/db"
	"parkwise/internal/errors"
)

type PaymentRepository interface {
	// Create records a payment for an existing reservation. Returns
	// errors.ErrNotFound for an unknown reservation and errors.ErrConflict
	// when the reservation already has a payment.
	Create(ctx context.Context, payment *db.Payment) error

	// ReservationOwner returns the user owning the given reservation.
	ReservationOwner(ctx context.Context, reservationID int) (int, error)
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(database *sql.DB) PaymentRepository {
	return &paymentRepository{db: database}
}

func (r *paymentRepository) Create(ctx context.Context, payment *db.Payment) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (reservation_id, amount, method, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, paid_at`,
		payment.ReservationID, payment.Amount, payment.Method, payment.Status, payment.TransactionID,
	).Scan(&payment.ID, &payment.PaidAt)
	if err != nil {
		if isPqCode(err, "23503") { // foreign_key_violation: no such reservation
			return errors.ErrNotFound
		}
		if isPqCode(err, "23505") { // unique_violation: already paid
			return errors.ErrConflict
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) ReservationOwner(ctx context.Context, reservationID int) (int, error) {
	var userID int
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM reservations WHERE id = $1`, reservationID).Scan(&userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return 0, errors.ErrNotFound
		}
		return 0, fmt.Errorf("query reservation owner: %w", err)
	}
	return userID, nil
}
