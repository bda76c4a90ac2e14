package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ExpiredReservation is one row the expiry sweep acts on, carrying the
// contact details the notifier needs.
type ExpiredReservation struct {
	ID        int
	UserID    int
	UserEmail string
	UserPhone string
	EndTime   time.Time
}

type JobRepository interface {
	// ActivePastEndTime lists active reservations whose end time has
	// already passed.
	ActivePastEndTime(ctx context.Context) ([]ExpiredReservation, error)

	// MarkCompleted moves the given reservations to completed.
	MarkCompleted(ctx context.Context, ids []int) (int64, error)
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(database *sql.DB) JobRepository {
	return &jobRepository{db: database}
}

func (r *jobRepository) ActivePastEndTime(ctx context.Context) ([]ExpiredReservation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, u.email, COALESCE(u.phone, ''), r.end_time
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		WHERE r.status = 'active' AND r.end_time < NOW()`)
	if err != nil {
		return nil, fmt.Errorf("query expired reservations: %w", err)
	}
	defer rows.Close()

	var expired []ExpiredReservation
	for rows.Next() {
		var e ExpiredReservation
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserEmail, &e.UserPhone, &e.EndTime); err != nil {
			return nil, fmt.Errorf("scan expired reservation: %w", err)
		}
		expired = append(expired, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired reservations: %w", err)
	}
	return expired, nil
}

func (r *jobRepository) MarkCompleted(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE reservations SET status = 'completed', updated_at = NOW()
		WHERE id = ANY($1) AND status = 'active'`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("mark reservations completed: %w", err)
	}
	return result.RowsAffected()
}
