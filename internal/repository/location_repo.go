package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/lib/pq"

	"parkwise/internal/db"
	"parkwise/internal/entities"
	"parkwise/internal/errors"
)

type LocationRepository interface {
	// GetByRef resolves a location by name when name is non-empty,
	// otherwise by id. Inactive locations resolve too; the allocator
	// checks the active flag itself.
	GetByRef(ctx context.Context, name string, id int) (*db.Location, error)

	// CreateWithSlots inserts the location and generates its slots
	// S1..S<TotalSlots> in one transaction.
	CreateWithSlots(ctx context.Context, loc *db.Location) error

	Update(ctx context.Context, loc *db.Location) error

	// Delete removes a location. Refused with errors.ErrLocationNotEmpty
	// while any of its slots carries reservation history.
	Delete(ctx context.Context, id int) error

	// List returns all locations together with the slot numbers currently
	// held by an active reservation.
	List(ctx context.Context) ([]entities.LotSummary, error)
}

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(database *sql.DB) LocationRepository {
	return &locationRepository{db: database}
}

func (r *locationRepository) GetByRef(ctx context.Context, name string, id int) (*db.Location, error) {
	query := `
		SELECT id, name, city, state, postal_code, country, phone, total_slots, hourly_rate, is_active, created_at, updated_at
		FROM parking_locations WHERE `
	var row *sql.Row
	if name != "" {
		row = r.db.QueryRowContext(ctx, query+`name = $1`, name)
	} else {
		row = r.db.QueryRowContext(ctx, query+`id = $1`, id)
	}

	var loc db.Location
	err := row.Scan(&loc.ID, &loc.Name, &loc.City, &loc.State, &loc.PostalCode, &loc.Country,
		&loc.Phone, &loc.TotalSlots, &loc.HourlyRate, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrLocationNotFound
		}
		return nil, fmt.Errorf("query location: %w", err)
	}
	return &loc, nil
}

func (r *locationRepository) CreateWithSlots(ctx context.Context, loc *db.Location) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin location tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO parking_locations (name, city, state, postal_code, country, phone, total_slots, hourly_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		loc.Name, loc.City, loc.State, loc.PostalCode, loc.Country, loc.Phone,
		loc.TotalSlots, loc.HourlyRate, loc.IsActive,
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}

	for i := 1; i <= loc.TotalSlots; i++ {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO parking_slots (location_id, slot_number) VALUES ($1, $2)`,
			loc.ID, fmt.Sprintf("S%d", i))
		if err != nil {
			return fmt.Errorf("insert slot S%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit location: %w", err)
	}
	return nil
}

func (r *locationRepository) Update(ctx context.Context, loc *db.Location) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE parking_locations
		SET name = $1, city = $2, state = $3, postal_code = $4, country = $5,
		    phone = $6, total_slots = $7, hourly_rate = $8, is_active = $9, updated_at = NOW()
		WHERE id = $10`,
		loc.Name, loc.City, loc.State, loc.PostalCode, loc.Country, loc.Phone,
		loc.TotalSlots, loc.HourlyRate, loc.IsActive, loc.ID)
	if err != nil {
		return fmt.Errorf("update location %d: %w", loc.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.ErrLocationNotFound
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	var hasHistory bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations r
			JOIN parking_slots s ON s.id = r.slot_id
			WHERE s.location_id = $1
		)`, id).Scan(&hasHistory)
	if err != nil {
		return fmt.Errorf("check reservation history for location %d: %w", id, err)
	}
	if hasHistory {
		return errors.ErrLocationNotEmpty
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM parking_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.ErrLocationNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit location delete: %w", err)
	}
	return nil
}

func (r *locationRepository) List(ctx context.Context) ([]entities.LotSummary, error) {
	query := `
		SELECT l.id, l.name, l.city, l.state, l.postal_code, l.country,
		       l.total_slots, l.hourly_rate, l.is_active,
		       COALESCE(array_agg(s.slot_number) FILTER (WHERE r.id IS NOT NULL), '{}')
		FROM parking_locations l
		LEFT JOIN parking_slots s ON s.location_id = l.id
		LEFT JOIN reservations r ON r.slot_id = s.id AND r.status = 'active'
		GROUP BY l.id
		ORDER BY l.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var lots []entities.LotSummary
	for rows.Next() {
		var lot entities.LotSummary
		var occupied pq.StringArray
		err := rows.Scan(&lot.LotID, &lot.Name, &lot.City, &lot.State, &lot.PostalCode, &lot.Country,
			&lot.TotalSlots, &lot.HourlyRate, &lot.IsActive, &occupied)
		if err != nil {
			return nil, fmt.Errorf("scan lot summary: %w", err)
		}
		lot.OccupiedSlots = []string(occupied)
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lots: %w", err)
	}
	return lots, nil
}
