package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"parkwise/internal/entities"
	"parkwise/internal/errors"
)

// DashboardRepository computes the aggregates behind the cached dashboards.
// Pure reads; reservations without a matching payment contribute zero to
// revenue rather than erroring.
type DashboardRepository interface {
	UserDashboard(ctx context.Context, userID int) (*entities.UserDashboard, error)
	AdminDashboard(ctx context.Context) (*entities.AdminDashboard, error)
	LotStats(ctx context.Context) ([]entities.LotStats, error)
	UserStats(ctx context.Context) (*entities.UserStats, error)
	FinancialStats(ctx context.Context) (*entities.FinancialStats, error)
}

type dashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(database *sql.DB) DashboardRepository {
	return &dashboardRepository{db: database}
}

func (r *dashboardRepository) UserDashboard(ctx context.Context, userID int) (*entities.UserDashboard, error) {
	d := &entities.UserDashboard{}

	var firstName sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT first_name FROM users WHERE id = $1`, userID).Scan(&firstName)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("query user %d: %w", userID, err)
	}
	d.FirstName = firstName.String

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(EXTRACT(EPOCH FROM end_time - start_time) / 3600) FILTER (WHERE status = 'completed'), 0),
		       COUNT(*) FILTER (WHERE status = 'active')
		FROM reservations WHERE user_id = $1`, userID).
		Scan(&d.TotalBookings, &d.TotalHoursParked, &d.ActiveBookings)
	if err != nil {
		return nil, fmt.Errorf("aggregate reservations for user %d: %w", userID, err)
	}

	d.MostVisitedLocation = "N/A"
	err = r.db.QueryRowContext(ctx, `
		SELECT l.name
		FROM reservations r
		JOIN parking_locations l ON l.id = r.location_id
		WHERE r.user_id = $1
		GROUP BY l.name
		ORDER BY COUNT(*) DESC
		LIMIT 1`, userID).Scan(&d.MostVisitedLocation)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query most visited location: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(start_time, 'YYYY-MM') AS month, COUNT(*)
		FROM reservations
		WHERE user_id = $1
		GROUP BY month
		ORDER BY month`, userID)
	if err != nil {
		return nil, fmt.Errorf("query monthly bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mc entities.MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		d.MonthlyChartData = append(d.MonthlyChartData, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly counts: %w", err)
	}

	return d, nil
}

func (r *dashboardRepository) AdminDashboard(ctx context.Context) (*entities.AdminDashboard, error) {
	d := &entities.AdminDashboard{}

	err := r.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM users),
		       (SELECT COUNT(*) FROM reservations),
		       (SELECT COALESCE(SUM(amount), 0) FROM payments),
		       (SELECT COUNT(*) FROM parking_locations WHERE is_active),
		       (SELECT COUNT(*) FROM parking_slots),
		       (SELECT COUNT(*) FROM reservations WHERE status = 'active')`).
		Scan(&d.TotalUsers, &d.TotalReservations, &d.TotalRevenue,
			&d.ActiveParkingLots, &d.TotalSlots, &d.OccupiedSlots)
	if err != nil {
		return nil, fmt.Errorf("aggregate admin dashboard: %w", err)
	}
	d.AvailableSlots = d.TotalSlots - d.OccupiedSlots

	return d, nil
}

func (r *dashboardRepository) LotStats(ctx context.Context) ([]entities.LotStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.name, l.city,
		       (SELECT COUNT(*) FROM parking_slots s WHERE s.location_id = l.id),
		       (SELECT COUNT(*) FROM reservations r WHERE r.location_id = l.id AND r.status = 'active'),
		       (SELECT COUNT(*) FROM reservations r WHERE r.location_id = l.id),
		       (SELECT COALESCE(SUM(p.amount), 0)
		        FROM payments p JOIN reservations r ON r.id = p.reservation_id
		        WHERE r.location_id = l.id)
		FROM parking_locations l
		ORDER BY l.name`)
	if err != nil {
		return nil, fmt.Errorf("query lot stats: %w", err)
	}
	defer rows.Close()

	var stats []entities.LotStats
	for rows.Next() {
		var ls entities.LotStats
		err := rows.Scan(&ls.LotID, &ls.LotName, &ls.City, &ls.TotalSlots,
			&ls.OccupiedSlots, &ls.TotalReservations, &ls.TotalRevenue)
		if err != nil {
			return nil, fmt.Errorf("scan lot stats: %w", err)
		}
		ls.AvailableSlots = ls.TotalSlots - ls.OccupiedSlots
		stats = append(stats, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lot stats: %w", err)
	}
	return stats, nil
}

func (r *dashboardRepository) UserStats(ctx context.Context) (*entities.UserStats, error) {
	s := &entities.UserStats{}
	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)

	err := r.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM users WHERE NOT is_admin),
		       (SELECT COUNT(*) FROM users WHERE NOT is_admin AND created_at >= $1),
		       (SELECT COUNT(DISTINCT user_id) FROM reservations WHERE start_time >= $1)`,
		thirtyDaysAgo).Scan(&s.TotalUsers, &s.NewUsersThisMonth, &s.ActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("aggregate user stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT u.username, COUNT(r.id) AS reservation_count
		FROM users u
		JOIN reservations r ON r.user_id = u.id
		WHERE NOT u.is_admin
		GROUP BY u.username
		ORDER BY reservation_count DESC
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("query top users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tu entities.TopUser
		if err := rows.Scan(&tu.Username, &tu.Reservations); err != nil {
			return nil, fmt.Errorf("scan top user: %w", err)
		}
		s.TopUsers = append(s.TopUsers, tu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top users: %w", err)
	}
	return s, nil
}

func (r *dashboardRepository) FinancialStats(ctx context.Context) (*entities.FinancialStats, error) {
	s := &entities.FinancialStats{}
	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0),
		       COALESCE(SUM(amount) FILTER (WHERE paid_at >= $1), 0)
		FROM payments`, thirtyDaysAgo).Scan(&s.TotalRevenue, &s.RevenueThisMonth)
	if err != nil {
		return nil, fmt.Errorf("aggregate revenue: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT method, COUNT(*), SUM(amount)
		FROM payments
		GROUP BY method`)
	if err != nil {
		return nil, fmt.Errorf("query payment method breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b entities.PaymentMethodBreakdown
		if err := rows.Scan(&b.Method, &b.Count, &b.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan method breakdown: %w", err)
		}
		s.PaymentMethodBreakdown = append(s.PaymentMethodBreakdown, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate method breakdown: %w", err)
	}

	txnRows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.amount, p.method, p.status, p.paid_at, COALESCE(p.transaction_id, ''),
		       u.username, l.name
		FROM payments p
		JOIN reservations r ON r.id = p.reservation_id
		JOIN users u ON u.id = r.user_id
		JOIN parking_locations l ON l.id = r.location_id
		ORDER BY p.paid_at DESC
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("query latest transactions: %w", err)
	}
	defer txnRows.Close()

	for txnRows.Next() {
		var t entities.TransactionSummary
		err := txnRows.Scan(&t.PaymentID, &t.Amount, &t.Method, &t.Status, &t.Date,
			&t.TransactionID, &t.User, &t.Lot)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		s.LatestTransactions = append(s.LatestTransactions, t)
	}
	if err := txnRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return s, nil
}
