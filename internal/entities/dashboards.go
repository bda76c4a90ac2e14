package entities

import "time"

// MonthlyCount is one bar of the monthly booking histogram, keyed by a
// YYYY-MM month label.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// UserDashboard is the cached per-user summary.
type UserDashboard struct {
	FirstName           string         `json:"first_name"`
	TotalBookings       int            `json:"total_bookings"`
	TotalHoursParked    float64        `json:"total_hours_parked"`
	ActiveBookings      int            `json:"active_bookings"`
	MostVisitedLocation string         `json:"most_visited_location"`
	MonthlyChartData    []MonthlyCount `json:"monthly_chart_data"`
}

// AdminDashboard is the cached platform-wide summary.
type AdminDashboard struct {
	TotalUsers        int     `json:"total_users"`
	TotalReservations int     `json:"total_reservations"`
	TotalRevenue      float64 `json:"total_revenue"`
	ActiveParkingLots int     `json:"active_parking_lots"`
	TotalSlots        int     `json:"total_slots"`
	OccupiedSlots     int     `json:"occupied_slots"`
	AvailableSlots    int     `json:"available_slots"`
}

type LotStats struct {
	LotID             int     `json:"lot_id"`
	LotName           string  `json:"lot_name"`
	City              string  `json:"city"`
	TotalSlots        int     `json:"total_slots"`
	OccupiedSlots     int     `json:"occupied_slots"`
	AvailableSlots    int     `json:"available_slots"`
	TotalReservations int     `json:"total_reservations"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type TopUser struct {
	Username     string `json:"username"`
	Reservations int    `json:"reservations"`
}

type UserStats struct {
	TotalUsers        int       `json:"total_users"`
	NewUsersThisMonth int       `json:"new_users_this_month"`
	ActiveUsers       int       `json:"active_users"`
	TopUsers          []TopUser `json:"top_users"`
}

type PaymentMethodBreakdown struct {
	Method      string  `json:"method"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

type TransactionSummary struct {
	PaymentID     int       `json:"payment_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
	TransactionID string    `json:"transaction_id"`
	User          string    `json:"user"`
	Lot           string    `json:"lot"`
}

type FinancialStats struct {
	TotalRevenue           float64                  `json:"total_revenue"`
	RevenueThisMonth       float64                  `json:"revenue_this_month"`
	PaymentMethodBreakdown []PaymentMethodBreakdown `json:"payment_method_breakdown"`
	LatestTransactions     []TransactionSummary     `json:"latest_transactions"`
}

// LotSummary is one entry of the public lot listing, including the slot
// numbers currently held by an active reservation.
type LotSummary struct {
	LotID         int      `json:"lot_id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	PostalCode    string   `json:"postal_code"`
	Country       string   `json:"country"`
	TotalSlots    int      `json:"total_slots"`
	HourlyRate    float64  `json:"hourly_rate"`
	IsActive      bool     `json:"is_active"`
	OccupiedSlots []string `json:"occupied_slots"`
}
