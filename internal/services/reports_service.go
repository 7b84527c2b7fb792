package services

import (
	"database/sql"
	"time"

	intconfig "transport/internal/config"
	"transport/internal/domain/models"
)

// DashboardStats are the aggregates shown on the admin dashboard.
type DashboardStats struct {
	TotalBookings   int             `json:"total_bookings"`
	TodayBookings   int             `json:"today_bookings"`
	TotalUsers      int             `json:"total_users"`
	ActiveSchedules int             `json:"active_schedules"`
	TotalRevenue    float64         `json:"total_revenue"`
	RecentBookings  []RecentBooking `json:"recent_bookings"`
}

// RecentBooking is one row of the dashboard's latest-bookings table.
type RecentBooking struct {
	models.Booking
	Username      string    `json:"username"`
	FullName      string    `json:"full_name"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
}

type ReportsService struct {
	DB *sql.DB
}

func (s ReportsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Dashboard collects the read-only aggregates for the admin landing page.
func (s ReportsService) Dashboard() (DashboardStats, error) {
	var stats DashboardStats
	db := s.db()

	scalars := []struct {
		query string
		dest  any
	}{
		{`SELECT COUNT(*) FROM bookings`, &stats.TotalBookings},
		{`SELECT COUNT(*) FROM bookings WHERE DATE(booking_date) = CURDATE()`, &stats.TodayBookings},
		{`SELECT COUNT(*) FROM users`, &stats.TotalUsers},
		{`SELECT COUNT(*) FROM schedules WHERE status = 'scheduled' AND departure_time > NOW()`, &stats.ActiveSchedules},
		{`SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE payment_status = 'paid'`, &stats.TotalRevenue},
	}
	for _, q := range scalars {
		if err := db.QueryRow(q.query).Scan(q.dest); err != nil {
			return stats, storeErr(err)
		}
	}

	rows, err := db.Query(`
		SELECT b.id, b.booking_ref, b.user_id, b.schedule_id, b.total_passengers,
		       b.total_amount, b.booking_date, b.status, b.payment_status,
		       u.username, u.full_name, r.origin, r.destination, s.departure_time
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		JOIN schedules s ON b.schedule_id = s.id
		JOIN routes r ON s.route_id = r.id
		ORDER BY b.booking_date DESC
		LIMIT 10
	`)
	if err != nil {
		return stats, storeErr(err)
	}
	defer rows.Close()

	stats.RecentBookings = []RecentBooking{}
	for rows.Next() {
		var rb RecentBooking
		if err := rows.Scan(
			&rb.ID,
			&rb.BookingRef,
			&rb.UserID,
			&rb.ScheduleID,
			&rb.TotalPassengers,
			&rb.TotalAmount,
			&rb.BookingDate,
			&rb.Status,
			&rb.PaymentStatus,
			&rb.Username,
			&rb.FullName,
			&rb.Origin,
			&rb.Destination,
			&rb.DepartureTime,
		); err != nil {
			return stats, storeErr(err)
		}
		stats.RecentBookings = append(stats.RecentBookings, rb)
	}
	return stats, storeErr(rows.Err())
}
