package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDashboardCollectsAggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	count := func(n int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"c"}).AddRow(n)
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings$").WillReturnRows(count(120))
	mock.ExpectQuery("CURDATE").WillReturnRows(count(4))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").WillReturnRows(count(37))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM schedules").WillReturnRows(count(6))
	mock.ExpectQuery("SUM").
		WillReturnRows(sqlmock.NewRows([]string{"s"}).AddRow(5512.5))
	mock.ExpectQuery("ORDER BY b.booking_date DESC").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_ref", "user_id", "schedule_id", "total_passengers",
			"total_amount", "booking_date", "status", "payment_status",
			"username", "full_name", "origin", "destination", "departure_time",
		}).AddRow(41, "BK-TEST", 9, 7, 2, 94.5, time.Now(), "confirmed", "paid",
			"alice", "Alice Tan", "CityA", "CityB", time.Now()))

	svc := ReportsService{DB: db}
	stats, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if stats.TotalBookings != 120 || stats.TodayBookings != 4 || stats.TotalUsers != 37 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if stats.TotalRevenue != 5512.5 {
		t.Fatalf("unexpected revenue: %v", stats.TotalRevenue)
	}
	if len(stats.RecentBookings) != 1 || stats.RecentBookings[0].BookingRef != "BK-TEST" {
		t.Fatalf("unexpected recent bookings: %+v", stats.RecentBookings)
	}
}
