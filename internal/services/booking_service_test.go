package services

import (
	"testing"

	"transport/internal/domain"
	"transport/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func twoPassengers() []models.PassengerInput {
	return []models.PassengerInput{
		{Name: "Alice Tan", Age: 30, SeatNumber: "12"},
		{Name: "Bob Tan", Age: 34, SeatNumber: "14"},
	}
}

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "bus_id", "status", "price"}).
		AddRow(7, 3, models.ScheduleScheduled, 45.0)
}

func TestCreateBookingCommitsBookingTicketsAndSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.id, s.bus_id, s.status, r.price").
		WithArgs(int64(7)).
		WillReturnRows(scheduleRows())
	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(int64(3), "12", "14").
		WillReturnResult(sqlmock.NewResult(0, 2))
	// total = 45.0 * 2 passengers * 1.05
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), int64(9), int64(7), 2, 94.5).
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(sqlmock.AnyArg(), int64(41), "Alice Tan", 30, "12", 45.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(sqlmock.AnyArg(), int64(41), "Bob Tan", 34, "14", 45.0).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE bookings SET payment_status = 'paid'").
		WithArgs(int64(41)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	id, err := svc.CreateBooking(actor, 7, twoPassengers())
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if id != 41 {
		t.Fatalf("expected booking id 41, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsDuplicateSeatsBeforeStoreAccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	passengers := []models.PassengerInput{
		{Name: "Alice", Age: 30, SeatNumber: "12"},
		{Name: "Bob", Age: 34, SeatNumber: " 12 "},
	}
	_, err = svc.CreateBooking(actor, 7, passengers)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store was touched for invalid input: %v", err)
	}
}

func TestCreateBookingRequiresAuthenticatedUser(t *testing.T) {
	svc := BookingService{}
	_, err := svc.CreateBooking(domain.RequestContext{}, 7, twoPassengers())
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestCreateBookingSeatShortfallRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.id, s.bus_id, s.status, r.price").
		WithArgs(int64(7)).
		WillReturnRows(scheduleRows())
	// only one of the two requested seats was still free
	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(int64(3), "12", "14").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	_, err = svc.CreateBooking(actor, 7, twoPassengers())
	if !domain.IsSeatConflict(err) {
		t.Fatalf("expected seat conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingUnknownScheduleIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.id, s.bus_id, s.status, r.price").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "status", "price"}))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	_, err = svc.CreateBooking(actor, 99, twoPassengers())
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateBookingCancelledScheduleIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.id, s.bus_id, s.status, r.price").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "status", "price"}).
			AddRow(7, 3, models.ScheduleCancelled, 45.0))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	_, err = svc.CreateBooking(actor, 7, twoPassengers())
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateBookingDeadlockIsTransient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.id, s.bus_id, s.status, r.price").
		WithArgs(int64(7)).
		WillReturnRows(scheduleRows())
	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(int64(3), "12", "14").
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	_, err = svc.CreateBooking(actor, 7, twoPassengers())
	if !domain.IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestCreateBookingRegeneratesReferenceOnCollision(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	passengers := twoPassengers()[:1]

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.id, s.bus_id, s.status, r.price").
		WithArgs(int64(7)).
		WillReturnRows(scheduleRows())
	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(int64(3), "12").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE bookings SET payment_status = 'paid'").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	id, err := svc.CreateBooking(actor, 7, passengers)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected booking id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func cancelViewRows(userID int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "bus_id", "status"}).
		AddRow(5, userID, 7, 3, status)
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT b.id, b.user_id, b.schedule_id, s.bus_id, b.status").
		WithArgs(int64(5)).
		WillReturnRows(cancelViewRows(9, models.BookingConfirmed))
	mock.ExpectExec("UPDATE bookings SET status = 'cancelled'").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT seat_number FROM tickets").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("12").AddRow("14"))
	mock.ExpectExec("UPDATE seats SET is_available = 1").
		WithArgs(int64(3), "12", "14").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	if err := svc.CancelBooking(actor, 5); err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT b.id, b.user_id, b.schedule_id, s.bus_id, b.status").
		WithArgs(int64(5)).
		WillReturnRows(cancelViewRows(9, models.BookingCancelled))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	err = svc.CancelBooking(actor, 5)
	if !domain.IsAlreadyCancelled(err) {
		t.Fatalf("expected already-cancelled error, got %v", err)
	}
}

func TestCancelBookingOfOtherUserIsForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT b.id, b.user_id, b.schedule_id, s.bus_id, b.status").
		WithArgs(int64(5)).
		WillReturnRows(cancelViewRows(42, models.BookingConfirmed))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	err = svc.CancelBooking(actor, 5)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestCancelBookingAdminMayCancelAnyBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT b.id, b.user_id, b.schedule_id, s.bus_id, b.status").
		WithArgs(int64(5)).
		WillReturnRows(cancelViewRows(42, models.BookingConfirmed))
	mock.ExpectExec("UPDATE bookings SET status = 'cancelled'").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT seat_number FROM tickets").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("12"))
	mock.ExpectExec("UPDATE seats SET is_available = 1").
		WithArgs(int64(3), "12").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db}
	admin := domain.RequestContext{UserID: 1, Role: "admin"}

	if err := svc.CancelBooking(admin, 5); err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingLostRaceReportsAlreadyCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT b.id, b.user_id, b.schedule_id, s.bus_id, b.status").
		WithArgs(int64(5)).
		WillReturnRows(cancelViewRows(9, models.BookingConfirmed))
	// another cancel committed between the read and the guarded update
	mock.ExpectExec("UPDATE bookings SET status = 'cancelled'").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	actor := domain.RequestContext{UserID: 9, Role: "customer"}

	err = svc.CancelBooking(actor, 5)
	if !domain.IsAlreadyCancelled(err) {
		t.Fatalf("expected already-cancelled error, got %v", err)
	}
}
