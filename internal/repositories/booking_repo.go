package repositories

import (
	"database/sql"
	"errors"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

// BookingRepo persists booking headers and tickets. The write methods take a
// Runner because the booking engine groups them into one transaction with the
// seat claims.
type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepo) InsertBooking(run Runner, b models.Booking) (int64, error) {
	res, err := run.Exec(`
		INSERT INTO bookings (booking_ref, user_id, schedule_id, total_passengers, total_amount)
		VALUES (?, ?, ?, ?, ?)
	`, b.BookingRef, b.UserID, b.ScheduleID, b.TotalPassengers, b.TotalAmount)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepo) InsertTicket(run Runner, t models.Ticket) error {
	_, err := run.Exec(`
		INSERT INTO tickets (ticket_number, booking_id, passenger_name, passenger_age, seat_number, fare)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.TicketNumber, t.BookingID, t.PassengerName, t.PassengerAge, t.SeatNumber, t.Fare)
	return err
}

func (r BookingRepo) MarkPaid(run Runner, bookingID int64) error {
	_, err := run.Exec(`UPDATE bookings SET payment_status = 'paid' WHERE id = ?`, bookingID)
	return err
}

// CancelView is the slice of a booking the cancellation path needs.
type CancelView struct {
	ID         int64
	UserID     int64
	ScheduleID int64
	BusID      int64
	Status     string
}

func (r BookingRepo) ForCancel(run Runner, bookingID int64) (CancelView, error) {
	var v CancelView
	err := run.QueryRow(`
		SELECT b.id, b.user_id, b.schedule_id, s.bus_id, b.status
		FROM bookings b
		JOIN schedules s ON b.schedule_id = s.id
		WHERE b.id = ?
	`, bookingID).Scan(&v.ID, &v.UserID, &v.ScheduleID, &v.BusID, &v.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return v, err
}

// CancelConfirmed flips a confirmed booking to cancelled. The status guard
// means a concurrent cancel of the same booking updates zero rows, so seats
// are never double-released.
func (r BookingRepo) CancelConfirmed(run Runner, bookingID int64) (bool, error) {
	res, err := run.Exec(`
		UPDATE bookings SET status = 'cancelled'
		WHERE id = ? AND status = 'confirmed'
	`, bookingID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r BookingRepo) TicketSeatNumbers(run Runner, bookingID int64) ([]string, error) {
	rows, err := run.Query(`SELECT seat_number FROM tickets WHERE booking_id = ? ORDER BY id ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetDetail loads a booking with journey info and tickets for the detail
// page and the printable ticket.
func (r BookingRepo) GetDetail(bookingID int64) (models.BookingDetail, error) {
	var d models.BookingDetail
	err := r.db().QueryRow(`
		SELECT b.id, b.booking_ref, b.user_id, b.schedule_id, b.total_passengers,
		       b.total_amount, b.booking_date, b.status, b.payment_status,
		       r.origin, r.destination, s.departure_time, s.arrival_time,
		       bs.bus_number, COALESCE(dr.name, '')
		FROM bookings b
		JOIN schedules s ON b.schedule_id = s.id
		JOIN routes r ON s.route_id = r.id
		JOIN buses bs ON s.bus_id = bs.id
		LEFT JOIN drivers dr ON bs.driver_id = dr.id
		WHERE b.id = ?
	`, bookingID).Scan(
		&d.ID,
		&d.BookingRef,
		&d.UserID,
		&d.ScheduleID,
		&d.TotalPassengers,
		&d.TotalAmount,
		&d.BookingDate,
		&d.Status,
		&d.PaymentStatus,
		&d.Origin,
		&d.Destination,
		&d.DepartureTime,
		&d.ArrivalTime,
		&d.BusNumber,
		&d.DriverName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return d, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return d, err
	}

	rows, err := r.db().Query(`
		SELECT id, ticket_number, booking_id, passenger_name, COALESCE(passenger_age, 0), seat_number, fare
		FROM tickets
		WHERE booking_id = ?
		ORDER BY id ASC
	`, bookingID)
	if err != nil {
		return d, err
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.TicketNumber, &t.BookingID, &t.PassengerName, &t.PassengerAge, &t.SeatNumber, &t.Fare); err != nil {
			return d, err
		}
		d.Tickets = append(d.Tickets, t)
	}
	return d, rows.Err()
}

// ListByUser returns a user's bookings newest first, without ticket rows.
func (r BookingRepo) ListByUser(userID int64) ([]models.BookingDetail, error) {
	rows, err := r.db().Query(`
		SELECT b.id, b.booking_ref, b.user_id, b.schedule_id, b.total_passengers,
		       b.total_amount, b.booking_date, b.status, b.payment_status,
		       r.origin, r.destination, s.departure_time, s.arrival_time, bs.bus_number
		FROM bookings b
		JOIN schedules s ON b.schedule_id = s.id
		JOIN routes r ON s.route_id = r.id
		JOIN buses bs ON s.bus_id = bs.id
		WHERE b.user_id = ?
		ORDER BY b.booking_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingDetail{}
	for rows.Next() {
		var d models.BookingDetail
		if err := rows.Scan(
			&d.ID,
			&d.BookingRef,
			&d.UserID,
			&d.ScheduleID,
			&d.TotalPassengers,
			&d.TotalAmount,
			&d.BookingDate,
			&d.Status,
			&d.PaymentStatus,
			&d.Origin,
			&d.Destination,
			&d.DepartureTime,
			&d.ArrivalTime,
			&d.BusNumber,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
