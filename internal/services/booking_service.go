package services

import (
	"database/sql"
	"fmt"

	intconfig "transport/internal/config"
	intdb "transport/internal/db"
	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/utils"
)

// ServiceTaxRate is the fixed 5% surcharge applied once per booking on top
// of the base fares.
const ServiceTaxRate = 0.05

// refAttempts bounds reference regeneration when a code collides with an
// existing row. With 128-bit codes this loop effectively never repeats.
const refAttempts = 3

// BookingService is the only path that creates bookings and tickets or
// mutates seat availability. All writes of one operation share a single
// transaction; isolation is delegated to the database, not in-process locks.
type BookingService struct {
	BookingRepo repositories.BookingRepo
	SeatRepo    repositories.SeatRepo
	CatalogRepo repositories.CatalogRepo
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) seats() repositories.SeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepo{DB: s.db()}
}

func (s BookingService) catalog() repositories.CatalogRepo {
	if s.CatalogRepo.DB != nil {
		return s.CatalogRepo
	}
	return repositories.CatalogRepo{DB: s.db()}
}

// CreateBooking reserves seats for the given passengers on a schedule and
// returns the new booking id. On any failure the store is left as if the
// call never happened: booking, tickets and seat flips commit together or
// not at all.
func (s BookingService) CreateBooking(actor domain.RequestContext, scheduleID int64, passengers []models.PassengerInput) (int64, error) {
	if actor.UserID <= 0 {
		return 0, domain.ForbiddenError{Msg: "login required"}
	}
	seats, err := validatePassengers(passengers)
	if err != nil {
		return 0, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return 0, storeErr(err)
	}
	defer tx.Rollback()

	sched, err := s.catalog().ScheduleForBooking(tx, scheduleID)
	if err != nil {
		return 0, storeErr(err)
	}
	if sched.Status != models.ScheduleScheduled {
		return 0, domain.NotFoundError{Resource: "schedule"}
	}

	total := utils.RoundMoney(sched.Price * float64(len(passengers)) * (1 + ServiceTaxRate))

	if err := s.seats().Claim(tx, sched.BusID, seats); err != nil {
		return 0, storeErr(err)
	}

	bookingID, err := s.insertBookingWithRetry(tx, models.Booking{
		UserID:          int64(actor.UserID),
		ScheduleID:      scheduleID,
		TotalPassengers: len(passengers),
		TotalAmount:     total,
	})
	if err != nil {
		return 0, err
	}

	for i, p := range passengers {
		ticket := models.Ticket{
			BookingID:     bookingID,
			PassengerName: utils.NormalizeSpace(p.Name),
			PassengerAge:  p.Age,
			SeatNumber:    seats[i],
			Fare:          sched.Price,
		}
		if err := s.insertTicketWithRetry(tx, ticket); err != nil {
			return 0, err
		}
	}

	// Payment stub: there is no gateway, a booking is paid the moment its
	// write commits.
	if err := s.bookings().MarkPaid(tx, bookingID); err != nil {
		return 0, storeErr(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr(err)
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d schedule_id=%d seats=%d total=%s", bookingID, scheduleID, len(seats), utils.FormatMoney(total)))
	return bookingID, nil
}

// CancelBooking flips a booking to cancelled and releases its seats in the
// same transaction, so no concurrent reader ever sees the seats free while
// the booking still holds them.
func (s BookingService) CancelBooking(actor domain.RequestContext, bookingID int64) error {
	tx, err := s.db().Begin()
	if err != nil {
		return storeErr(err)
	}
	defer tx.Rollback()

	v, err := s.bookings().ForCancel(tx, bookingID)
	if err != nil {
		return storeErr(err)
	}
	if int64(actor.UserID) != v.UserID && !actor.IsAdmin() {
		return domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	switch v.Status {
	case models.BookingCancelled:
		return domain.AlreadyCancelledError{BookingID: bookingID}
	case models.BookingConfirmed:
	default:
		return domain.ConflictError{Resource: "booking", Msg: "only confirmed bookings can be cancelled"}
	}

	ok, err := s.bookings().CancelConfirmed(tx, bookingID)
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		// Lost a race against another cancel of the same booking.
		return domain.AlreadyCancelledError{BookingID: bookingID}
	}

	seats, err := s.bookings().TicketSeatNumbers(tx, bookingID)
	if err != nil {
		return storeErr(err)
	}
	if err := s.seats().Release(tx, v.BusID, seats); err != nil {
		return storeErr(err)
	}

	if err := tx.Commit(); err != nil {
		return storeErr(err)
	}

	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%d seats_released=%d", bookingID, len(seats)))
	return nil
}

// GetBooking returns booking detail, restricted to the owner or an admin.
func (s BookingService) GetBooking(actor domain.RequestContext, bookingID int64) (models.BookingDetail, error) {
	d, err := s.bookings().GetDetail(bookingID)
	if err != nil {
		return d, storeErr(err)
	}
	if int64(actor.UserID) != d.UserID && !actor.IsAdmin() {
		return models.BookingDetail{}, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	return d, nil
}

// ListBookings returns the caller's bookings, newest first.
func (s BookingService) ListBookings(actor domain.RequestContext) ([]models.BookingDetail, error) {
	out, err := s.bookings().ListByUser(int64(actor.UserID))
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s BookingService) insertBookingWithRetry(run repositories.Runner, b models.Booking) (int64, error) {
	for attempt := 0; attempt < refAttempts; attempt++ {
		b.BookingRef = utils.NewBookingRef()
		id, err := s.bookings().InsertBooking(run, b)
		if err == nil {
			return id, nil
		}
		if intdb.IsDuplicateKey(err) {
			continue
		}
		return 0, storeErr(err)
	}
	return 0, domain.InternalError{Msg: "could not allocate a unique booking reference"}
}

func (s BookingService) insertTicketWithRetry(run repositories.Runner, t models.Ticket) error {
	for attempt := 0; attempt < refAttempts; attempt++ {
		t.TicketNumber = utils.NewTicketNumber()
		err := s.bookings().InsertTicket(run, t)
		if err == nil {
			return nil
		}
		if intdb.IsDuplicateKey(err) {
			continue
		}
		return storeErr(err)
	}
	return domain.InternalError{Msg: "could not allocate a unique ticket number"}
}

// validatePassengers normalizes the requested seats and rejects malformed
// input before any store access. Duplicate seats within one request are
// always an error, regardless of availability.
func validatePassengers(passengers []models.PassengerInput) ([]string, error) {
	if len(passengers) == 0 {
		return nil, domain.ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}

	seats := make([]string, 0, len(passengers))
	seen := make(map[string]struct{}, len(passengers))
	for i, p := range passengers {
		if utils.NormalizeSpace(p.Name) == "" {
			return nil, domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("passenger %d has no name", i+1)}
		}
		if p.Age < 1 || p.Age > 120 {
			return nil, domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("passenger %d has an invalid age", i+1)}
		}
		seat := utils.NormalizeSeat(p.SeatNumber)
		if seat == "" {
			return nil, domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("passenger %d has no seat selected", i+1)}
		}
		if _, dup := seen[seat]; dup {
			return nil, domain.ValidationError{Field: "seats", Msg: "duplicate seat selection: " + seat}
		}
		seen[seat] = struct{}{}
		seats = append(seats, seat)
	}
	return seats, nil
}

// storeErr passes typed domain errors through and classifies raw store
// errors as transient (deadlock, lock timeout) or internal.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsNotFound(err),
		domain.IsValidation(err),
		domain.IsSeatConflict(err),
		domain.IsForbidden(err),
		domain.IsAlreadyCancelled(err),
		domain.IsConflict(err),
		domain.IsTransient(err),
		domain.IsInternal(err):
		return err
	case intdb.IsTransient(err):
		return domain.TransientError{Err: err}
	default:
		return domain.InternalError{Err: err}
	}
}
