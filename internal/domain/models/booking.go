package models

import "time"

// Booking statuses.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

type Booking struct {
	ID              int64     `json:"id"`
	BookingRef      string    `json:"booking_ref"`
	UserID          int64     `json:"user_id"`
	ScheduleID      int64     `json:"schedule_id"`
	TotalPassengers int       `json:"total_passengers"`
	TotalAmount     float64   `json:"total_amount"`
	BookingDate     time.Time `json:"booking_date"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
}

type Ticket struct {
	ID            int64   `json:"id"`
	TicketNumber  string  `json:"ticket_number"`
	BookingID     int64   `json:"booking_id"`
	PassengerName string  `json:"passenger_name"`
	PassengerAge  int     `json:"passenger_age"`
	SeatNumber    string  `json:"seat_number"`
	Fare          float64 `json:"fare"`
}

// PassengerInput is one passenger row of a booking request.
type PassengerInput struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	SeatNumber string `json:"seat_number"`
}

// BookingDetail joins the booking header with journey info and its tickets.
type BookingDetail struct {
	Booking
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	BusNumber     string    `json:"bus_number"`
	DriverName    string    `json:"driver_name,omitempty"`
	Tickets       []Ticket  `json:"tickets"`
}
