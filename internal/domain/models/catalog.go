package models

import "time"

// Schedule statuses.
const (
	ScheduleScheduled = "scheduled"
	ScheduleDeparted  = "departed"
	ScheduleArrived   = "arrived"
	ScheduleCancelled = "cancelled"
)

type Route struct {
	ID          int64   `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKM  float64 `json:"distance_km"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price"`
}

type Driver struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type Bus struct {
	ID         int64  `json:"id"`
	BusNumber  string `json:"bus_number"`
	BusType    string `json:"bus_type"`
	TotalSeats int    `json:"total_seats"`
	Amenities  string `json:"amenities"`
	DriverID   *int64 `json:"driver_id,omitempty"`
	DriverName string `json:"driver_name,omitempty"`
}

type Seat struct {
	ID         int64  `json:"id"`
	BusID      int64  `json:"bus_id"`
	SeatNumber string `json:"seat_number"`
	SeatType   string `json:"seat_type"`
	Available  bool   `json:"available"`
}

type Schedule struct {
	ID            int64     `json:"id"`
	RouteID       int64     `json:"route_id"`
	BusID         int64     `json:"bus_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Status        string    `json:"status"`
}

// ScheduleDetail joins a schedule with its route, bus and driver for the
// booking form.
type ScheduleDetail struct {
	Schedule
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Price          float64 `json:"price"`
	BusNumber      string  `json:"bus_number"`
	BusType        string  `json:"bus_type"`
	TotalSeats     int     `json:"total_seats"`
	DriverName     string  `json:"driver_name,omitempty"`
	AvailableSeats int     `json:"available_seats"`
}

// SearchResult is one row of the route search: a scheduled departure with
// live seat availability.
type SearchResult struct {
	ScheduleID     int64     `json:"schedule_id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Price          float64   `json:"price"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	BusNumber      string    `json:"bus_number"`
	BusType        string    `json:"bus_type"`
	AvailableSeats int       `json:"available_seats"`
}
