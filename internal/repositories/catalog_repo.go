package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transport/internal/config"
	intdb "transport/internal/db"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

type CatalogRepo struct {
	DB *sql.DB
}

func (r CatalogRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// SearchSchedules finds upcoming scheduled departures matching origin and
// destination (both partial matches), optionally narrowed to one travel day.
// Each row carries a live available-seat count for the result list.
func (r CatalogRepo) SearchSchedules(origin, destination, travelDate string) ([]models.SearchResult, error) {
	query := `
		SELECT s.id, r.origin, r.destination, r.price,
		       s.departure_time, s.arrival_time,
		       b.bus_number, b.bus_type,
		       (SELECT COUNT(*) FROM seats WHERE bus_id = b.id AND is_available = 1) AS available_seats
		FROM schedules s
		JOIN routes r ON s.route_id = r.id
		JOIN buses b ON s.bus_id = b.id
		WHERE r.origin LIKE ? AND r.destination LIKE ?
		  AND s.status = 'scheduled' AND s.departure_time > NOW()
	`
	args := []any{"%" + strings.TrimSpace(origin) + "%", "%" + strings.TrimSpace(destination) + "%"}
	if travelDate = strings.TrimSpace(travelDate); travelDate != "" {
		query += ` AND DATE(s.departure_time) = ?`
		args = append(args, travelDate)
	}
	query += ` ORDER BY s.departure_time ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SearchResult{}
	for rows.Next() {
		var res models.SearchResult
		if err := rows.Scan(
			&res.ScheduleID,
			&res.Origin,
			&res.Destination,
			&res.Price,
			&res.DepartureTime,
			&res.ArrivalTime,
			&res.BusNumber,
			&res.BusType,
			&res.AvailableSeats,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetScheduleDetail loads one schedule with route, bus and driver data for
// the booking form.
func (r CatalogRepo) GetScheduleDetail(id int64) (models.ScheduleDetail, error) {
	var d models.ScheduleDetail
	err := r.db().QueryRow(`
		SELECT s.id, s.route_id, s.bus_id, s.departure_time, s.arrival_time, s.status,
		       r.origin, r.destination, r.price,
		       b.bus_number, b.bus_type, b.total_seats,
		       COALESCE(dr.name, ''),
		       (SELECT COUNT(*) FROM seats WHERE bus_id = b.id AND is_available = 1)
		FROM schedules s
		JOIN routes r ON s.route_id = r.id
		JOIN buses b ON s.bus_id = b.id
		LEFT JOIN drivers dr ON b.driver_id = dr.id
		WHERE s.id = ?
	`, id).Scan(
		&d.ID,
		&d.RouteID,
		&d.BusID,
		&d.DepartureTime,
		&d.ArrivalTime,
		&d.Status,
		&d.Origin,
		&d.Destination,
		&d.Price,
		&d.BusNumber,
		&d.BusType,
		&d.TotalSeats,
		&d.DriverName,
		&d.AvailableSeats,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return d, domain.NotFoundError{Resource: "schedule", Err: err}
	}
	return d, err
}

// ScheduleFare is the slice of a schedule the booking engine needs.
type ScheduleFare struct {
	ID     int64
	BusID  int64
	Status string
	Price  float64
}

// ScheduleForBooking reads status, bus and fare inside the caller's
// transaction so the booking engine prices against a consistent snapshot.
func (r CatalogRepo) ScheduleForBooking(run Runner, id int64) (ScheduleFare, error) {
	var sf ScheduleFare
	err := run.QueryRow(`
		SELECT s.id, s.bus_id, s.status, r.price
		FROM schedules s
		JOIN routes r ON s.route_id = r.id
		WHERE s.id = ?
	`, id).Scan(&sf.ID, &sf.BusID, &sf.Status, &sf.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return sf, domain.NotFoundError{Resource: "schedule", Err: err}
	}
	return sf, err
}

// ListRoutes returns all routes ordered by origin/destination.
func (r CatalogRepo) ListRoutes() ([]models.Route, error) {
	rows, err := r.db().Query(`
		SELECT id, origin, destination, COALESCE(distance, 0), COALESCE(TIME_FORMAT(duration, '%H:%i'), ''), price
		FROM routes
		ORDER BY origin ASC, destination ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKM, &rt.Duration, &rt.Price); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// CreateRoute inserts a route; (origin, destination) must be unique.
func (r CatalogRepo) CreateRoute(rt models.Route) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO routes (origin, destination, distance, duration, price)
		VALUES (?, ?, ?, ?, ?)
	`, rt.Origin, rt.Destination, rt.DistanceKM, rt.Duration, rt.Price)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "route", Msg: "origin/destination pair already exists", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r CatalogRepo) UpdateRoute(id int64, rt models.Route) error {
	_, err := r.db().Exec(`
		UPDATE routes SET origin = ?, destination = ?, distance = ?, duration = ?, price = ?
		WHERE id = ?
	`, rt.Origin, rt.Destination, rt.DistanceKM, rt.Duration, rt.Price, id)
	if err != nil && intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "route", Msg: "origin/destination pair already exists", Err: err}
	}
	return err
}

func (r CatalogRepo) DeleteRoute(id int64) error {
	res, err := r.db().Exec(`DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "route")
}

// ListSchedules returns schedules newest-departure first for the admin view.
func (r CatalogRepo) ListSchedules() ([]models.Schedule, error) {
	rows, err := r.db().Query(`
		SELECT id, route_id, bus_id, departure_time, arrival_time, status
		FROM schedules
		ORDER BY departure_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Schedule{}
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ID, &s.RouteID, &s.BusID, &s.DepartureTime, &s.ArrivalTime, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r CatalogRepo) CreateSchedule(s models.Schedule) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO schedules (bus_id, route_id, departure_time, arrival_time, status)
		VALUES (?, ?, ?, ?, 'scheduled')
	`, s.BusID, s.RouteID, s.DepartureTime, s.ArrivalTime)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CatalogRepo) UpdateScheduleStatus(id int64, status string) error {
	_, err := r.db().Exec(`UPDATE schedules SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r CatalogRepo) DeleteSchedule(id int64) error {
	res, err := r.db().Exec(`DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "schedule")
}

func requireRow(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
