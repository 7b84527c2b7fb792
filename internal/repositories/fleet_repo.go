package repositories

import (
	"database/sql"
	"errors"

	intconfig "transport/internal/config"
	intdb "transport/internal/db"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

// FleetRepo manages buses and drivers. Seat rows are provisioned by
// SeatRepo inside the same transaction as the bus insert.
type FleetRepo struct {
	DB *sql.DB
}

func (r FleetRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r FleetRepo) ListBuses() ([]models.Bus, error) {
	rows, err := r.db().Query(`
		SELECT b.id, b.bus_number, b.bus_type, b.total_seats, COALESCE(b.amenities, ''),
		       b.driver_id, COALESCE(d.name, '')
		FROM buses b
		LEFT JOIN drivers d ON b.driver_id = d.id
		ORDER BY b.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		var driverID sql.NullInt64
		if err := rows.Scan(&b.ID, &b.BusNumber, &b.BusType, &b.TotalSeats, &b.Amenities, &driverID, &b.DriverName); err != nil {
			return nil, err
		}
		if driverID.Valid {
			b.DriverID = &driverID.Int64
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r FleetRepo) GetBus(id int64) (models.Bus, error) {
	var b models.Bus
	var driverID sql.NullInt64
	err := r.db().QueryRow(`
		SELECT b.id, b.bus_number, b.bus_type, b.total_seats, COALESCE(b.amenities, ''),
		       b.driver_id, COALESCE(d.name, '')
		FROM buses b
		LEFT JOIN drivers d ON b.driver_id = d.id
		WHERE b.id = ?
	`, id).Scan(&b.ID, &b.BusNumber, &b.BusType, &b.TotalSeats, &b.Amenities, &driverID, &b.DriverName)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: "bus", Err: err}
	}
	if driverID.Valid {
		b.DriverID = &driverID.Int64
	}
	return b, err
}

func (r FleetRepo) InsertBus(run Runner, b models.Bus) (int64, error) {
	var driverID any
	if b.DriverID != nil {
		driverID = *b.DriverID
	}
	res, err := run.Exec(`
		INSERT INTO buses (bus_number, bus_type, total_seats, amenities, driver_id)
		VALUES (?, ?, ?, ?, ?)
	`, b.BusNumber, b.BusType, b.TotalSeats, b.Amenities, driverID)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "bus", Msg: "bus number already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateBus changes descriptive fields and driver assignment. The seat count
// is fixed at provisioning time and deliberately not updatable here.
func (r FleetRepo) UpdateBus(id int64, b models.Bus) error {
	var driverID any
	if b.DriverID != nil {
		driverID = *b.DriverID
	}
	_, err := r.db().Exec(`
		UPDATE buses SET bus_number = ?, bus_type = ?, amenities = ?, driver_id = ?
		WHERE id = ?
	`, b.BusNumber, b.BusType, b.Amenities, driverID, id)
	if err != nil && intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "bus", Msg: "bus number already registered", Err: err}
	}
	return err
}

// DeleteBus removes the bus; schedules and seats go with it via FK cascade.
func (r FleetRepo) DeleteBus(id int64) error {
	res, err := r.db().Exec(`DELETE FROM buses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "bus")
}

func (r FleetRepo) ListDrivers() ([]models.Driver, error) {
	rows, err := r.db().Query(`
		SELECT id, name, license_number, COALESCE(phone, ''), COALESCE(address, '')
		FROM drivers
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.LicenseNumber, &d.Phone, &d.Address); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r FleetRepo) CreateDriver(d models.Driver) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO drivers (name, license_number, phone, address)
		VALUES (?, ?, ?, ?)
	`, d.Name, d.LicenseNumber, d.Phone, d.Address)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "driver", Msg: "license number already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r FleetRepo) UpdateDriver(id int64, d models.Driver) error {
	_, err := r.db().Exec(`
		UPDATE drivers SET name = ?, license_number = ?, phone = ?, address = ?
		WHERE id = ?
	`, d.Name, d.LicenseNumber, d.Phone, d.Address, id)
	if err != nil && intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "driver", Msg: "license number already registered", Err: err}
	}
	return err
}

func (r FleetRepo) DeleteDriver(id int64) error {
	res, err := r.db().Exec(`DELETE FROM drivers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "driver")
}
