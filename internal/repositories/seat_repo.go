package repositories

import (
	"database/sql"
	"fmt"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
)

// SeatRepo owns the per-bus seat inventory. Availability flags are only
// mutated through Claim, Release and ProvisionSeats.
type SeatRepo struct {
	DB *sql.DB
}

func (r SeatRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListAvailable returns the free seats of a bus ordered by seat number.
func (r SeatRepo) ListAvailable(busID int64) ([]models.Seat, error) {
	rows, err := r.db().Query(`
		SELECT id, bus_id, seat_number, seat_type, is_available
		FROM seats
		WHERE bus_id = ? AND is_available = 1
		ORDER BY seat_number ASC
	`, busID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		if err := rows.Scan(&s.ID, &s.BusID, &s.SeatNumber, &s.SeatType, &s.Available); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountAvailable returns the number of free seats on a bus.
func (r SeatRepo) CountAvailable(busID int64) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM seats WHERE bus_id = ? AND is_available = 1`, busID).Scan(&n)
	return n, err
}

// Claim flips the requested seats to unavailable as one conditional update.
// The is_available guard makes two overlapping claims race on the same rows:
// whichever transaction commits first wins, the other sees a short row count
// and gets SeatConflictError. Partial claims never survive - the caller rolls
// back the surrounding transaction on error.
func (r SeatRepo) Claim(run Runner, busID int64, seatNumbers []string) error {
	if len(seatNumbers) == 0 {
		return domain.ValidationError{Field: "seats", Msg: "no seats requested"}
	}

	args := make([]any, 0, len(seatNumbers)+1)
	args = append(args, busID)
	for _, s := range seatNumbers {
		args = append(args, s)
	}

	res, err := run.Exec(`
		UPDATE seats SET is_available = 0
		WHERE bus_id = ? AND is_available = 1 AND seat_number IN (`+inPlaceholders(len(seatNumbers))+`)
	`, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected != int64(len(seatNumbers)) {
		return domain.SeatConflictError{BusID: busID, Seats: seatNumbers}
	}
	return nil
}

// Release flips seats back to available. Idempotent: releasing a seat that is
// already available changes nothing and is not an error.
func (r SeatRepo) Release(run Runner, busID int64, seatNumbers []string) error {
	if len(seatNumbers) == 0 {
		return nil
	}

	args := make([]any, 0, len(seatNumbers)+1)
	args = append(args, busID)
	for _, s := range seatNumbers {
		args = append(args, s)
	}

	_, err := run.Exec(`
		UPDATE seats SET is_available = 1
		WHERE bus_id = ? AND seat_number IN (`+inPlaceholders(len(seatNumbers))+`)
	`, args...)
	return err
}

// ProvisionSeats creates one row per physical seat when a bus is registered.
// Seat numbers are zero-padded so string ordering matches the seat map.
func (r SeatRepo) ProvisionSeats(run Runner, busID int64, totalSeats int) error {
	if totalSeats <= 0 {
		return domain.ValidationError{Field: "total_seats", Msg: "must be positive"}
	}
	for i := 1; i <= totalSeats; i++ {
		if _, err := run.Exec(`
			INSERT INTO seats (bus_id, seat_number, seat_type, is_available)
			VALUES (?, ?, 'regular', 1)
		`, busID, fmt.Sprintf("%02d", i)); err != nil {
			return err
		}
	}
	return nil
}
