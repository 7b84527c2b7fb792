package repositories

import (
	"testing"

	"transport/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSeatRepoListAvailableOrdersBySeatNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM seats").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "seat_number", "seat_type", "is_available"}).
			AddRow(1, 3, "01", "regular", true).
			AddRow(2, 3, "02", "regular", true))

	repo := SeatRepo{DB: db}
	seats, err := repo.ListAvailable(3)
	if err != nil {
		t.Fatalf("ListAvailable returned error: %v", err)
	}
	if len(seats) != 2 || seats[0].SeatNumber != "01" || seats[1].SeatNumber != "02" {
		t.Fatalf("unexpected seats: %+v", seats)
	}
}

func TestSeatRepoClaimAllRowsFlipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(int64(3), "12", "14").
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := SeatRepo{DB: db}
	if err := repo.Claim(db, 3, []string{"12", "14"}); err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeatRepoClaimShortfallIsSeatConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE seats SET is_available = 0").
		WithArgs(int64(3), "12", "14").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := SeatRepo{DB: db}
	err = repo.Claim(db, 3, []string{"12", "14"})
	if !domain.IsSeatConflict(err) {
		t.Fatalf("expected seat conflict, got %v", err)
	}
}

func TestSeatRepoReleaseIgnoresAlreadyFreeSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// zero affected rows: both seats were already free
	mock.ExpectExec("UPDATE seats SET is_available = 1").
		WithArgs(int64(3), "12", "14").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := SeatRepo{DB: db}
	if err := repo.Release(db, 3, []string{"12", "14"}); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
}

func TestSeatRepoProvisionSeatsZeroPadsNumbers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for _, n := range []string{"01", "02", "03"} {
		mock.ExpectExec("INSERT INTO seats").
			WithArgs(int64(3), n).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	repo := SeatRepo{DB: db}
	if err := repo.ProvisionSeats(db, 3, 3); err != nil {
		t.Fatalf("ProvisionSeats returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
