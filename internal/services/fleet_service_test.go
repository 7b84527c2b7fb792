package services

import (
	"testing"

	"transport/internal/domain"
	"transport/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRegisterBusProvisionsSeatsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO buses").
		WithArgs("BUS-01", "coach", 3, "wifi", nil).
		WillReturnResult(sqlmock.NewResult(3, 1))
	for _, n := range []string{"01", "02", "03"} {
		mock.ExpectExec("INSERT INTO seats").
			WithArgs(int64(3), n).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	svc := FleetService{DB: db}
	id, err := svc.RegisterBus(models.Bus{BusNumber: "BUS-01", BusType: "coach", TotalSeats: 3, Amenities: "wifi"})
	if err != nil {
		t.Fatalf("RegisterBus returned error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected bus id 3, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterBusRejectsZeroSeats(t *testing.T) {
	svc := FleetService{}
	_, err := svc.RegisterBus(models.Bus{BusNumber: "BUS-01"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
