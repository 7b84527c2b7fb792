package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/utils"
)

// FleetService manages buses and drivers. Registering a bus provisions its
// seat rows in the same transaction, so a bus is never visible without a
// complete seat map.
type FleetService struct {
	FleetRepo repositories.FleetRepo
	SeatRepo  repositories.SeatRepo
	DB        *sql.DB
	RequestID string
}

func (s FleetService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s FleetService) fleet() repositories.FleetRepo {
	if s.FleetRepo.DB != nil {
		return s.FleetRepo
	}
	return repositories.FleetRepo{DB: s.db()}
}

func (s FleetService) seats() repositories.SeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepo{DB: s.db()}
}

// RegisterBus inserts the bus and one seat row per physical seat atomically.
func (s FleetService) RegisterBus(b models.Bus) (int64, error) {
	if strings.TrimSpace(b.BusNumber) == "" {
		return 0, domain.ValidationError{Field: "bus_number", Msg: "required"}
	}
	if b.TotalSeats < 1 {
		return 0, domain.ValidationError{Field: "total_seats", Msg: "must be at least 1"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return 0, storeErr(err)
	}
	defer tx.Rollback()

	id, err := s.fleet().InsertBus(tx, b)
	if err != nil {
		return 0, storeErr(err)
	}
	if err := s.seats().ProvisionSeats(tx, id, b.TotalSeats); err != nil {
		return 0, storeErr(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr(err)
	}

	utils.LogEvent(s.RequestID, "fleet", "register_bus",
		fmt.Sprintf("bus_id=%d seats=%d", id, b.TotalSeats))
	return id, nil
}
