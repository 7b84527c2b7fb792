package services

import (
	"database/sql"
	"strings"

	intconfig "transport/internal/config"
	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/utils"
)

// CatalogService serves the read side of the booking flow: route search,
// schedule detail and the seat map. It never reserves anything.
type CatalogService struct {
	CatalogRepo repositories.CatalogRepo
	SeatRepo    repositories.SeatRepo
	DB          *sql.DB
}

func (s CatalogService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CatalogService) catalog() repositories.CatalogRepo {
	if s.CatalogRepo.DB != nil {
		return s.CatalogRepo
	}
	return repositories.CatalogRepo{DB: s.db()}
}

func (s CatalogService) seats() repositories.SeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepo{DB: s.db()}
}

// Search lists upcoming departures matching the query. Origin and
// destination are required; travelDate (YYYY-MM-DD) is optional.
func (s CatalogService) Search(origin, destination, travelDate string) ([]models.SearchResult, error) {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, domain.ValidationError{Field: "query", Msg: "origin and destination are required"}
	}
	if travelDate = strings.TrimSpace(travelDate); travelDate != "" {
		if _, err := utils.ParseDate(travelDate); err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
		}
	}
	out, err := s.catalog().SearchSchedules(origin, destination, travelDate)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// ScheduleDetail returns the schedule plus its free seats for the seat map.
func (s CatalogService) ScheduleDetail(id int64) (models.ScheduleDetail, []models.Seat, error) {
	d, err := s.catalog().GetScheduleDetail(id)
	if err != nil {
		return d, nil, storeErr(err)
	}
	free, err := s.seats().ListAvailable(d.BusID)
	if err != nil {
		return d, nil, storeErr(err)
	}
	return d, free, nil
}

// AvailableSeats is the raw seat-map read for a bus.
func (s CatalogService) AvailableSeats(busID int64) ([]models.Seat, error) {
	out, err := s.seats().ListAvailable(busID)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}
