package handlers

import (
	"net/http"
	"strings"

	"transport/internal/domain/models"
	"transport/internal/repositories"
	"transport/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/schedules/search?origin=..&destination=..&date=YYYY-MM-DD
func SearchSchedules(c *gin.Context) {
	svc := services.CatalogService{}
	results, err := svc.Search(
		strings.TrimSpace(c.Query("origin")),
		strings.TrimSpace(c.Query("destination")),
		strings.TrimSpace(c.Query("date")),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GET /api/schedules/:id
func GetScheduleDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc := services.CatalogService{}
	detail, seats, err := svc.ScheduleDetail(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": detail, "available_seats": seats})
}

// GET /api/buses/:id/seats
func GetAvailableSeats(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc := services.CatalogService{}
	seats, err := svc.AvailableSeats(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seats": seats})
}

// GET /api/routes
func GetRoutes(c *gin.Context) {
	repo := repositories.CatalogRepo{}
	routes, err := repo.ListRoutes()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// POST /api/routes (admin)
func CreateRoute(c *gin.Context) {
	var rt models.Route
	if !BindJSONOrError(c, &rt) {
		return
	}
	rt.Origin = strings.TrimSpace(rt.Origin)
	rt.Destination = strings.TrimSpace(rt.Destination)
	if rt.Origin == "" || rt.Destination == "" {
		RespondError(c, http.StatusBadRequest, "origin and destination are required", nil)
		return
	}
	if rt.Price <= 0 {
		RespondError(c, http.StatusBadRequest, "price must be positive", nil)
		return
	}

	repo := repositories.CatalogRepo{}
	id, err := repo.CreateRoute(rt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rt.ID = id
	c.JSON(http.StatusCreated, rt)
}

// PUT /api/routes/:id (admin)
func UpdateRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var rt models.Route
	if !BindJSONOrError(c, &rt) {
		return
	}

	repo := repositories.CatalogRepo{}
	if err := repo.UpdateRoute(id, rt); err != nil {
		RespondDomainError(c, err)
		return
	}
	rt.ID = id
	c.JSON(http.StatusOK, rt)
}

// DELETE /api/routes/:id (admin)
func DeleteRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repo := repositories.CatalogRepo{}
	if err := repo.DeleteRoute(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}

// GET /api/admin/schedules (admin)
func GetSchedules(c *gin.Context) {
	repo := repositories.CatalogRepo{}
	schedules, err := repo.ListSchedules()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// POST /api/admin/schedules (admin)
func CreateSchedule(c *gin.Context) {
	var s models.Schedule
	if !BindJSONOrError(c, &s) {
		return
	}
	if s.RouteID <= 0 || s.BusID <= 0 {
		RespondError(c, http.StatusBadRequest, "route_id and bus_id are required", nil)
		return
	}
	if !s.ArrivalTime.After(s.DepartureTime) {
		RespondError(c, http.StatusBadRequest, "arrival_time must be after departure_time", nil)
		return
	}
	if s.Status == "" {
		s.Status = models.ScheduleScheduled
	}

	repo := repositories.CatalogRepo{}
	id, err := repo.CreateSchedule(s)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	s.ID = id
	c.JSON(http.StatusCreated, s)
}

type scheduleStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/schedules/:id/status (admin)
func UpdateScheduleStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req scheduleStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	switch req.Status {
	case models.ScheduleScheduled, models.ScheduleDeparted, models.ScheduleArrived, models.ScheduleCancelled:
	default:
		RespondError(c, http.StatusBadRequest, "unknown schedule status", nil)
		return
	}

	repo := repositories.CatalogRepo{}
	if err := repo.UpdateScheduleStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule status updated"})
}

// DELETE /api/admin/schedules/:id (admin)
func DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repo := repositories.CatalogRepo{}
	if err := repo.DeleteSchedule(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}
