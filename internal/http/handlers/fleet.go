package handlers

import (
	"net/http"
	"strings"

	"transport/internal/domain/models"
	"transport/internal/http/middleware"
	"transport/internal/repositories"
	"transport/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/buses
func GetBuses(c *gin.Context) {
	repo := repositories.FleetRepo{}
	buses, err := repo.ListBuses()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}

// GET /api/admin/buses/:id
func GetBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repo := repositories.FleetRepo{}
	bus, err := repo.GetBus(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// POST /api/admin/buses
// Registering a bus also provisions its seat rows.
func RegisterBus(c *gin.Context) {
	var bus models.Bus
	if !BindJSONOrError(c, &bus) {
		return
	}

	svc := services.FleetService{RequestID: middleware.GetRequestID(c)}
	id, err := svc.RegisterBus(bus)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	bus.ID = id
	c.JSON(http.StatusCreated, bus)
}

// PUT /api/admin/buses/:id
func UpdateBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var bus models.Bus
	if !BindJSONOrError(c, &bus) {
		return
	}
	if strings.TrimSpace(bus.BusNumber) == "" {
		RespondError(c, http.StatusBadRequest, "bus_number is required", nil)
		return
	}

	repo := repositories.FleetRepo{}
	if err := repo.UpdateBus(id, bus); err != nil {
		RespondDomainError(c, err)
		return
	}
	bus.ID = id
	c.JSON(http.StatusOK, bus)
}

// DELETE /api/admin/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repo := repositories.FleetRepo{}
	if err := repo.DeleteBus(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deleted"})
}

// GET /api/admin/drivers
func GetDrivers(c *gin.Context) {
	repo := repositories.FleetRepo{}
	drivers, err := repo.ListDrivers()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// POST /api/admin/drivers
func CreateDriver(c *gin.Context) {
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	d.Name = strings.TrimSpace(d.Name)
	d.LicenseNumber = strings.TrimSpace(d.LicenseNumber)
	if d.Name == "" || d.LicenseNumber == "" {
		RespondError(c, http.StatusBadRequest, "name and license_number are required", nil)
		return
	}

	repo := repositories.FleetRepo{}
	id, err := repo.CreateDriver(d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	d.ID = id
	c.JSON(http.StatusCreated, d)
}

// PUT /api/admin/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}

	repo := repositories.FleetRepo{}
	if err := repo.UpdateDriver(id, d); err != nil {
		RespondDomainError(c, err)
		return
	}
	d.ID = id
	c.JSON(http.StatusOK, d)
}

// DELETE /api/admin/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repo := repositories.FleetRepo{}
	if err := repo.DeleteDriver(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}
