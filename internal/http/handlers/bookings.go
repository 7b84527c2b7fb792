package handlers

import (
	"net/http"

	"transport/internal/domain/models"
	"transport/internal/http/middleware"
	"transport/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	ScheduleID int64                   `json:"schedule_id"`
	Passengers []models.PassengerInput `json:"passengers"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	id, err := svc.CreateBooking(middleware.CurrentUser(c), req.ScheduleID, req.Passengers)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	detail, err := svc.GetBooking(middleware.CurrentUser(c), id)
	if err != nil {
		// booking committed, readback failed; still report success
		c.JSON(http.StatusCreated, gin.H{"booking_id": id})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": detail})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.CancelBooking(middleware.CurrentUser(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// GET /api/bookings
func GetMyBookings(c *gin.Context) {
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	bookings, err := svc.ListBookings(middleware.CurrentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func GetBookingDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	detail, err := svc.GetBooking(middleware.CurrentUser(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": detail})
}

// GET /api/bookings/:id/ticket
func GetBookingTicketPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateTicketPDF(middleware.CurrentUser(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
