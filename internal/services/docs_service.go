package services

import (
	"bytes"
	"fmt"
	"strings"

	"transport/internal/domain"
	"transport/internal/domain/models"
	"transport/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable ticket for a booking.
type DocsService struct {
	Bookings  BookingService
	RequestID string
	// Loader overrides booking lookup, mainly for tests.
	Loader func(domain.RequestContext, int64) (models.BookingDetail, error)
}

// GenerateTicketPDF renders one PDF covering every passenger of the booking.
// Access follows the booking detail rules: owner or admin.
func (s DocsService) GenerateTicketPDF(actor domain.RequestContext, bookingID int64) ([]byte, string, error) {
	load := s.Loader
	if load == nil {
		load = s.Bookings.GetBooking
	}
	d, err := load(actor, bookingID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildTicketPDF(d)
}

func buildTicketPDF(d models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref : %s", d.BookingRef),
		fmt.Sprintf("Route       : %s -> %s", d.Origin, d.Destination),
		fmt.Sprintf("Departure   : %s", utils.FormatDateTime(d.DepartureTime)),
		fmt.Sprintf("Arrival     : %s", utils.FormatDateTime(d.ArrivalTime)),
		fmt.Sprintf("Bus         : %s", d.BusNumber),
		fmt.Sprintf("Driver      : %s", orDash(d.DriverName)),
		fmt.Sprintf("Status      : %s / payment %s", d.Status, d.PaymentStatus),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	var subtotal float64
	for i, t := range d.Tickets {
		subtotal += t.Fare
		pdf.MultiCell(0, 6, fmt.Sprintf("%d) %s  seat %s  age %d  fare %s  (%s)",
			i+1, t.PassengerName, t.SeatNumber, t.PassengerAge, utils.FormatMoney(t.Fare), t.TicketNumber), "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Subtotal    : "+utils.FormatMoney(subtotal))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Service tax : "+utils.FormatMoney(utils.RoundMoney(d.TotalAmount-subtotal)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total       : "+utils.FormatMoney(d.TotalAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please arrive at the terminal 30 minutes before departure and present this ticket when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TICKET_%s.pdf", strings.ReplaceAll(d.BookingRef, "/", "_"))
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
