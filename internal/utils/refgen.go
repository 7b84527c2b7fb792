package utils

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// Reference prefixes are part of the public booking contract; codes printed
// on tickets keep the historical BK-/TKT- shape.
const (
	bookingRefPrefix   = "BK-"
	ticketNumberPrefix = "TKT-"
)

// NewBookingRef returns a fresh booking reference. Uniqueness is enforced by
// the bookings.booking_ref unique index; callers regenerate on collision.
func NewBookingRef() string {
	return bookingRefPrefix + referenceCode()
}

// NewTicketNumber returns a fresh ticket number, same contract as NewBookingRef.
func NewTicketNumber() string {
	return ticketNumberPrefix + referenceCode()
}

// referenceCode encodes 128 bits of UUID entropy as 26 uppercase base32
// characters, so a collision is astronomically unlikely but still detectable.
func referenceCode() string {
	u := uuid.New()
	return strings.TrimRight(base32.StdEncoding.EncodeToString(u[:]), "=")
}
