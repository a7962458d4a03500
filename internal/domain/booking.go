package domain

import (
	"context"
	"time"
)

// Booking represents one attendee's registration for an event. Bookings
// are immutable after creation except for storage timestamp bookkeeping.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a Booking for the given event and email. ID and
// timestamps are set by the repository on create.
func NewBooking(eventID, email string) *Booking {
	return &Booking{
		EventID: eventID,
		Email:   email,
	}
}

// BookingRepository defines the storage interface for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
}

// BookingService defines the booking write path. CreateBooking must
// reject bookings whose event reference does not resolve to an existing
// event.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	ListBookingsByEventSlug(ctx context.Context, slug string) ([]*Booking, error)
}
