package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Timicreates/dev-events/internal/domain"
)

// emailRegex matches local@domain with a dot in the domain, the same
// shape the booking form enforces client-side.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	mailer         domain.Mailer
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. The mailer is optional;
// when nil no confirmation email is sent.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	mailer domain.Mailer,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		mailer:         mailer,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateBooking validates the attendee email, runs the referential guard
// against the event reference, and commits the booking. A dangling event
// reference aborts the write with *ReferentialIntegrityError; nothing is
// persisted in that case.
func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, &domain.ValidationError{Field: "email", Message: "invalid email address"}
	}
	if eventID == "" {
		return nil, &domain.ValidationError{Field: "event_id", Message: "event_id is required"}
	}

	exists, err := s.eventRepo.ExistsByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event exists: %w", err)
	}
	if !exists {
		return nil, &domain.ReferentialIntegrityError{EventID: eventID}
	}

	booking := domain.NewBooking(eventID, email)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, booking)
	return booking, nil
}

// sendConfirmation emails the attendee. Best-effort: the booking is
// already committed, so a send failure is logged and swallowed.
func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	if s.mailer == nil {
		return
	}
	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation email skipped", "booking_id", booking.ID, "err", err)
		return
	}
	subject := fmt.Sprintf("You're booked: %s", event.Title)
	text := fmt.Sprintf("Your spot for %s on %s at %s is confirmed. Venue: %s, %s.",
		event.Title, event.Date, event.Time, event.Venue, event.Location)
	html := fmt.Sprintf("<p>Your spot for <strong>%s</strong> on %s at %s is confirmed.</p><p>Venue: %s, %s.</p>",
		event.Title, event.Date, event.Time, event.Venue, event.Location)
	if err := s.mailer.Send(booking.Email, subject, html, text); err != nil {
		s.logger.WarnContext(ctx, "confirmation email failed", "booking_id", booking.ID, "err", err)
	}
}

func (s *bookingService) ListBookingsByEventSlug(ctx context.Context, slug string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	bookings, err := s.bookingRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}
