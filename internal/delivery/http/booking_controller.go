package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Timicreates/dev-events/internal/domain"
)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// Validate implements Validator.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if c.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// CreateBooking godoc
// @Summary Book a spot at an event
// @Description Creates a booking. The referenced event must exist; a dangling reference is rejected and nothing is persisted. The email is trimmed and lower-cased before storage.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking data"
// @Success 201 {object} http.APIResponse "data contains the created booking"
// @Failure 400 {object} http.APIResponse "error.code: bad_request"
// @Failure 404 {object} http.APIResponse "error.code: not_found (referenced event does not exist)"
// @Failure 500 {object} http.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), req.EventID, req.Email)
	if err != nil {
		var rerr *domain.ReferentialIntegrityError
		var verr *domain.ValidationError
		if !errors.As(err, &rerr) && !errors.As(err, &verr) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		WriteDomainError(w, err)
		return
	}
	WriteJSONSuccess(w, http.StatusCreated, booking)
}

// ListEventBookings godoc
// @Summary List bookings for an event
// @Tags bookings
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} http.APIResponse "data contains the bookings"
// @Failure 404 {object} http.APIResponse "error.code: not_found"
// @Failure 500 {object} http.APIResponse "error.code: internal_error"
// @Router /events/{slug}/bookings [get]
func (c *BookingController) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := c.Service.ListBookingsByEventSlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		WriteDomainError(w, err)
		return
	}
	WriteJSONSuccess(w, http.StatusOK, bookings)
}
