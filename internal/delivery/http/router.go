package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(events *EventController, bookings *BookingController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", events.CreateEvent)
	mux.HandleFunc("GET /events", events.ListEvents)
	mux.HandleFunc("GET /events/{slug}", events.GetEventBySlug)
	mux.HandleFunc("PATCH /events/{slug}", events.UpdateEvent)
	mux.HandleFunc("GET /events/{slug}/similar", events.FindSimilarEvents)

	// Bookings
	mux.HandleFunc("POST /bookings", bookings.CreateBooking)
	mux.HandleFunc("GET /events/{slug}/bookings", bookings.ListEventBookings)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
