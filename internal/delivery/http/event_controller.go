package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Timicreates/dev-events/internal/adapters/blob"
	"github.com/Timicreates/dev-events/internal/domain"
	"github.com/Timicreates/dev-events/internal/normalize"
)

// maxEventForm bounds the multipart form held in memory on event creation.
const maxEventForm = blob.MaxImageSize + 1<<20

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Images  domain.ImageStore
}

func NewEventController(logger *slog.Logger, svc domain.EventService, images domain.ImageStore) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Images:  images,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event from a multipart form. tags and agenda accept JSON-encoded arrays or comma-separated text; date and time accept free-form values and are stored normalized. The image file is uploaded to blob storage and its public URL stored on the event.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Event title (slug is derived from it)"
// @Param description formData string true "Description"
// @Param overview formData string true "Overview"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Event date (free-form, stored as YYYY-MM-DD)"
// @Param time formData string true "Event time (free-form, stored as 24h HH:MM)"
// @Param mode formData string true "online, offline, or hybrid"
// @Param audience formData string true "Audience"
// @Param organizer formData string true "Organizer"
// @Param tags formData string true "JSON array or comma-separated tags"
// @Param agenda formData string true "JSON array or comma-separated agenda items"
// @Param image formData file true "Event image"
// @Success 201 {object} http.APIResponse "data contains the created event"
// @Failure 400 {object} http.APIResponse "error.code: bad_request"
// @Failure 409 {object} http.APIResponse "error.code: conflict (slug already exists)"
// @Failure 500 {object} http.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxEventForm); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if c.Images == nil {
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "image storage is not configured")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !blob.ValidImageType(contentType) {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "unsupported image type: "+contentType)
		return
	}
	if header.Size > blob.MaxImageSize {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "image too large")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "unable to read image file")
		return
	}

	imageURL, err := c.Images.Upload(r.Context(), header.Filename, contentType, data)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "image upload failed", "path", r.URL.Path, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "image upload failed")
		return
	}

	event := &domain.Event{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Image:       imageURL,
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Organizer:   r.FormValue("organizer"),
		Agenda:      normalize.StringList(r.FormValue("agenda")),
		Tags:        normalize.StringList(r.FormValue("tags")),
	}

	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.logFailure(r, err)
		WriteDomainError(w, err)
		return
	}
	WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List all events
// @Description Returns all events sorted by creation time, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} http.APIResponse "data contains the event list"
// @Failure 500 {object} http.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.logFailure(r, err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}
	WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} http.APIResponse "data contains the event"
// @Failure 404 {object} http.APIResponse "error.code: not_found"
// @Failure 500 {object} http.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.logFailure(r, err)
		}
		WriteDomainError(w, err)
		return
	}
	WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for PATCH /events/{slug}.
// Absent fields are left unchanged; only changed fields are renormalized.
type UpdateEventRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Organizer   *string  `json:"organizer"`
	Agenda      []string `json:"agenda"`
	Tags        []string `json:"tags"`
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies a field-level update. A changed title recomputes the slug; changed date/time are renormalized; unchanged fields are untouched.
// @Tags events
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} http.APIResponse "data contains the updated event"
// @Failure 400 {object} http.APIResponse "error.code: bad_request"
// @Failure 404 {object} http.APIResponse "error.code: not_found"
// @Failure 409 {object} http.APIResponse "error.code: conflict (slug already exists)"
// @Failure 500 {object} http.APIResponse "error.code: internal_error"
// @Router /events/{slug} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Venue:       req.Venue,
		Location:    req.Location,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        req.Mode,
		Audience:    req.Audience,
		Organizer:   req.Organizer,
		Agenda:      req.Agenda,
		Tags:        req.Tags,
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("slug"), upd)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.logFailure(r, err)
		}
		WriteDomainError(w, err)
		return
	}
	WriteJSONSuccess(w, http.StatusOK, event)
}

// FindSimilarEvents godoc
// @Summary List events similar to an event
// @Description Returns events sharing at least one tag with the named event. Best-effort: an unknown slug or any lookup failure yields an empty list, never an error.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} http.APIResponse "data contains the similar events (possibly empty)"
// @Router /events/{slug}/similar [get]
func (c *EventController) FindSimilarEvents(w http.ResponseWriter, r *http.Request) {
	events := c.Service.FindSimilarBySlug(r.Context(), r.PathValue("slug"))
	WriteJSONSuccess(w, http.StatusOK, events)
}

func (c *EventController) logFailure(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
