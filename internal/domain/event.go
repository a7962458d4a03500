package domain

import (
	"context"
	"time"
)

// Event modes. Mode must be exactly one of these values.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// ValidMode reports whether mode is one of the enumerated event modes.
func ValidMode(mode string) bool {
	return mode == ModeOnline || mode == ModeOffline || mode == ModeHybrid
}

// Event represents a single listed event. Slug is derived from Title and
// unique across all events; Date and Time are always stored in canonical
// form ("YYYY-MM-DD" and 24-hour "HH:MM").
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventUpdate describes a field-level update. Nil pointers (and nil
// slices) mean "unchanged"; only changed fields go through normalization,
// so a stored slug is stable across unrelated edits.
type EventUpdate struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Organizer   *string
	Agenda      []string
	Tags        []string
}

// EventRepository defines the storage interface for events. Create and
// Update must surface slug uniqueness violations as
// *UniquenessConflictError.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// ListByTagOverlap returns events whose tag set shares at least one
	// element with tags, excluding the event identified by excludeID.
	ListByTagOverlap(ctx context.Context, excludeID string, tags []string) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// EventService defines the event write path and read queries.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, slug string, upd EventUpdate) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	// FindSimilarBySlug returns events sharing at least one tag with the
	// named event. It never fails: unknown slugs and lookup errors yield
	// an empty slice.
	FindSimilarBySlug(ctx context.Context, slug string) []*Event
}
