package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Timicreates/dev-events/internal/domain"
	"github.com/Timicreates/dev-events/internal/normalize"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// fieldSet names the fields touched by a create or update. Pipeline steps
// only act on fields present in the set.
type fieldSet map[string]bool

func (f fieldSet) has(name string) bool { return f[name] }

// allFields marks every field changed, as on create.
var allFields = fieldSet{
	"title": true, "description": true, "overview": true, "image": true,
	"venue": true, "location": true, "date": true, "time": true,
	"mode": true, "audience": true, "organizer": true,
	"agenda": true, "tags": true,
}

// precommitStep normalizes or validates one aspect of an event before it
// is committed. A non-nil error blocks the write.
type precommitStep func(e *domain.Event, changed fieldSet) error

// precommit is the ordered pre-commit pipeline. Every step runs on every
// create/update; steps decide internally whether their field changed.
var precommit = []precommitStep{
	slugStep,
	dateStep,
	timeStep,
	modeStep,
	agendaStep,
	tagsStep,
	requiredStep,
}

func runPrecommit(e *domain.Event, changed fieldSet) error {
	for _, step := range precommit {
		if err := step(e, changed); err != nil {
			return err
		}
	}
	return nil
}

func slugStep(e *domain.Event, changed fieldSet) error {
	if !changed.has("title") {
		return nil
	}
	slug := normalize.Slug(e.Title)
	if slug == "" {
		return &domain.ValidationError{Field: "title", Message: "title produces empty slug"}
	}
	e.Slug = slug
	return nil
}

func dateStep(e *domain.Event, changed fieldSet) error {
	if !changed.has("date") {
		return nil
	}
	d, err := normalize.Date(e.Date)
	if err != nil {
		return err
	}
	e.Date = d
	return nil
}

func timeStep(e *domain.Event, changed fieldSet) error {
	if !changed.has("time") {
		return nil
	}
	t, err := normalize.Time(e.Time)
	if err != nil {
		return err
	}
	e.Time = t
	return nil
}

func modeStep(e *domain.Event, changed fieldSet) error {
	if !changed.has("mode") {
		return nil
	}
	if !domain.ValidMode(e.Mode) {
		return &domain.ValidationError{Field: "mode", Message: "mode must be online, offline, or hybrid"}
	}
	return nil
}

func agendaStep(e *domain.Event, changed fieldSet) error {
	if !changed.has("agenda") {
		return nil
	}
	return requireItems("agenda", e.Agenda)
}

func tagsStep(e *domain.Event, changed fieldSet) error {
	if !changed.has("tags") {
		return nil
	}
	return requireItems("tags", e.Tags)
}

func requireItems(field string, items []string) error {
	if len(items) == 0 {
		return &domain.ValidationError{Field: field, Message: field + " must contain at least one item"}
	}
	for _, item := range items {
		if item == "" {
			return &domain.ValidationError{Field: field, Message: field + " must not contain empty items"}
		}
	}
	return nil
}

// requiredStep enforces the required descriptive fields, but only those
// touched by this write so unrelated edits cannot trip on legacy rows.
func requiredStep(e *domain.Event, changed fieldSet) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
	for _, f := range required {
		if changed.has(f.name) && f.value == "" {
			return &domain.ValidationError{Field: f.name, Message: f.name + " is required"}
		}
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := runPrecommit(event, allFields); err != nil {
		return err
	}
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) UpdateEvent(ctx context.Context, slug string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	changed := applyUpdate(event, upd)
	if len(changed) == 0 {
		return event, nil
	}
	if err := runPrecommit(event, changed); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// applyUpdate copies the set fields of upd onto event and returns the set
// of field names that changed.
func applyUpdate(event *domain.Event, upd domain.EventUpdate) fieldSet {
	changed := fieldSet{}
	set := func(name string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			changed[name] = true
		}
	}
	set("title", &event.Title, upd.Title)
	set("description", &event.Description, upd.Description)
	set("overview", &event.Overview, upd.Overview)
	set("image", &event.Image, upd.Image)
	set("venue", &event.Venue, upd.Venue)
	set("location", &event.Location, upd.Location)
	set("date", &event.Date, upd.Date)
	set("time", &event.Time, upd.Time)
	set("mode", &event.Mode, upd.Mode)
	set("audience", &event.Audience, upd.Audience)
	set("organizer", &event.Organizer, upd.Organizer)
	if upd.Agenda != nil {
		event.Agenda = normalize.Flatten(upd.Agenda)
		changed["agenda"] = true
	}
	if upd.Tags != nil {
		event.Tags = normalize.Flatten(upd.Tags)
		changed["tags"] = true
	}
	return changed
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// FindSimilarBySlug is best-effort enrichment: any failure, including an
// unknown slug, degrades to an empty result. Agenda and tags are
// re-normalized on the in-memory copy only, because rows written before
// strict normalization may still hold JSON blobs or comma-joined text.
func (s *eventService) FindSimilarBySlug(ctx context.Context, slug string) []*domain.Event {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return []*domain.Event{}
	}

	event.Agenda = normalize.Flatten(event.Agenda)
	event.Tags = normalize.Flatten(event.Tags)
	if len(event.Tags) == 0 {
		return []*domain.Event{}
	}

	similar, err := s.eventRepo.ListByTagOverlap(ctx, event.ID, event.Tags)
	if err != nil || similar == nil {
		return []*domain.Event{}
	}
	return similar
}
