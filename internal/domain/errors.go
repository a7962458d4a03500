package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed or missing field on a record
// submitted for commit. Field names the offending field so callers can
// render a field-specific message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReferentialIntegrityError reports a booking whose referenced event does
// not exist. The dependent write must be aborted.
type ReferentialIntegrityError struct {
	EventID string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("event %s does not exist, cannot create booking", e.EventID)
}

// UniquenessConflictError reports a slug collision surfaced by storage.
// Two titles normalizing to the same slug is a hard error, never silently
// resolved.
type UniquenessConflictError struct {
	Slug string
}

func (e *UniquenessConflictError) Error() string {
	return fmt.Sprintf("slug already exists: %s", e.Slug)
}
