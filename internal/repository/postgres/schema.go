package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the idempotent DDL applied at startup. agenda and tags are
// flat text[] columns: normalized records never hold nested JSON or
// comma-joined blobs. The unique index on slug is the final arbiter for
// slug collisions, including races between concurrent title writes.
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS events (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL,
	overview    TEXT NOT NULL,
	image       TEXT NOT NULL,
	venue       TEXT NOT NULL,
	location    TEXT NOT NULL,
	date        TEXT NOT NULL,
	time        TEXT NOT NULL,
	mode        TEXT NOT NULL,
	audience    TEXT NOT NULL,
	agenda      TEXT[] NOT NULL,
	organizer   TEXT NOT NULL,
	tags        TEXT[] NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bookings (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	event_id   UUID NOT NULL REFERENCES events(id),
	email      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bookings_event_email ON bookings (event_id, email);
CREATE INDEX IF NOT EXISTS idx_events_tags ON events USING GIN (tags);
`

// Migrate applies the schema. Safe to run on every boot.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
