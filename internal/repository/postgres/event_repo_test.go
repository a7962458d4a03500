package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Timicreates/dev-events/internal/domain"
)

var eventCols = []string{
	"id", "title", "slug", "description", "overview", "image", "venue",
	"location", "date", "time", "mode", "audience", "agenda", "organizer",
	"tags", "created_at", "updated_at",
}

func eventRow(id, slug string, created time.Time) []driver.Value {
	return []driver.Value{
		id, "DevFest 2024", slug, "desc", "overview", "https://cdn/x.png",
		"Hall A", "Lagos", "2024-03-05", "14:30", "offline", "Developers",
		"{keynote,workshops}", "GDG", "{go,cloud}", created, created,
	}
}

func addEventRow(rows *sqlmock.Rows, vals []driver.Value) *sqlmock.Rows {
	return rows.AddRow(vals...)
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mock     func(mock sqlmock.Sqlmock)
		wantErr  bool
		conflict bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs(
						"DevFest 2024", "devfest-2024", "desc", "overview",
						"https://cdn/x.png", "Hall A", "Lagos", "2024-03-05",
						"14:30", "offline", "Developers",
						pq.Array([]string{"keynote"}), "GDG",
						pq.Array([]string{"go", "cloud"}),
					).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
						AddRow("ev-uuid-1", created, created))
			},
		},
		{
			name: "slug collision maps to uniqueness conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "events_slug_key"})
			},
			wantErr:  true,
			conflict: true,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			event := &domain.Event{
				Title: "DevFest 2024", Slug: "devfest-2024",
				Description: "desc", Overview: "overview",
				Image: "https://cdn/x.png", Venue: "Hall A", Location: "Lagos",
				Date: "2024-03-05", Time: "14:30", Mode: "offline",
				Audience: "Developers", Agenda: []string{"keynote"},
				Organizer: "GDG", Tags: []string{"go", "cloud"},
			}
			err = repo.Create(ctx, event)
			if tt.wantErr {
				require.Error(t, err)
				if tt.conflict {
					var cerr *domain.UniquenessConflictError
					require.ErrorAs(t, err, &cerr)
					require.Equal(t, "devfest-2024", cerr.Slug)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, "ev-uuid-1", event.ID)
			require.Equal(t, created, event.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := addEventRow(sqlmock.NewRows(eventCols), eventRow("ev-uuid-1", "devfest-2024", created))
		mock.ExpectQuery(`SELECT (.+) FROM events WHERE slug = \$1`).
			WithArgs("devfest-2024").
			WillReturnRows(rows)

		repo := NewEventRepository(db)
		event, err := repo.GetBySlug(ctx, "devfest-2024")
		require.NoError(t, err)
		require.Equal(t, "ev-uuid-1", event.ID)
		require.Equal(t, []string{"go", "cloud"}, event.Tags)
		require.Equal(t, []string{"keynote", "workshops"}, event.Agenda)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events WHERE slug = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetBySlug(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(eventCols)
	rows = addEventRow(rows, eventRow("ev-2", "gophercon", newer))
	rows = addEventRow(rows, eventRow("ev-1", "devfest-2024", older))
	mock.ExpectQuery(`SELECT (.+) FROM events ORDER BY created_at DESC`).
		WillReturnRows(rows)

	repo := NewEventRepository(db)
	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "ev-2", events[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListByTagOverlap(t *testing.T) {
	ctx := context.Background()

	t.Run("matches and excludes source event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		rows := addEventRow(sqlmock.NewRows(eventCols), eventRow("ev-2", "gophercon", created))
		mock.ExpectQuery(`WHERE id <> \$1 AND tags && \$2`).
			WithArgs("ev-1", pq.Array([]string{"go", "cloud"})).
			WillReturnRows(rows)

		repo := NewEventRepository(db)
		events, err := repo.ListByTagOverlap(ctx, "ev-1", []string{"go", "cloud"})
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, "ev-2", events[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no overlap yields empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE id <> \$1 AND tags && \$2`).
			WillReturnRows(sqlmock.NewRows(eventCols))

		repo := NewEventRepository(db)
		events, err := repo.ListByTagOverlap(ctx, "ev-1", []string{"niche"})
		require.NoError(t, err)
		require.NotNil(t, events)
		require.Empty(t, events)
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success refreshes updated_at", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		updated := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`UPDATE events`).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

		repo := NewEventRepository(db)
		event := &domain.Event{ID: "ev-1", Title: "DevFest 2024", Slug: "devfest-2024",
			Agenda: []string{"keynote"}, Tags: []string{"go"}}
		err = repo.Update(ctx, event)
		require.NoError(t, err)
		require.Equal(t, updated, event.UpdatedAt)
	})

	t.Run("slug collision maps to uniqueness conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewEventRepository(db)
		event := &domain.Event{ID: "ev-1", Slug: "taken-slug",
			Agenda: []string{"a"}, Tags: []string{"t"}}
		err = repo.Update(ctx, event)
		var cerr *domain.UniquenessConflictError
		require.ErrorAs(t, err, &cerr)
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events`).WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		err = repo.Update(ctx, &domain.Event{ID: "gone", Agenda: []string{"a"}, Tags: []string{"t"}})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_ExistsByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		id     string
		exists bool
	}{
		{name: "exists", id: "ev-1", exists: true},
		{name: "does not exist", id: "ev-404", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM events WHERE id = \$1\)`).
				WithArgs(tt.id).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			repo := NewEventRepository(db)
			got, err := repo.ExistsByID(ctx, tt.id)
			require.NoError(t, err)
			require.Equal(t, tt.exists, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
