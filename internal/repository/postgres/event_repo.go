package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bookingcalendar/internal/domain"
)

// eventRepository keeps artist_ids and services as JSON arrays inside the events row.
type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns the embedded-array domain.EventRepository.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Upsert(ctx context.Context, e *domain.Event) error {
	artistIDs, err := encodeList(e.ArtistIDs)
	if err != nil {
		return err
	}
	services, err := encodeList(e.Services)
	if err != nil {
		return err
	}
	status := statusOrDefault(e.Status)
	// TIMESTAMPTZ stores microseconds.
	now := time.Now().UTC().Truncate(time.Microsecond)

	err = withConn(ctx, r.DB, func(conn *sql.Conn) error {
		if e.ID == 0 {
			query := `
				INSERT INTO events (title, date, format_id, artist_ids, promoter_id, tour_manager_id, services_json, notes, status, last_modified)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				RETURNING id
			`
			return conn.QueryRowContext(ctx, query,
				e.Title, e.Date, e.FormatID, artistIDs, e.PromoterID, e.TourManagerID, services, e.Notes, status, now,
			).Scan(&e.ID)
		}
		query := `
			UPDATE events
			SET title = $1, date = $2, format_id = $3, artist_ids = $4, promoter_id = $5,
				tour_manager_id = $6, services_json = $7, notes = $8, status = $9, last_modified = $10
			WHERE id = $11
		`
		_, err := conn.ExecContext(ctx, query,
			e.Title, e.Date, e.FormatID, artistIDs, e.PromoterID, e.TourManagerID, services, e.Notes, status, now, e.ID,
		)
		return err
	})
	if err != nil {
		return translateError(err)
	}
	e.Status = status
	e.LastModified = now
	return nil
}

func (r *eventRepository) Get(ctx context.Context, id int64) (*domain.Event, bool, error) {
	query, args, err := psql.Select(eventColumns...).From("events").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, false, err
	}
	var e *domain.Event
	err = withConn(ctx, r.DB, func(conn *sql.Conn) error {
		var scanErr error
		e, scanErr = scanEvent(conn.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}

// List fetches the date range in SQL, then applies the artist and format membership filters
// to the decoded rows.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query, args, err := selectEventsInRange(filter).ToSql()
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0)
	err = withConn(ctx, r.DB, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			e, err := scanEvent(rows)
			if err != nil {
				return err
			}
			if !filter.Matches(e) {
				continue
			}
			events = append(events, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	return withConn(ctx, r.DB, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, id)
		return err
	})
}
