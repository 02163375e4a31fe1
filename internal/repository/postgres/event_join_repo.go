package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookingcalendar/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// joinEventRepository stores artists and services in event_artists / event_services, one row
// per list position. Membership filters run in SQL and artist ids are foreign keys.
type joinEventRepository struct {
	DB *sql.DB
}

// NewJoinEventRepository returns the join-table domain.EventRepository.
func NewJoinEventRepository(db *sql.DB) domain.EventRepository {
	return &joinEventRepository{DB: db}
}

func (r *joinEventRepository) Upsert(ctx context.Context, e *domain.Event) error {
	if e.ArtistIDs.IsRaw() || e.Services.IsRaw() {
		return fmt.Errorf("%w: undecodable list cannot be stored in join tables", domain.ErrInvalidInput)
	}
	status := statusOrDefault(e.Status)
	// TIMESTAMPTZ stores microseconds.
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := e.ID

	err := withConn(ctx, r.DB, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if id == 0 {
			query := `
				INSERT INTO events (title, date, format_id, promoter_id, tour_manager_id, notes, status, last_modified)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id
			`
			if err := tx.QueryRowContext(ctx, query,
				e.Title, e.Date, e.FormatID, e.PromoterID, e.TourManagerID, e.Notes, status, now,
			).Scan(&id); err != nil {
				return err
			}
		} else {
			query := `
				UPDATE events
				SET title = $1, date = $2, format_id = $3, promoter_id = $4, tour_manager_id = $5,
					notes = $6, status = $7, last_modified = $8
				WHERE id = $9
			`
			result, err := tx.ExecContext(ctx, query,
				e.Title, e.Date, e.FormatID, e.PromoterID, e.TourManagerID, e.Notes, status, now, id,
			)
			if err != nil {
				return err
			}
			if n, _ := result.RowsAffected(); n == 0 {
				// Replacing a missing row is a no-op, as with the embedded strategy.
				return nil
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM event_artists WHERE event_id = $1`, id); err != nil {
			return err
		}
		for pos, artistID := range e.ArtistIDs.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO event_artists (event_id, position, artist_id) VALUES ($1, $2, $3)`,
				id, pos, artistID); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_services WHERE event_id = $1`, id); err != nil {
			return err
		}
		for pos, value := range e.Services.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO event_services (event_id, position, value) VALUES ($1, $2, $3)`,
				id, pos, string(value)); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return translateError(err)
	}
	e.ID = id
	e.Status = status
	e.LastModified = now
	return nil
}

func (r *joinEventRepository) Get(ctx context.Context, id int64) (*domain.Event, bool, error) {
	query, args, err := psql.Select(eventColumns...).From("events").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, false, err
	}
	var e *domain.Event
	err = withConn(ctx, r.DB, func(conn *sql.Conn) error {
		var scanErr error
		e, scanErr = scanEvent(conn.QueryRowContext(ctx, query, args...))
		if scanErr != nil {
			return scanErr
		}
		return hydrateLists(ctx, conn, []*domain.Event{e})
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}

func (r *joinEventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	q := selectEventsInRange(filter)
	if len(filter.ArtistIDs) > 0 {
		q = q.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM event_artists ea WHERE ea.event_id = events.id AND ea.artist_id = ANY(?))",
			pq.Array(filter.ArtistIDs),
		))
	}
	if len(filter.FormatIDs) > 0 {
		q = q.Where(sq.Expr("format_id = ANY(?)", pq.Array(filter.FormatIDs)))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0)
	err = withConn(ctx, r.DB, func(conn *sql.Conn) error {
		if err := scanEventRows(ctx, conn, query, args, &events); err != nil {
			return err
		}
		return hydrateLists(ctx, conn, events)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *joinEventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	return withConn(ctx, r.DB, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, id)
		return err
	})
}

// hydrateLists replaces the embedded columns of events with their join-table rows.
func hydrateLists(ctx context.Context, conn *sql.Conn, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Event, len(events))
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		e.ArtistIDs = domain.EmbeddedList[int64]{}
		e.Services = domain.EmbeddedList[json.RawMessage]{}
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	if err := loadEventArtists(ctx, conn, ids, byID); err != nil {
		return err
	}
	return loadEventServices(ctx, conn, ids, byID)
}

func loadEventArtists(ctx context.Context, conn *sql.Conn, ids []int64, byID map[int64]*domain.Event) error {
	rows, err := conn.QueryContext(ctx,
		`SELECT event_id, artist_id FROM event_artists WHERE event_id = ANY($1) ORDER BY event_id, position`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var eventID, artistID int64
		if err := rows.Scan(&eventID, &artistID); err != nil {
			return err
		}
		if e := byID[eventID]; e != nil {
			e.ArtistIDs.Items = append(e.ArtistIDs.Items, artistID)
		}
	}
	return rows.Err()
}

func loadEventServices(ctx context.Context, conn *sql.Conn, ids []int64, byID map[int64]*domain.Event) error {
	rows, err := conn.QueryContext(ctx,
		`SELECT event_id, value FROM event_services WHERE event_id = ANY($1) ORDER BY event_id, position`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var eventID int64
		var value string
		if err := rows.Scan(&eventID, &value); err != nil {
			return err
		}
		if e := byID[eventID]; e != nil {
			e.Services.Items = append(e.Services.Items, json.RawMessage(value))
		}
	}
	return rows.Err()
}

func scanEventRows(ctx context.Context, conn *sql.Conn, query string, args []any, events *[]*domain.Event) error {
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
		*events = append(*events, e)
	}
	return rows.Err()
}
