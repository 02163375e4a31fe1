package postgres

import (
	"database/sql"

	"bookingcalendar/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var eventColumns = []string{
	"id", "title", "date", "format_id", "artist_ids", "promoter_id",
	"tour_manager_id", "services_json", "notes", "status", "last_modified",
}

// selectEventsInRange builds the inclusive date range predicate. The date column holds ISO
// strings, so the comparison is lexicographic.
func selectEventsInRange(filter domain.EventFilter) sq.SelectBuilder {
	q := psql.Select(eventColumns...).From("events")
	if filter.DateFrom != "" {
		q = q.Where(sq.GtOrEq{"date": filter.DateFrom})
	}
	if filter.DateTo != "" {
		q = q.Where(sq.LtOrEq{"date": filter.DateTo})
	}
	return q
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent reads one row in eventColumns order, decoding the embedded lists leniently.
func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var formatID, promoterID, tourManagerID sql.NullInt64
	var artistIDs, services, notes, status sql.NullString
	var lastModified sql.NullTime
	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &formatID, &artistIDs, &promoterID,
		&tourManagerID, &services, &notes, &status, &lastModified,
	)
	if err != nil {
		return nil, err
	}
	e.FormatID = nullInt64Ptr(formatID)
	e.PromoterID = nullInt64Ptr(promoterID)
	e.TourManagerID = nullInt64Ptr(tourManagerID)
	e.ArtistIDs = decodeList(artistIDs, parseIDs)
	e.Services = decodeList(services, parseRaw)
	e.Notes = nullStringPtr(notes)
	e.Status = domain.StatusPlanned
	if status.Valid {
		e.Status = domain.EventStatus(status.String)
	}
	if lastModified.Valid {
		e.LastModified = lastModified.Time.UTC()
	}
	return e, nil
}

func statusOrDefault(s domain.EventStatus) domain.EventStatus {
	if s == "" {
		return domain.StatusPlanned
	}
	return s
}
