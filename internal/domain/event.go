package domain

import (
	"context"
	"encoding/json"
	"time"
)

// DateLayout is the ISO 8601 calendar date format events are stored and filtered by.
// Lexicographic order of strings in this layout equals chronological order.
const DateLayout = "2006-01-02"

// EventStatus is the booking state of an event.
type EventStatus string

const (
	StatusPlanned   EventStatus = "planned"
	StatusConfirmed EventStatus = "confirmed"
	StatusCancelled EventStatus = "cancelled"
)

// EventStatuses lists the known statuses in display order.
var EventStatuses = []EventStatus{StatusPlanned, StatusConfirmed, StatusCancelled}

// Event is a booking on a calendar date. Artists and services are embedded lists, not joins.
// swagger:model Event
type Event struct {
	ID            int64                         `json:"id,omitempty"`
	Title         string                        `json:"title"`
	Date          string                        `json:"date"`
	FormatID      *int64                        `json:"format_id"`
	ArtistIDs     EmbeddedList[int64]           `json:"artist_ids" swaggertype:"array,integer"`
	PromoterID    *int64                        `json:"promoter_id"`
	TourManagerID *int64                        `json:"tour_manager_id"`
	Services      EmbeddedList[json.RawMessage] `json:"services" swaggertype:"array,object"`
	Notes         *string                       `json:"notes"`
	Status        EventStatus                   `json:"status"`
	LastModified  time.Time                     `json:"last_modified"`
}

// NewEvent returns an unsaved planned event on date. ID and LastModified are assigned by the repository.
func NewEvent(title, date string, artistIDs ...int64) *Event {
	return &Event{
		Title:     title,
		Date:      date,
		ArtistIDs: NewEmbeddedList(artistIDs...),
		Status:    StatusPlanned,
	}
}

// EventRepository stores events. Every call is its own unit of work; there is no cross-call
// isolation, so concurrent upserts of one id are last-write-wins.
type EventRepository interface {
	// Upsert inserts when e.ID is zero, otherwise replaces every mutable field of row e.ID.
	// It assigns e.ID on insert and e.LastModified on every write.
	Upsert(ctx context.Context, e *Event) error
	Get(ctx context.Context, id int64) (event *Event, found bool, err error)
	// List returns events in store scan order.
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	// Delete removes the row; deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}

// EventService is the caller-facing event API.
type EventService interface {
	Upsert(ctx context.Context, e *Event) error
	Get(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Delete(ctx context.Context, id int64) error
}
