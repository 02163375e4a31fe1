package domain

import (
	"context"
	"time"
)

// Schedule horizons for the per-artist and per-format views.
const (
	ArtistScheduleDays = 60
	FormatScheduleDays = 365
)

// Agenda window applied when a request names neither bound.
const (
	AgendaLookbackDays  = 30
	AgendaLookaheadDays = 90
)

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date    string   `json:"date"`
	InMonth bool     `json:"in_month"`
	Events  []*Event `json:"events"`
}

// MonthView is a six-week grid covering a month plus its leading and trailing days.
// swagger:model MonthView
type MonthView struct {
	Month     string          `json:"month"`
	WeekStart string          `json:"week_start"`
	Weeks     [][]CalendarDay `json:"weeks"`
}

// CalendarService builds read views over events for the presentation layer.
type CalendarService interface {
	Month(ctx context.Context, month time.Time, filter EventFilter) (*MonthView, error)
	Agenda(ctx context.Context, filter EventFilter) ([]*Event, error)
	ArtistSchedule(ctx context.Context, artistID int64, from time.Time) ([]*Event, error)
	FormatSchedule(ctx context.Context, formatID int64, from time.Time) ([]*Event, error)
	ICS(ctx context.Context, filter EventFilter) (string, error)
}

// CalendarExporter renders events as an iCalendar document. formatNames resolves Event.FormatID
// to a display name; unknown ids are left out.
type CalendarExporter interface {
	Export(events []*Event, formatNames map[int64]string) (string, error)
}
