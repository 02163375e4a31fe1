package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookingcalendar/internal/domain"
)

const (
	gridWeeks   = 6
	daysPerWeek = 7
)

type calendarService struct {
	eventRepo      domain.EventRepository
	formatRepo     domain.FormatRepository
	exporter       domain.CalendarExporter
	weekStart      time.Weekday
	contextTimeout time.Duration
}

// NewCalendarService builds month, agenda, schedule and iCalendar views. Month grids start on weekStart.
func NewCalendarService(
	eventRepo domain.EventRepository,
	formatRepo domain.FormatRepository,
	exporter domain.CalendarExporter,
	weekStart time.Weekday,
	timeout time.Duration,
) domain.CalendarService {
	return &calendarService{
		eventRepo:      eventRepo,
		formatRepo:     formatRepo,
		exporter:       exporter,
		weekStart:      weekStart,
		contextTimeout: timeout,
	}
}

// MonthGrid returns the 42 dates of the six-week grid that contains month, beginning on weekStart.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) - int(weekStart) + daysPerWeek) % daysPerWeek
	start := first.AddDate(0, 0, -lead)
	days := make([]time.Time, gridWeeks*daysPerWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Month replaces any date bounds in filter with the span of the grid; membership filters apply.
func (s *calendarService) Month(ctx context.Context, month time.Time, filter domain.EventFilter) (*domain.MonthView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	grid := MonthGrid(month.Year(), month.Month(), s.weekStart)
	filter.DateFrom = grid[0].Format(domain.DateLayout)
	filter.DateTo = grid[len(grid)-1].Format(domain.DateLayout)
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	domain.SortEventsByDate(events)

	byDate := make(map[string][]*domain.Event)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	view := &domain.MonthView{
		Month:     fmt.Sprintf("%04d-%02d", month.Year(), int(month.Month())),
		WeekStart: strings.ToLower(s.weekStart.String()),
		Weeks:     make([][]domain.CalendarDay, 0, gridWeeks),
	}
	for w := 0; w < gridWeeks; w++ {
		week := make([]domain.CalendarDay, daysPerWeek)
		for d := range week {
			day := grid[w*daysPerWeek+d]
			date := day.Format(domain.DateLayout)
			dayEvents := byDate[date]
			if dayEvents == nil {
				dayEvents = []*domain.Event{}
			}
			week[d] = domain.CalendarDay{
				Date:    date,
				InMonth: day.Month() == month.Month(),
				Events:  dayEvents,
			}
		}
		view.Weeks = append(view.Weeks, week)
	}
	return view, nil
}

func (s *calendarService) Agenda(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	domain.SortEventsByDate(events)
	return events, nil
}

// ArtistSchedule lists the artist's events from from through ArtistScheduleDays later.
func (s *calendarService) ArtistSchedule(ctx context.Context, artistID int64, from time.Time) ([]*domain.Event, error) {
	return s.Agenda(ctx, horizon(from, domain.ArtistScheduleDays, domain.EventFilter{ArtistIDs: []int64{artistID}}))
}

// FormatSchedule lists the format's events from from through FormatScheduleDays later.
func (s *calendarService) FormatSchedule(ctx context.Context, formatID int64, from time.Time) ([]*domain.Event, error) {
	return s.Agenda(ctx, horizon(from, domain.FormatScheduleDays, domain.EventFilter{FormatIDs: []int64{formatID}}))
}

func horizon(from time.Time, days int, filter domain.EventFilter) domain.EventFilter {
	filter.DateFrom = from.Format(domain.DateLayout)
	filter.DateTo = from.AddDate(0, 0, days).Format(domain.DateLayout)
	return filter
}

func (s *calendarService) ICS(ctx context.Context, filter domain.EventFilter) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("failed to list events: %w", err)
	}
	domain.SortEventsByDate(events)
	formats, err := s.formatRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list formats: %w", err)
	}
	names := make(map[int64]string, len(formats))
	for _, f := range formats {
		names[f.ID] = f.Name
	}
	out, err := s.exporter.Export(events, names)
	if err != nil {
		return "", fmt.Errorf("failed to export calendar: %w", err)
	}
	return out, nil
}
