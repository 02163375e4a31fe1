package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookingcalendar/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService returns the caller-facing event API over repo. Every call is bounded by timeout.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// Upsert inserts when e.ID is zero and fully replaces row e.ID otherwise. Fields the caller
// leaves empty are written empty.
func (s *eventService) Upsert(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if e.Status == "" {
		e.Status = domain.StatusPlanned
	}
	if err := s.eventRepo.Upsert(ctx, e); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

func (s *eventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, found, err := s.eventRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// List returns events in store order; use domain.SortEventsByDate for chronological output.
func (s *eventService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
