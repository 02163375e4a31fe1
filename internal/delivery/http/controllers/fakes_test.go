package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	h "bookingcalendar/internal/delivery/http/helpers"
	"bookingcalendar/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the response envelope; data is left raw for the caller.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) (json.RawMessage, *h.APIError) {
	t.Helper()
	var env struct {
		Data  json.RawMessage `json:"data"`
		Error *h.APIError     `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env.Data, env.Error
}

type fakeEventService struct {
	events     map[int64]*domain.Event
	listResult []*domain.Event
	err        error
	nextID     int64

	lastUpsert *domain.Event
	lastFilter domain.EventFilter
	lastDelete int64
}

// Upsert records a copy of what the controller sent, then assigns like a store would.
func (f *fakeEventService) Upsert(_ context.Context, e *domain.Event) error {
	sent := *e
	f.lastUpsert = &sent
	if f.err != nil {
		return f.err
	}
	if e.ID == 0 {
		f.nextID++
		e.ID = f.nextID
	}
	if e.Status == "" {
		e.Status = domain.StatusPlanned
	}
	e.LastModified = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	return nil
}

func (f *fakeEventService) Get(_ context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventService) List(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.listResult, nil
}

func (f *fakeEventService) Delete(_ context.Context, id int64) error {
	f.lastDelete = id
	return f.err
}

type fakeCatalogService struct {
	artists []*domain.Artist
	formats []*domain.Format
	err     error
	nextID  int64

	lastArtist      *domain.Artist
	lastFormat      *domain.Format
	lastPromoter    *domain.Promoter
	lastTourManager *domain.TourManager
	lastService     *domain.Service
}

func (f *fakeCatalogService) assign(id *int64) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	*id = f.nextID
	return nil
}

func (f *fakeCatalogService) ListArtists(context.Context) ([]*domain.Artist, error) {
	return f.artists, f.err
}

func (f *fakeCatalogService) CreateArtist(_ context.Context, a *domain.Artist) error {
	f.lastArtist = a
	return f.assign(&a.ID)
}

func (f *fakeCatalogService) ListFormats(context.Context) ([]*domain.Format, error) {
	return f.formats, f.err
}

func (f *fakeCatalogService) CreateFormat(_ context.Context, fm *domain.Format) error {
	f.lastFormat = fm
	return f.assign(&fm.ID)
}

func (f *fakeCatalogService) ListPromoters(context.Context) ([]*domain.Promoter, error) {
	return nil, f.err
}

func (f *fakeCatalogService) CreatePromoter(_ context.Context, p *domain.Promoter) error {
	f.lastPromoter = p
	return f.assign(&p.ID)
}

func (f *fakeCatalogService) ListTourManagers(context.Context) ([]*domain.TourManager, error) {
	return nil, f.err
}

func (f *fakeCatalogService) CreateTourManager(_ context.Context, m *domain.TourManager) error {
	f.lastTourManager = m
	return f.assign(&m.ID)
}

func (f *fakeCatalogService) ListServices(context.Context) ([]*domain.Service, error) {
	return nil, f.err
}

func (f *fakeCatalogService) CreateService(_ context.Context, s *domain.Service) error {
	f.lastService = s
	return f.assign(&s.ID)
}

type fakeCalendarService struct {
	view   *domain.MonthView
	events []*domain.Event
	doc    string
	err    error

	lastMonth  time.Time
	lastFilter domain.EventFilter
	lastID     int64
	lastFrom   time.Time
	lastKind   string
}

func (f *fakeCalendarService) Month(_ context.Context, month time.Time, filter domain.EventFilter) (*domain.MonthView, error) {
	f.lastMonth, f.lastFilter = month, filter
	return f.view, f.err
}

func (f *fakeCalendarService) Agenda(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	return f.events, f.err
}

func (f *fakeCalendarService) ArtistSchedule(_ context.Context, artistID int64, from time.Time) ([]*domain.Event, error) {
	f.lastKind, f.lastID, f.lastFrom = "artist", artistID, from
	return f.events, f.err
}

func (f *fakeCalendarService) FormatSchedule(_ context.Context, formatID int64, from time.Time) ([]*domain.Event, error) {
	f.lastKind, f.lastID, f.lastFrom = "format", formatID, from
	return f.events, f.err
}

func (f *fakeCalendarService) ICS(_ context.Context, filter domain.EventFilter) (string, error) {
	f.lastFilter = filter
	return f.doc, f.err
}

type fakeAuthService struct {
	token string
	user  *domain.User
	err   error

	lastEmail string
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	f.lastEmail = email
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}
