package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookingcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarController_Month(t *testing.T) {
	tests := []struct {
		name       string
		month      string
		query      string
		wantStatus int
		wantMonth  time.Time
	}{
		{
			name:       "valid month",
			month:      "2025-03",
			query:      "?artist_ids=2",
			wantStatus: http.StatusOK,
			wantMonth:  time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{name: "full date rejected", month: "2025-03-01", wantStatus: http.StatusBadRequest},
		{name: "month out of range", month: "2025-13", wantStatus: http.StatusBadRequest},
		{name: "bad filter", month: "2025-03", query: "?format_ids=a", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCalendarService{view: &domain.MonthView{Month: "2025-03", WeekStart: "monday"}}
			c := NewCalendarController(testLogger, svc)
			req := httptest.NewRequest(http.MethodGet, "/calendar/month/"+tt.month+tt.query, nil)
			req.SetPathValue("month", tt.month)
			rr := httptest.NewRecorder()

			c.Month(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.True(t, tt.wantMonth.Equal(svc.lastMonth))
			assert.Equal(t, []int64{2}, svc.lastFilter.ArtistIDs)
			data, _ := decodeEnvelope(t, rr)
			var view domain.MonthView
			require.NoError(t, json.Unmarshal(data, &view))
			assert.Equal(t, "2025-03", view.Month)
		})
	}
}

func TestCalendarController_Agenda(t *testing.T) {
	svc := &fakeCalendarService{events: []*domain.Event{{ID: 4, Title: "Gala", Date: "2025-03-10"}}}
	c := NewCalendarController(testLogger, svc)
	req := httptest.NewRequest(http.MethodGet, "/calendar/agenda?date_from=2025-03-01", nil)
	rr := httptest.NewRecorder()

	c.Agenda(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2025-03-01", svc.lastFilter.DateFrom)
	data, _ := decodeEnvelope(t, rr)
	var got []domain.Event
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)
}

func TestCalendarController_Agenda_window(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantFrom string
		wantTo   string
	}{
		{name: "no bounds uses default window", query: "", wantFrom: "2025-01-15", wantTo: "2025-05-15"},
		{name: "lower bound only", query: "?date_from=2025-03-01", wantFrom: "2025-03-01", wantTo: ""},
		{name: "upper bound only", query: "?date_to=2025-03-31", wantFrom: "", wantTo: "2025-03-31"},
		{name: "filters without dates still windowed", query: "?artist_ids=2", wantFrom: "2025-01-15", wantTo: "2025-05-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCalendarService{}
			c := NewCalendarController(testLogger, svc)
			c.Now = func() time.Time { return time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC) }
			rr := httptest.NewRecorder()

			c.Agenda(rr, httptest.NewRequest(http.MethodGet, "/calendar/agenda"+tt.query, nil))

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantFrom, svc.lastFilter.DateFrom)
			assert.Equal(t, tt.wantTo, svc.lastFilter.DateTo)
		})
	}
}

func TestCalendarController_ICS(t *testing.T) {
	t.Run("calendar document", func(t *testing.T) {
		doc := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
		svc := &fakeCalendarService{doc: doc}
		c := NewCalendarController(testLogger, svc)
		rr := httptest.NewRecorder()

		c.ICS(rr, httptest.NewRequest(http.MethodGet, "/calendar.ics?format_ids=1", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), ICSFilename)
		assert.Equal(t, doc, rr.Body.String())
		assert.Equal(t, []int64{1}, svc.lastFilter.FormatIDs)
	})

	t.Run("export failure is a JSON error", func(t *testing.T) {
		c := NewCalendarController(testLogger, &fakeCalendarService{err: errors.New("boom")})
		rr := httptest.NewRecorder()

		c.ICS(rr, httptest.NewRequest(http.MethodGet, "/calendar.ics", nil))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	})
}

func TestCalendarController_Schedules(t *testing.T) {
	today := time.Date(2025, time.June, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		handler    func(c *CalendarController) http.HandlerFunc
		id         string
		query      string
		wantStatus int
		wantKind   string
		wantFrom   string
	}{
		{
			name:       "artist from today",
			handler:    func(c *CalendarController) http.HandlerFunc { return c.ArtistSchedule },
			id:         "3",
			wantStatus: http.StatusOK,
			wantKind:   "artist",
			wantFrom:   "2025-06-15",
		},
		{
			name:       "format from explicit date",
			handler:    func(c *CalendarController) http.HandlerFunc { return c.FormatSchedule },
			id:         "2",
			query:      "?from=2025-01-01",
			wantStatus: http.StatusOK,
			wantKind:   "format",
			wantFrom:   "2025-01-01",
		},
		{
			name:       "bad from",
			handler:    func(c *CalendarController) http.HandlerFunc { return c.ArtistSchedule },
			id:         "3",
			query:      "?from=tomorrow",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad id",
			handler:    func(c *CalendarController) http.HandlerFunc { return c.FormatSchedule },
			id:         "-1",
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCalendarService{}
			c := NewCalendarController(testLogger, svc)
			c.Now = func() time.Time { return today }
			req := httptest.NewRequest(http.MethodGet, "/x/"+tt.id+"/schedule"+tt.query, nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			tt.handler(c)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Empty(t, svc.lastKind)
				return
			}
			assert.Equal(t, tt.wantKind, svc.lastKind)
			assert.Equal(t, tt.wantFrom, svc.lastFrom.Format(domain.DateLayout))
			data, _ := decodeEnvelope(t, rr)
			assert.JSONEq(t, `[]`, string(data))
		})
	}
}
