package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "bookingcalendar/internal/delivery/http/helpers"
	"bookingcalendar/internal/domain"
)

const monthLayout = "2006-01"

// ICSFilename is the attachment name offered for the calendar feed.
const ICSFilename = "bookings.ics"

// MonthSuccessResponse is the success response envelope for GET /calendar/month/{month}.
type MonthSuccessResponse struct {
	Data  *domain.MonthView `json:"data"`
	Error *h.APIError       `json:"error"`
}

type CalendarController struct {
	Logger  *slog.Logger
	Service domain.CalendarService
	// Now defaults schedule start dates; tests pin it.
	Now func() time.Time
}

func NewCalendarController(logger *slog.Logger, svc domain.CalendarService) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Service: svc,
		Now:     time.Now,
	}
}

// Month godoc
// @Summary Month grid
// @Description Six weeks of days covering the month, each with its events. date_from and date_to are ignored.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Param artist_ids query string false "Comma-separated artist ids"
// @Param format_ids query string false "Comma-separated format ids"
// @Success 200 {object} controllers.MonthSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar/month/{month} [get]
func (c *CalendarController) Month(w http.ResponseWriter, r *http.Request) {
	month, err := time.Parse(monthLayout, r.PathValue("month"))
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "month must be in YYYY-MM format")
		return
	}
	filter, errs := h.EventFilterFromQuery(r)
	if len(errs) > 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}
	view, err := c.Service.Month(r.Context(), month, filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, view)
}

// Agenda godoc
// @Summary Agenda
// @Description Filtered events sorted by date then id. Without date_from and date_to the window is today-30 to today+90.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param artist_ids query string false "Comma-separated artist ids"
// @Param format_ids query string false "Comma-separated format ids"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar/agenda [get]
func (c *CalendarController) Agenda(w http.ResponseWriter, r *http.Request) {
	filter, errs := h.EventFilterFromQuery(r)
	if len(errs) > 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}
	if filter.DateFrom == "" && filter.DateTo == "" {
		today := c.Now()
		filter.DateFrom = today.AddDate(0, 0, -domain.AgendaLookbackDays).Format(domain.DateLayout)
		filter.DateTo = today.AddDate(0, 0, domain.AgendaLookaheadDays).Format(domain.DateLayout)
	}
	events, err := c.Service.Agenda(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nonNil(events))
}

// ICS godoc
// @Summary iCalendar feed
// @Description Filtered events as all-day VEVENTs.
// @Tags calendar
// @Produce text/calendar
// @Security BearerAuth
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param artist_ids query string false "Comma-separated artist ids"
// @Param format_ids query string false "Comma-separated format ids"
// @Success 200 {string} string "text/calendar document"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar.ics [get]
func (c *CalendarController) ICS(w http.ResponseWriter, r *http.Request) {
	filter, errs := h.EventFilterFromQuery(r)
	if len(errs) > 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}
	doc, err := c.Service.ICS(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ICSFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// ArtistSchedule godoc
// @Summary Artist schedule
// @Description Events of one artist from the start date through the following 60 days.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artist ID"
// @Param from query string false "Start date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /artists/{id}/schedule [get]
func (c *CalendarController) ArtistSchedule(w http.ResponseWriter, r *http.Request) {
	c.schedule(w, r, c.Service.ArtistSchedule)
}

// FormatSchedule godoc
// @Summary Format schedule
// @Description Events of one format from the start date through the following 365 days.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param id path int true "Format ID"
// @Param from query string false "Start date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /formats/{id}/schedule [get]
func (c *CalendarController) FormatSchedule(w http.ResponseWriter, r *http.Request) {
	c.schedule(w, r, c.Service.FormatSchedule)
}

func (c *CalendarController) schedule(
	w http.ResponseWriter,
	r *http.Request,
	load func(ctx context.Context, id int64, from time.Time) ([]*domain.Event, error),
) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	raw, err := h.QueryDate(r, "from")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	from := c.Now()
	if raw != "" {
		from, _ = time.Parse(domain.DateLayout, raw)
	}
	events, err := load(r.Context(), id, from)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nonNil(events))
}
