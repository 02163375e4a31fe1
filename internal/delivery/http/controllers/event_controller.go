package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "bookingcalendar/internal/delivery/http/helpers"
	"bookingcalendar/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EventRequest is the request body for POST /events and PUT /events/{id}. PUT replaces every
// field. id and last_modified are accepted so clients can send back what they read, but the
// server owns both.
type EventRequest struct {
	ID            *int64            `json:"id,omitempty"`
	Title         string            `json:"title"`
	Date          string            `json:"date"`
	FormatID      *int64            `json:"format_id"`
	ArtistIDs     []int64           `json:"artist_ids"`
	PromoterID    *int64            `json:"promoter_id"`
	TourManagerID *int64            `json:"tour_manager_id"`
	Services      []json.RawMessage `json:"services" swaggertype:"array,object"`
	Notes         *string           `json:"notes"`
	Status        string            `json:"status" enums:"planned,confirmed,cancelled"`
	LastModified  *time.Time        `json:"last_modified,omitempty"`
}

// Validate implements Validator.
func (e EventRequest) Validate() []string {
	statuses := make([]any, 0, len(domain.EventStatuses))
	for _, s := range domain.EventStatuses {
		statuses = append(statuses, string(s))
	}
	return h.ValidationMessages(validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Required, validation.Length(1, maxNameLen)),
		validation.Field(&e.Date, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&e.FormatID, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&e.ArtistIDs, validation.Each(validation.Required, validation.Min(int64(1)))),
		validation.Field(&e.PromoterID, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&e.TourManagerID, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&e.Status, validation.In(statuses...)),
	))
}

func (e EventRequest) toEvent(id int64) *domain.Event {
	return &domain.Event{
		ID:            id,
		Title:         e.Title,
		Date:          e.Date,
		FormatID:      e.FormatID,
		ArtistIDs:     domain.NewEmbeddedList(e.ArtistIDs...),
		PromoterID:    e.PromoterID,
		TourManagerID: e.TourManagerID,
		Services:      domain.NewEmbeddedList(e.Services...),
		Notes:         e.Notes,
		Status:        domain.EventStatus(e.Status),
	}
}

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event `json:"data"`
	Error *h.APIError   `json:"error"`
}

// EventListSuccessResponse is the success response envelope for event lists.
type EventListSuccessResponse struct {
	Data  []*domain.Event `json:"data"`
	Error *h.APIError     `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns events matching the filter. Results follow store order unless sort=date.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param artist_ids query string false "Comma-separated artist ids; an event matches if it has any of them"
// @Param format_ids query string false "Comma-separated format ids"
// @Param sort query string false "date to sort by date then id"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, errs := h.EventFilterFromQuery(r)
	sortBy := r.URL.Query().Get("sort")
	if sortBy != "" && sortBy != "date" {
		errs = append(errs, "sort must be \"date\"")
	}
	if len(errs) > 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}
	events, err := c.Service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	if sortBy == "date" {
		domain.SortEventsByDate(events)
	}
	h.WriteJSONSuccess(w, http.StatusOK, nonNil(events))
}

// CreateEvent godoc
// @Summary Create an event
// @Description Status defaults to planned. Unknown format, promoter or tour manager ids are a conflict.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent(0)
	if err := c.Service.Upsert(r.Context(), event); err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	event, err := c.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Replace an event
// @Description Overwrites every field of the event. Updating an id that does not exist changes nothing.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body EventRequest true "Event"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	var req EventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.ID != nil && *req.ID != id {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "id in body does not match path")
		return
	}
	event := req.toEvent(id)
	if err := c.Service.Upsert(r.Context(), event); err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deleting an id that does not exist still returns 204.
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
