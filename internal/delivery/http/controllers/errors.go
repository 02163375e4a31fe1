package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "bookingcalendar/internal/delivery/http/helpers"
	"bookingcalendar/internal/domain"
)

// writeServiceError maps a service error onto the response envelope. Unexpected errors are
// logged and reported as 500 without leaking store details.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	var cerr *domain.ConstraintError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, notFound)
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
	case errors.As(err, &cerr):
		msg := "request conflicts with existing data"
		if cerr.Constraint != "" {
			msg += " (" + cerr.Constraint + ")"
		}
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, msg)
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal error")
	}
}
