package controllers

import (
	"net/http"

	h "bookingcalendar/internal/delivery/http/helpers"
)

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Router /health [get]
func Health(w http.ResponseWriter, _ *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
