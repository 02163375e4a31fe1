package http

import (
	"log/slog"
	"net/http"

	"bookingcalendar/internal/delivery/http/controllers"
	"bookingcalendar/internal/delivery/http/middleware"
	"bookingcalendar/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers served by NewRouter.
type Controllers struct {
	Auth     *controllers.AuthController
	Catalog  *controllers.CatalogController
	Event    *controllers.EventController
	Calendar *controllers.CalendarController
}

// NewRouter initializes the HTTP router with all application routes and wraps it in the
// request id, logging and CORS middleware, outermost first. Everything except /health,
// /auth/login and /swagger/ requires a bearer token.
func NewRouter(logger *slog.Logger, verifier domain.TokenVerifier, corsOrigins []string, c Controllers) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /health", controllers.Health)

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Catalog
	mux.HandleFunc("GET /artists", auth(c.Catalog.ListArtists))
	mux.HandleFunc("POST /artists", auth(c.Catalog.CreateArtist))
	mux.HandleFunc("GET /formats", auth(c.Catalog.ListFormats))
	mux.HandleFunc("POST /formats", auth(c.Catalog.CreateFormat))
	mux.HandleFunc("GET /promoters", auth(c.Catalog.ListPromoters))
	mux.HandleFunc("POST /promoters", auth(c.Catalog.CreatePromoter))
	mux.HandleFunc("GET /tour-managers", auth(c.Catalog.ListTourManagers))
	mux.HandleFunc("POST /tour-managers", auth(c.Catalog.CreateTourManager))
	mux.HandleFunc("GET /services", auth(c.Catalog.ListServices))
	mux.HandleFunc("POST /services", auth(c.Catalog.CreateService))

	// Events
	mux.HandleFunc("GET /events", auth(c.Event.ListEvents))
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/{id}", auth(c.Event.GetEvent))
	mux.HandleFunc("PUT /events/{id}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{id}", auth(c.Event.DeleteEvent))

	// Calendar views
	mux.HandleFunc("GET /calendar/month/{month}", auth(c.Calendar.Month))
	mux.HandleFunc("GET /calendar/agenda", auth(c.Calendar.Agenda))
	mux.HandleFunc("GET /calendar.ics", auth(c.Calendar.ICS))
	mux.HandleFunc("GET /artists/{id}/schedule", auth(c.Calendar.ArtistSchedule))
	mux.HandleFunc("GET /formats/{id}/schedule", auth(c.Calendar.FormatSchedule))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(corsOrigins, mux)))
}
