// @title Booking Calendar API
// @version 1.0
// @description Event booking calendar: artists, formats, promoters, tour managers, services and the events that tie them to dates.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingcalendar/config"
	_ "bookingcalendar/docs"
	"bookingcalendar/internal/adapters/auth"
	"bookingcalendar/internal/adapters/ics"
	delivery "bookingcalendar/internal/delivery/http"
	"bookingcalendar/internal/delivery/http/controllers"
	"bookingcalendar/internal/domain"
	"bookingcalendar/internal/repository/postgres"
	"bookingcalendar/internal/services"
)

const icsUIDDomain = "bookingcalendar"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.InitSchema(ctx, db); err != nil {
		return err
	}
	logger.Info("schema ready", "event_storage", cfg.EventStorage)

	userRepo := postgres.NewUserRepository(db)
	catalog := services.Catalog{
		Artists:      postgres.NewArtistRepository(db),
		Formats:      postgres.NewFormatRepository(db),
		Promoters:    postgres.NewPromoterRepository(db),
		TourManagers: postgres.NewTourManagerRepository(db),
		Services:     postgres.NewServiceRepository(db),
	}
	eventRepo := newEventRepository(cfg.EventStorage, db)

	hasher := auth.NewBcryptHasher(0)
	seed, err := services.LoadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}
	bootstrap := services.NewBootstrapService(userRepo, catalog.Artists, catalog.Formats, hasher, seed, cfg.RequestTimeout)
	if err := bootstrap.Seed(ctx); err != nil {
		return err
	}
	if err := bootstrap.EnsureDefaultUsers(ctx); err != nil {
		return err
	}

	authService := services.NewAuthService(userRepo, hasher, auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry, cfg.RequestTimeout)
	catalogService := services.NewCatalogService(catalog, cfg.RequestTimeout)
	eventService := services.NewEventService(eventRepo, cfg.RequestTimeout)
	calendarService := services.NewCalendarService(
		eventRepo,
		catalog.Formats,
		ics.NewExporter(ics.DefaultProductID, icsUIDDomain),
		cfg.FirstWeekday(),
		cfg.RequestTimeout,
	)

	router := delivery.NewRouter(logger, auth.NewJWTVerifier(cfg.JWTSecret), cfg.CORSOrigins(), delivery.Controllers{
		Auth:     controllers.NewAuthController(logger, authService),
		Catalog:  controllers.NewCatalogController(logger, catalogService),
		Event:    controllers.NewEventController(logger, eventService),
		Calendar: controllers.NewCalendarController(logger, calendarService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited gracefully")
	return nil
}

func newEventRepository(strategy string, db *sql.DB) domain.EventRepository {
	if strategy == config.StorageJoin {
		return postgres.NewJoinEventRepository(db)
	}
	return postgres.NewEventRepository(db)
}
