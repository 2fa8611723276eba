package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/configs"
	announcementsHandler "github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/announcements"
	healthHandler "github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/health"
	incidentsHandler "github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/incidents"
	ordinancesHandler "github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/ordinances"
	requestsHandler "github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/requests"
	residentsHandler "github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/residents"
)

type Application struct {
	config               configs.Config
	residentsHandler     residentsHandler.Handler
	requestsHandler      requestsHandler.Handler
	announcementsHandler announcementsHandler.Handler
	incidentsHandler     incidentsHandler.Handler
	ordinancesHandler    ordinancesHandler.Handler
	healthHandler        healthHandler.Handler
	logger               *zap.SugaredLogger
}

func NewApplication(
	config configs.Config,
	residentsHandler residentsHandler.Handler,
	requestsHandler requestsHandler.Handler,
	announcementsHandler announcementsHandler.Handler,
	incidentsHandler incidentsHandler.Handler,
	ordinancesHandler ordinancesHandler.Handler,
	healthHandler healthHandler.Handler,
	logger *zap.SugaredLogger,
) *Application {
	return &Application{
		config:               config,
		residentsHandler:     residentsHandler,
		requestsHandler:      requestsHandler,
		announcementsHandler: announcementsHandler,
		incidentsHandler:     incidentsHandler,
		ordinancesHandler:    ordinancesHandler,
		healthHandler:        healthHandler,
		logger:               logger,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.enableCors)

	r.Route("/api", func(r chi.Router) {
		r.Route("/residents", func(r chi.Router) {
			r.Post("/", app.residentsHandler.CreateResidentHandler)
			r.Get("/", app.residentsHandler.ListResidentsHandler)
			r.Get("/{residentId}", app.residentsHandler.GetResidentHandler)
			r.Put("/{residentId}", app.residentsHandler.UpdateResidentHandler)
			r.Delete("/{residentId}", app.residentsHandler.DeleteResidentHandler)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", app.requestsHandler.CreateRequestHandler)
			r.Get("/", app.requestsHandler.ListRequestsHandler)
			r.Get("/{requestId}", app.requestsHandler.GetRequestHandler)
			r.Patch("/{requestId}/status", app.requestsHandler.UpdateRequestStatusHandler)
			r.Delete("/{requestId}", app.requestsHandler.DeleteRequestHandler)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Post("/", app.announcementsHandler.CreateAnnouncementHandler)
			r.Get("/", app.announcementsHandler.ListAnnouncementsHandler)
			r.Get("/{announcementId}", app.announcementsHandler.GetAnnouncementHandler)
			r.Put("/{announcementId}", app.announcementsHandler.UpdateAnnouncementHandler)
			r.Delete("/{announcementId}", app.announcementsHandler.DeleteAnnouncementHandler)
		})

		r.Route("/incidents", func(r chi.Router) {
			r.Post("/", app.incidentsHandler.CreateIncidentHandler)
			r.Get("/", app.incidentsHandler.ListIncidentsHandler)
			r.Get("/{incidentId}", app.incidentsHandler.GetIncidentHandler)
			r.Patch("/{incidentId}/status", app.incidentsHandler.UpdateIncidentStatusHandler)
		})

		r.Route("/ordinances", func(r chi.Router) {
			r.Post("/", app.ordinancesHandler.CreateOrdinanceHandler)
			r.Get("/", app.ordinancesHandler.ListOrdinancesHandler)
			r.Get("/{ordinanceId}", app.ordinancesHandler.GetOrdinanceHandler)
			r.Put("/{ordinanceId}", app.ordinancesHandler.UpdateOrdinanceHandler)
			r.Delete("/{ordinanceId}", app.ordinancesHandler.DeleteOrdinanceHandler)
		})

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	return r
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      otelhttp.NewHandler(mux, "brgy-admin-api"),
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", srv.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", srv.Addr)

	return nil
}
