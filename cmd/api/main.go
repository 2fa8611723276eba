package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"go.uber.org/zap"

	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/configs"
	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/notifier"
	"github.com/JoshVilla/brgy-admin-sub001/internal/infrastructure/tracing"
	"github.com/JoshVilla/brgy-admin-sub001/internal/persistence/db"
	"github.com/JoshVilla/brgy-admin-sub001/internal/persistence/repository"
	"github.com/JoshVilla/brgy-admin-sub001/internal/presentation/api"
	"github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/announcements"
	"github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/health"
	"github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/incidents"
	"github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/ordinances"
	"github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/requests"
	"github.com/JoshVilla/brgy-admin-sub001/internal/presentation/handler/residents"
)

const (
	serviceName = "brgy-admin-api"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	mongoCfg := &db.MongoConfig{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	}
	mongoClient, err := db.NewMongoClient(ctx, mongoCfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.DisconnectMongo(context.Background(), mongoClient)

	database := db.GetDatabase(mongoClient, mongoCfg)

	residentRepository := repository.NewResidentRepository(database)
	requestRepository := repository.NewServiceRequestRepository(database)
	announcementRepository := repository.NewAnnouncementRepository(database)
	incidentRepository := repository.NewIncidentRepository(database)
	ordinanceRepository := repository.NewOrdinanceRepository(database)

	if err := requestRepository.EnsureIndexes(ctx); err != nil {
		logger.Warnw("failed to ensure request indexes", "error", err)
	}

	// The bridge to the admin dashboards and mobile sessions. Connectivity is
	// established lazily on first publish; a broker outage never fails a
	// request.
	broker := notifier.New(cfg.Broker.URL, logger)
	defer broker.Close()

	residentsHandler := residents.NewHandler(residentRepository, broker)
	requestsHandler := requests.NewHandler(requestRepository, residentRepository, broker)
	announcementsHandler := announcements.NewHandler(announcementRepository, broker)
	incidentsHandler := incidents.NewHandler(incidentRepository, broker)
	ordinancesHandler := ordinances.NewHandler(ordinanceRepository, broker)
	healthHandler := health.NewHandler()

	app := api.NewApplication(
		*cfg,
		*residentsHandler,
		*requestsHandler,
		*announcementsHandler,
		*incidentsHandler,
		*ordinancesHandler,
		*healthHandler,
		logger,
	)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	logger.Fatal(app.Run(mux))
}
