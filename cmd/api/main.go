package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"facility-registry-api-server/config"
	"facility-registry-api-server/internal/api/routes"
	"facility-registry-api-server/internal/cache"
	"facility-registry-api-server/internal/database"
	"facility-registry-api-server/internal/export"
	"facility-registry-api-server/internal/geo"
	"facility-registry-api-server/internal/repository"
	"facility-registry-api-server/internal/service"
	"facility-registry-api-server/internal/socket"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	bounds := geo.Bounds{
		Lat: geo.Range{Min: cfg.Geo.LatMin, Max: cfg.Geo.LatMax},
		Lng: geo.Range{Min: cfg.Geo.LngMin, Max: cfg.Geo.LngMax},
	}

	repo := repository.NewMongoRepository(db)
	facilities := service.NewFacilityService(repo, bounds, logger)
	boxes := service.NewBoxService(repo, logger)
	variables := service.NewVariableService(repo, bounds, logger)
	sessions := service.NewSessionService(repo.Session, service.SessionConfig{
		Secret:     cfg.Admin.Secret,
		TTL:        cfg.Admin.SessionTTL,
		LoginDelay: cfg.Admin.LoginDelay,
		UserID:     cfg.Admin.UserID,
	}, logger)
	bulk := service.NewBulkService(facilities, repo, bounds, logger)
	reports := service.NewReportService(facilities, logger)

	if err := database.SeedFacilities(ctx, facilities, cfg.Seed.File, logger); err != nil {
		logger.Warn("facility seeding failed", zap.Error(err))
	}

	hub := socket.NewHub(logger)
	readCache := cache.New(cfg.Redis, logger)
	defer readCache.Close()

	exporter, err := export.NewExporter(cfg.S3)
	if err != nil {
		logger.Fatal("failed to build report exporter", zap.Error(err))
	}

	router := routes.SetupRouter(cfg, routes.Services{
		Facilities: facilities,
		Boxes:      boxes,
		Variables:  variables,
		Sessions:   sessions,
		Bulk:       bulk,
		Reports:    reports,
	}, hub, readCache, exporter, logger)

	logger.Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
