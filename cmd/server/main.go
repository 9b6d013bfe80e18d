package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/velomaps/bikeflow-backend-go/internal/api"
	"github.com/velomaps/bikeflow-backend-go/internal/config"
	"github.com/velomaps/bikeflow-backend-go/internal/database"
	"github.com/velomaps/bikeflow-backend-go/internal/handler"
	"github.com/velomaps/bikeflow-backend-go/internal/repository"
	"github.com/velomaps/bikeflow-backend-go/internal/service"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	stationRepo := repository.NewStationRepository(db)
	tripRepo := repository.NewTripRepository(db)

	ingestSvc := service.NewIngestService(stationRepo, tripRepo, cfg)
	engine, err := ingestSvc.Bootstrap()
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	log.WithFields(log.Fields{
		"stations":   engine.Registry().Len(),
		"trips":      engine.TripCount(),
		"half_width": engine.HalfWidth(),
	}).Info("aggregation engine ready")

	trafficSvc := service.NewTrafficService(engine)
	stationSvc := service.NewStationService(trafficSvc)

	router := api.SetupRouter(cfg, api.Handlers{
		Traffic: handler.NewTrafficHandler(trafficSvc),
		Station: handler.NewStationHandler(stationSvc),
		Admin:   handler.NewAdminHandler(ingestSvc, trafficSvc),
	})

	log.Infof("server starting on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
