package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isandoval/fleet-relay-be/internal/api"
	"github.com/isandoval/fleet-relay-be/internal/config"
	"github.com/isandoval/fleet-relay-be/internal/logger"
	"github.com/isandoval/fleet-relay-be/internal/models"
	"github.com/isandoval/fleet-relay-be/internal/monitoring"
	"github.com/isandoval/fleet-relay-be/internal/services"
	"github.com/isandoval/fleet-relay-be/internal/store"
	"github.com/isandoval/fleet-relay-be/internal/stream"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up the bounded in-memory stores
	logStore := store.NewRing[models.Event](cfg.LogCapacity)
	scanStore := store.NewRing[models.DeviceScan](cfg.ScanCapacity)

	// Set up the two connection pools
	dashboardHub := stream.NewHub("dashboard")
	deviceHub := stream.NewHub("esp32")

	// Set up services
	telemetryService := services.NewTelemetryService(logStore, scanStore, dashboardHub)
	commandService := services.NewCommandService(telemetryService, deviceHub)

	// Set up and run the background stat updater
	var statUpdater *monitoring.StatUpdater
	if cfg.StatsInterval > 0 {
		statUpdater = monitoring.NewStatUpdater(dashboardHub, time.Duration(cfg.StatsInterval)*time.Second)
		go statUpdater.Run()
	}

	// Set up and run the scheduled device checks
	scheduler := monitoring.NewScheduler(commandService, cfg.CheckSchedule)
	scheduler.Run()

	// Set up router
	router := api.NewRouter(cfg.AllowedOrigins, telemetryService, commandService, dashboardHub, deviceHub)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Relay server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if statUpdater != nil {
		statUpdater.Stop()
	}
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
