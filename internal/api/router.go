package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isandoval/fleet-relay-be/internal/api/handlers"
	"github.com/isandoval/fleet-relay-be/internal/services"
	"github.com/isandoval/fleet-relay-be/internal/stream"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(allowedOrigins []string, telemetry services.TelemetryServiceProvider, commands services.CommandServiceProvider, dashboards, devices *stream.Hub) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Devices and dashboards call in from whatever network they sit on
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Cache-Control"},
		MaxAge:         300,
	}))

	// Initialize handlers
	dataHandler := handlers.NewDataHandler(telemetry)
	scanHandler := handlers.NewScanHandler(telemetry)
	logHandler := handlers.NewLogHandler(telemetry)
	commandHandler := handlers.NewCommandHandler(commands)
	streamHandler := handlers.NewStreamHandler(telemetry, dashboards, devices)
	healthHandler := handlers.NewHealthHandler(telemetry, dashboards, devices)

	r.Route("/api", func(r chi.Router) {
		// Device-facing endpoints
		r.Post("/data", dataHandler.Ingest)
		r.Get("/esp32/commands", streamHandler.ServeDevice)
		r.Get("/esp32/status", commandHandler.Status)

		// Dashboard-facing endpoints
		r.Get("/stream", streamHandler.ServeDashboard)
		r.Post("/check-now", commandHandler.CheckNow)

		r.Route("/device-scans", func(r chi.Router) {
			r.Get("/", scanHandler.GetAll)
			r.Get("/latest", scanHandler.GetLatest)
			r.Delete("/", scanHandler.Clear)
		})
		r.Get("/device-scan/{id}", scanHandler.Get)

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", logHandler.GetAll)
			r.Delete("/", logHandler.Clear)
		})

		r.Get("/health", healthHandler.Health)
	})

	return r
}
