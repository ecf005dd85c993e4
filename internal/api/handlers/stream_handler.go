package handlers

import (
	"net/http"
	"time"

	"github.com/isandoval/fleet-relay-be/internal/models"
	"github.com/isandoval/fleet-relay-be/internal/services"
	"github.com/isandoval/fleet-relay-be/internal/stream"
	"github.com/rs/zerolog/log"
)

// StreamHandler owns the two long-lived event-stream endpoints: the
// dashboard feed and the device command channel. Both park on the request
// context; the transport's close signal is the only disconnect detection.
type StreamHandler struct {
	telemetry  services.TelemetryServiceProvider
	dashboards *stream.Hub
	devices    *stream.Hub
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(telemetry services.TelemetryServiceProvider, dashboards, devices *stream.Hub) *StreamHandler {
	return &StreamHandler{telemetry: telemetry, dashboards: dashboards, devices: devices}
}

type dashboardHello struct {
	Type      string `json:"type"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// ServeDashboard joins an operator dashboard to the live update feed until
// the browser disconnects.
func (h *StreamHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}
	writeStreamHeaders(w)

	client := stream.NewClient(w)
	if err := client.Send(dashboardHello{
		Type:      models.CommandConnected,
		Status:    "Dashboard connected",
		Timestamp: time.Now().UnixMilli(),
	}); err != nil {
		log.Warn().Err(err).Msg("Dashboard greeting failed")
		return
	}
	h.dashboards.Join(client)

	<-r.Context().Done()
	h.dashboards.Leave(client)
}

// ServeDevice joins a device to the command channel until it disconnects.
// Connects and disconnects are audited to the log store so operators can see
// fleet churn on the dashboard.
func (h *StreamHandler) ServeDevice(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}
	writeStreamHeaders(w)
	// Devices often sit behind reverse proxies that buffer by default.
	w.Header().Set("X-Accel-Buffering", "no")

	client := stream.NewClient(w)
	if err := client.Send(models.NewCommand(models.CommandConnected, "")); err != nil {
		log.Warn().Err(err).Msg("Device greeting failed")
		return
	}
	h.devices.Join(client)
	h.telemetry.RecordEvent("ESP32_CONNECTED", "ESP32 connected to command stream")

	<-r.Context().Done()
	h.devices.Leave(client)
	h.telemetry.RecordEvent("ESP32_DISCONNECTED", "ESP32 disconnected from command stream")
}

func writeStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}
