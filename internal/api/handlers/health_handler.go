package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isandoval/fleet-relay-be/internal/services"
	"github.com/isandoval/fleet-relay-be/internal/stream"
)

// HealthHandler reports relay liveness and pool/store occupancy.
type HealthHandler struct {
	telemetry  services.TelemetryServiceProvider
	dashboards *stream.Hub
	devices    *stream.Hub
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(telemetry services.TelemetryServiceProvider, dashboards, devices *stream.Hub) *HealthHandler {
	return &HealthHandler{telemetry: telemetry, dashboards: dashboards, devices: devices}
}

// Health returns counts across both stores and both connection pools, plus a
// thumbnail of the latest scan when one exists.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	var latest any
	if scan, err := h.telemetry.LatestScan(); err == nil {
		latest = map[string]any{
			"timestamp":   scan.FormattedTime,
			"deviceCount": scan.DeviceCount,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":              "online",
		"totalLogs":           h.telemetry.TotalLogs(),
		"totalDeviceScans":    h.telemetry.TotalScans(),
		"connectedDashboards": h.dashboards.Count(),
		"connectedESP32s":     h.devices.Count(),
		"latestScan":          latest,
	})
}
