package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/isandoval/fleet-relay-be/internal/models"
	"github.com/isandoval/fleet-relay-be/internal/services"
	"github.com/rs/zerolog/log"
)

// DataHandler handles report ingestion from devices.
type DataHandler struct {
	service services.TelemetryServiceProvider
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(service services.TelemetryServiceProvider) *DataHandler {
	return &DataHandler{service: service}
}

// Ingest handles a device report POST. Well-formed reports are never
// rejected; odd or missing fields are defaulted downstream.
func (h *DataHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	report, err := models.ParseReport(body)
	if err != nil {
		log.Warn().Err(err).Msg("Rejecting malformed report body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.service.Ingest(report)

	w.Header().Set("Content-Type", "application/json")
	if result.Scan {
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"message":     "Complete device data received",
			"deviceCount": result.DeviceCount,
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Data received",
	})
}
