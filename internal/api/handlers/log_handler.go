package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isandoval/fleet-relay-be/internal/services"
)

// LogHandler handles HTTP requests over the event log.
type LogHandler struct {
	service services.TelemetryServiceProvider
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(service services.TelemetryServiceProvider) *LogHandler {
	return &LogHandler{service: service}
}

// GetAll returns every retained log event, newest first.
func (h *LogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.Logs())
}

// Clear empties the log store.
func (h *LogHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.ClearLogs()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Logs cleared",
	})
}
