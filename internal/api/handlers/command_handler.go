package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/isandoval/fleet-relay-be/internal/models"
	"github.com/isandoval/fleet-relay-be/internal/services"
)

// CommandHandler handles operator-triggered device commands.
type CommandHandler struct {
	service services.CommandServiceProvider
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(service services.CommandServiceProvider) *CommandHandler {
	return &CommandHandler{service: service}
}

// CheckNow broadcasts a CHECK_NOW command to every connected device. The
// request body may carry an optional reason; an absent body is fine.
func (h *CommandHandler) CheckNow(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Reason string `json:"reason"`
	}
	// Decode errors are ignored on purpose: an empty or absent body means a
	// manual trigger with the default reason.
	json.NewDecoder(r.Body).Decode(&payload)

	w.Header().Set("Content-Type", "application/json")

	sent, err := h.service.Dispatch(models.CommandCheckNow, payload.Reason)
	if err != nil {
		if errors.Is(err, services.ErrNoDevices) {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "No ESP32 devices connected to command stream",
			})
			return
		}
		http.Error(w, "Failed to dispatch command", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"success":     true,
		"message":     fmt.Sprintf("CHECK_NOW sent to %d ESP32 device(s)", sent),
		"deviceCount": sent,
	})
}

// Status reports whether any devices are listening on the command stream.
func (h *CommandHandler) Status(w http.ResponseWriter, r *http.Request) {
	count := h.service.DeviceCount()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"connected":   count > 0,
		"deviceCount": count,
	})
}
