package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isandoval/fleet-relay-be/internal/services"
)

// ScanHandler handles HTTP requests over stored device scans.
type ScanHandler struct {
	service services.TelemetryServiceProvider
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(service services.TelemetryServiceProvider) *ScanHandler {
	return &ScanHandler{service: service}
}

// GetAll returns every retained scan, newest first.
func (h *ScanHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.Scans())
}

// Get returns a single scan by ID.
func (h *ScanHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		if scan, lookupErr := h.service.ScanByID(id); lookupErr == nil {
			json.NewEncoder(w).Encode(scan)
			return
		}
	}

	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "Scan not found"})
}

// GetLatest returns the most recent scan, or a sentinel message when none
// have arrived yet.
func (h *ScanHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	scan, err := h.service.LatestScan()
	if err != nil {
		json.NewEncoder(w).Encode(map[string]string{"message": "No scans available"})
		return
	}
	json.NewEncoder(w).Encode(scan)
}

// Clear empties the scan store.
func (h *ScanHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.ClearScans()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Device scans cleared",
	})
}
