package services

import (
	"fmt"
	"strings"

	"github.com/isandoval/fleet-relay-be/internal/models"
	"github.com/isandoval/fleet-relay-be/internal/store"
	"github.com/isandoval/fleet-relay-be/internal/stream"
	"github.com/rs/zerolog/log"
)

// deviceDelimiter separates device records inside a scan payload's data field.
const deviceDelimiter = "|||"

// IngestResult describes how a report was classified and handled.
type IngestResult struct {
	Scan        bool
	DeviceCount int
}

// TelemetryServiceProvider defines the interface for telemetry ingest and queries.
type TelemetryServiceProvider interface {
	Ingest(report models.DeviceReport) IngestResult
	RecordEvent(eventType, status string) models.Event
	Logs() []models.Event
	ClearLogs()
	TotalLogs() int
	Scans() []models.DeviceScan
	ScanByID(id int64) (models.DeviceScan, error)
	LatestScan() (models.DeviceScan, error)
	ClearScans()
	TotalScans() int
}

// TelemetryService owns the two event stores and pushes live updates to the
// dashboard pool as reports arrive.
type TelemetryService struct {
	logs       *store.Ring[models.Event]
	scans      *store.Ring[models.DeviceScan]
	dashboards *stream.Hub
}

// NewTelemetryService creates a new TelemetryService.
func NewTelemetryService(logs *store.Ring[models.Event], scans *store.Ring[models.DeviceScan], dashboards *stream.Hub) *TelemetryService {
	return &TelemetryService{logs: logs, scans: scans, dashboards: dashboards}
}

// Ingest classifies a device report, records it, and fans the news out to
// every connected dashboard. Ingest never rejects a well-formed report:
// unknown types become plain log events with defaulted fields.
func (s *TelemetryService) Ingest(report models.DeviceReport) IngestResult {
	if report.Type == models.ScanType {
		return s.ingestScan(report)
	}

	eventType := report.Type
	if eventType == "" {
		eventType = "UNKNOWN"
	}
	status := report.Status
	if status == "" {
		status = "No message"
	}

	event := models.NewEvent(eventType, status)
	s.logs.Append(event)
	log.Info().Str("type", event.Type).Str("status", event.Status).Msg("Report received")

	s.dashboards.Broadcast(event)
	return IngestResult{}
}

func (s *TelemetryService) ingestScan(report models.DeviceReport) IngestResult {
	deviceCount := strings.Count(report.Data, deviceDelimiter)

	scan := models.NewDeviceScan(report, deviceCount)
	s.scans.Append(scan)
	log.Info().Int64("scan_id", scan.ID).Int("device_count", deviceCount).Msg("Complete device scan received")

	summary := models.NewEvent("DEVICE_SCAN_COMPLETE",
		fmt.Sprintf("Complete device scan received with %d devices", deviceCount))
	s.logs.Append(summary)
	s.dashboards.Broadcast(summary)

	// Dashboards get a second, lightweight pointer so they can pull the full
	// payload on demand instead of receiving it inline.
	s.dashboards.Broadcast(models.ScanNotification{
		Type:        "FULL_DEVICE_DATA",
		ScanID:      scan.ID,
		DeviceCount: deviceCount,
		Timestamp:   scan.Timestamp,
	})

	return IngestResult{Scan: true, DeviceCount: deviceCount}
}

// RecordEvent appends an event to the log store and broadcasts it to the
// dashboard pool. Used for lifecycle notices such as a device joining or
// leaving the command stream.
func (s *TelemetryService) RecordEvent(eventType, status string) models.Event {
	event := models.NewEvent(eventType, status)
	s.logs.Append(event)
	s.dashboards.Broadcast(event)
	return event
}

// Logs returns all retained log events, newest first.
func (s *TelemetryService) Logs() []models.Event { return s.logs.List() }

// ClearLogs empties the log store.
func (s *TelemetryService) ClearLogs() { s.logs.Clear() }

// TotalLogs returns the number of retained log events.
func (s *TelemetryService) TotalLogs() int { return s.logs.Len() }

// Scans returns all retained device scans, newest first.
func (s *TelemetryService) Scans() []models.DeviceScan { return s.scans.List() }

// ScanByID returns the scan with the given ID, or store.ErrNotFound.
func (s *TelemetryService) ScanByID(id int64) (models.DeviceScan, error) { return s.scans.GetByID(id) }

// LatestScan returns the most recent scan, or store.ErrEmpty.
func (s *TelemetryService) LatestScan() (models.DeviceScan, error) { return s.scans.Latest() }

// ClearScans empties the scan store. Connection pools and the log store are
// untouched.
func (s *TelemetryService) ClearScans() { s.scans.Clear() }

// TotalScans returns the number of retained scans.
func (s *TelemetryService) TotalScans() int { return s.scans.Len() }
