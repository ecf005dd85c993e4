package models

import (
	"encoding/json"
	"time"
)

// ScanType is the report type that routes to the scan path.
const ScanType = "COMPLETE_DEVICE_DATA"

// DeviceScan is a stored full-inventory report from a device. RawData keeps
// the original request body verbatim so a scan fetched later round-trips
// exactly what the device sent.
type DeviceScan struct {
	ID            int64           `json:"id"`
	Type          string          `json:"type"`
	Data          string          `json:"data"`
	RawData       json.RawMessage `json:"rawData"`
	Timestamp     time.Time       `json:"timestamp"`
	FormattedTime string          `json:"formattedTime"`
	DeviceCount   int             `json:"deviceCount"`
}

// NewDeviceScan builds a DeviceScan from a parsed report.
func NewDeviceScan(report DeviceReport, deviceCount int) DeviceScan {
	now := time.Now()
	data := report.Data
	if data == "" {
		data = "No data"
	}
	return DeviceScan{
		ID:            NextID(),
		Type:          ScanType,
		Data:          data,
		RawData:       report.Raw,
		Timestamp:     now,
		FormattedTime: now.Format(formattedTimeLayout),
		DeviceCount:   deviceCount,
	}
}

// EntryID implements store.Entry.
func (s DeviceScan) EntryID() int64 { return s.ID }

// ScanNotification is the lightweight follow-up pushed to dashboards after a
// scan summary, pointing at the stored scan for on-demand retrieval.
type ScanNotification struct {
	Type        string    `json:"type"` // always "FULL_DEVICE_DATA"
	ScanID      int64     `json:"scanId"`
	DeviceCount int       `json:"deviceCount"`
	Timestamp   time.Time `json:"timestamp"`
}
