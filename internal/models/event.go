package models

import "time"

// formattedTimeLayout mirrors the dashboard's locale-style display time.
const formattedTimeLayout = "1/2/2006, 3:04:05 PM"

// Event represents a single log record: a device report, a command audit
// entry, or a connection lifecycle notice.
type Event struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`   // e.g. "PING", "CHECK_NOW_SENT", "ESP32_CONNECTED"
	Status        string    `json:"status"` // Human-readable message
	Timestamp     time.Time `json:"timestamp"`
	FormattedTime string    `json:"formattedTime"`
}

// NewEvent builds an Event stamped with the current time and a fresh ID.
func NewEvent(eventType, status string) Event {
	now := time.Now()
	return Event{
		ID:            NextID(),
		Type:          eventType,
		Status:        status,
		Timestamp:     now,
		FormattedTime: now.Format(formattedTimeLayout),
	}
}

// EntryID implements store.Entry.
func (e Event) EntryID() int64 { return e.ID }
