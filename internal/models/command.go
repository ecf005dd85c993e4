package models

import "time"

// Command names understood by the device firmware.
const (
	CommandCheckNow  = "CHECK_NOW"
	CommandConnected = "CONNECTED"
)

// Command is a broadcast instruction for connected devices. Transient: it is
// written to the command stream and never stored.
type Command struct {
	Command   string `json:"command"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds, matches device firmware expectations
	Reason    string `json:"reason,omitempty"`
}

// NewCommand builds a Command stamped with the current time.
func NewCommand(name, reason string) Command {
	return Command{
		Command:   name,
		Timestamp: time.Now().UnixMilli(),
		Reason:    reason,
	}
}
