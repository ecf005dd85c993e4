package services

import (
	"errors"
	"fmt"

	"github.com/isandoval/fleet-relay-be/internal/models"
	"github.com/isandoval/fleet-relay-be/internal/stream"
	"github.com/rs/zerolog/log"
)

// ErrNoDevices is returned when a command is dispatched with no devices
// listening on the command stream.
var ErrNoDevices = errors.New("no ESP32 devices connected to command stream")

// DefaultCommandReason is attached to commands issued without one.
const DefaultCommandReason = "Manual trigger from dashboard"

// CommandServiceProvider defines the interface for command dispatch.
type CommandServiceProvider interface {
	Dispatch(name, reason string) (int, error)
	DeviceCount() int
}

// CommandService relays operator-issued commands to every device on the
// command stream and audits the result to the log store and dashboards.
type CommandService struct {
	telemetry TelemetryServiceProvider
	devices   *stream.Hub
}

// NewCommandService creates a new CommandService.
func NewCommandService(telemetry TelemetryServiceProvider, devices *stream.Hub) *CommandService {
	return &CommandService{telemetry: telemetry, devices: devices}
}

// Dispatch broadcasts a command to the device pool and returns the number of
// devices that confirmed the write. Individual write failures are swallowed;
// they only lower the count. An empty pool fails with ErrNoDevices before
// anything is written or audited.
func (s *CommandService) Dispatch(name, reason string) (int, error) {
	if s.devices.Count() == 0 {
		return 0, ErrNoDevices
	}
	if reason == "" {
		reason = DefaultCommandReason
	}

	command := models.NewCommand(name, reason)
	sent := s.devices.Broadcast(command)
	log.Info().Str("command", name).Int("sent", sent).Msg("Command dispatched to device pool")

	s.telemetry.RecordEvent(name+"_SENT",
		fmt.Sprintf("%s command sent to %d ESP32 device(s)", name, sent))

	return sent, nil
}

// DeviceCount returns the number of devices currently on the command stream.
func (s *CommandService) DeviceCount() int {
	return s.devices.Count()
}
