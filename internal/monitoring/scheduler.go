package monitoring

import (
	"errors"

	"github.com/isandoval/fleet-relay-be/internal/models"
	"github.com/isandoval/fleet-relay-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler fires automatic CHECK_NOW dispatches on a cron cadence, so a
// fleet gets polled even when no operator is around to press the button.
type Scheduler struct {
	commandSvc services.CommandServiceProvider
	schedule   string
	cron       *cron.Cron
}

// NewScheduler creates a new Scheduler. An empty schedule disables it.
func NewScheduler(commandSvc services.CommandServiceProvider, schedule string) *Scheduler {
	return &Scheduler{commandSvc: commandSvc, schedule: schedule}
}

// Run registers the cron entry and starts the scheduler.
func (s *Scheduler) Run() {
	if s.schedule == "" {
		return
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.runScheduledCheck); err != nil {
		log.Error().Err(err).Str("schedule", s.schedule).Msg("Scheduler: Invalid check schedule, automatic checks disabled")
		s.cron = nil
		return
	}
	s.cron.Start()
	log.Info().Str("schedule", s.schedule).Msg("Starting scheduled device checks...")
}

// Stop halts the scheduler. Safe to call when it never started.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) runScheduledCheck() {
	sent, err := s.commandSvc.Dispatch(models.CommandCheckNow, "Scheduled check")
	if err != nil {
		if errors.Is(err, services.ErrNoDevices) {
			log.Warn().Msg("Scheduler: Skipping scheduled check, no devices connected")
			return
		}
		log.Error().Err(err).Msg("Scheduler: Scheduled check failed")
		return
	}
	log.Info().Int("sent", sent).Msg("Scheduler: Scheduled check dispatched")
}
