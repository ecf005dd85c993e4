package monitoring

import (
	"time"

	"github.com/isandoval/fleet-relay-be/internal/stream"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// StatUpdater periodically samples host CPU and memory and pushes the
// reading to the dashboard pool as a live SERVER_STATS gauge. Readings are
// not stored; they only matter while someone is watching.
type StatUpdater struct {
	dashboards *stream.Hub
	interval   time.Duration
	ticker     *time.Ticker
	done       chan bool
}

// NewStatUpdater creates a new StatUpdater.
func NewStatUpdater(dashboards *stream.Hub, interval time.Duration) *StatUpdater {
	return &StatUpdater{
		dashboards: dashboards,
		interval:   interval,
		done:       make(chan bool),
	}
}

// Run starts the periodic updates.
func (su *StatUpdater) Run() {
	log.Info().Dur("interval", su.interval).Msg("Starting background stat updater...")
	su.ticker = time.NewTicker(su.interval)
	defer su.ticker.Stop()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-su.ticker.C:
			su.broadcastHostStats()
		}
	}
}

// Stop halts the periodic updates.
func (su *StatUpdater) Stop() {
	su.done <- true
}

func (su *StatUpdater) broadcastHostStats() {
	// Nobody watching, nothing to sample.
	if su.dashboards.Count() == 0 {
		return
	}

	cpuPercent := 0.0
	if percents, err := cpu.Percent(0, false); err != nil {
		log.Warn().Err(err).Msg("StatUpdater: Failed to read CPU usage")
	} else if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	memPercent := 0.0
	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warn().Err(err).Msg("StatUpdater: Failed to read memory usage")
	} else {
		memPercent = vm.UsedPercent
	}

	su.dashboards.Broadcast(map[string]any{
		"type":      "SERVER_STATS",
		"cpu":       cpuPercent,
		"memory":    memPercent,
		"timestamp": time.Now(),
	})
}
