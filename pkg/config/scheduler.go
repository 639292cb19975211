package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// SchedulerConfig holds operational knobs for the background sync scheduler.
// Loaded separately from the main config so deployments can tune the worker
// without touching application settings.
type SchedulerConfig struct {
	Enabled    bool          `envconfig:"SYNC_SCHEDULER_ENABLED" default:"false"`
	Interval   time.Duration `envconfig:"SYNC_SCHEDULER_INTERVAL" default:"15m"`
	MinSyncGap time.Duration `envconfig:"SYNC_SCHEDULER_MIN_GAP" default:"1h"`
	MaxPerTick int           `envconfig:"SYNC_SCHEDULER_MAX_PER_TICK" default:"10"`
}

// LoadScheduler loads scheduler configuration from the environment.
func LoadScheduler() (*SchedulerConfig, error) {
	var c SchedulerConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
