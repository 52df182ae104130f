package resolveintakestep

import (
	"time"

	"homebuyer-prequal/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

// LoadConfig reads the workers.resolve-intake-step block.
func LoadConfig(app *config.Config) *Config {
	cfg := &Config{Timeout: 5 * time.Second}
	if app == nil {
		return cfg
	}
	if d := config.GetWorkerConfig(app, TaskType).TimeoutDuration(); d > 0 {
		cfg.Timeout = d
	}
	return cfg
}
