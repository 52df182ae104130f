package crmleadsubmit

import (
	"time"

	"homebuyer-prequal/internal/common/config"
)

// ConfigKey is the workers.* block for this task type. Viper splits keys on
// dots, so it cannot be TaskType itself.
const ConfigKey = "crm-lead-submit"

type Config struct {
	Timeout        time.Duration
	IdempotencyTTL time.Duration
	Zoho           config.ZohoConfig
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:        30 * time.Second,
		IdempotencyTTL: 24 * time.Hour,
	}
}

func LoadConfig(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	if d := config.GetWorkerConfig(app, ConfigKey).TimeoutDuration(); d > 0 {
		cfg.Timeout = d
	}
	cfg.Zoho = app.Integrations.Zoho
	return cfg
}
