package transformsubmission

import (
	"time"

	"homebuyer-prequal/internal/common/config"
	"homebuyer-prequal/internal/models"
)

type Config struct {
	Timeout         time.Duration
	DefaultCampaign string
}

func LoadConfig(app *config.Config) *Config {
	cfg := &Config{Timeout: 5 * time.Second, DefaultCampaign: models.DefaultCampaign}
	if app == nil {
		return cfg
	}
	if d := config.GetWorkerConfig(app, TaskType).TimeoutDuration(); d > 0 {
		cfg.Timeout = d
	}
	if app.Intake.DefaultCampaign != "" {
		cfg.DefaultCampaign = app.Intake.DefaultCampaign
	}
	return cfg
}
