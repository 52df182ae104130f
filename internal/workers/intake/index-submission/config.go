package indexsubmission

import (
	"time"

	"homebuyer-prequal/internal/common/config"
)

type Config struct {
	Timeout   time.Duration
	IndexName string
}

func LoadConfig(app *config.Config) *Config {
	cfg := &Config{Timeout: 10 * time.Second, IndexName: "prequal-submissions"}
	if app == nil {
		return cfg
	}
	if d := config.GetWorkerConfig(app, TaskType).TimeoutDuration(); d > 0 {
		cfg.Timeout = d
	}
	if app.Intake.SubmissionIndex != "" {
		cfg.IndexName = app.Intake.SubmissionIndex
	}
	return cfg
}
