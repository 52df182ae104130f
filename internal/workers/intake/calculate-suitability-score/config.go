package calculatesuitabilityscore

import (
	"time"

	"homebuyer-prequal/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// CacheTTL of zero disables the score cache.
	CacheTTL      time.Duration
	DefaultLocale string
}

func LoadConfig(app *config.Config) *Config {
	cfg := &Config{
		Timeout:       5 * time.Second,
		CacheTTL:      10 * time.Minute,
		DefaultLocale: "en",
	}
	if app == nil {
		return cfg
	}
	if d := config.GetWorkerConfig(app, TaskType).TimeoutDuration(); d > 0 {
		cfg.Timeout = d
	}
	cfg.CacheTTL = app.Intake.ScoreCacheTTLDuration()
	if app.Intake.DefaultLocale != "" {
		cfg.DefaultLocale = app.Intake.DefaultLocale
	}
	return cfg
}
