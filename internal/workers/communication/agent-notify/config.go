package agentnotify

import (
	"time"

	"homebuyer-prequal/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SMSSenderID  string
	AWSRegion    string
	// Default recipients when the job does not name an agent contact.
	AgentEmail string
	AgentPhone string
}

func LoadConfig(app *config.Config) *Config {
	cfg := &Config{Timeout: 30 * time.Second, AWSRegion: "us-east-1"}
	if app == nil {
		return cfg
	}
	if d := config.GetWorkerConfig(app, TaskType).TimeoutDuration(); d > 0 {
		cfg.Timeout = d
	}
	aws := app.Integrations.AWS
	cfg.EmailEnabled = aws.SES.Enabled
	cfg.FromEmail = aws.SES.FromEmail
	cfg.SMSEnabled = aws.SNS.Enabled
	cfg.SMSSenderID = aws.SNS.SenderID
	if aws.Region != "" {
		cfg.AWSRegion = aws.Region
	}
	cfg.AgentEmail = app.Intake.AgentEmail
	cfg.AgentPhone = app.Intake.AgentPhone
	return cfg
}
