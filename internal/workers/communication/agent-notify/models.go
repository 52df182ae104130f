package agentnotify

import "homebuyer-prequal/internal/models"

type Input struct {
	SubmissionID          string                       `json:"submissionId"`
	Submission            *models.Submission           `json:"submission"`
	QualificationCategory models.QualificationCategory `json:"qualificationCategory,omitempty"`
	OverallScore          *float64                     `json:"overallScore,omitempty"`
	CRMLeadID             string                       `json:"crmLeadId,omitempty"`
	AgentEmail            string                       `json:"agentEmail,omitempty"`
	AgentPhone            string                       `json:"agentPhone,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"notificationStatus"`
	EmailStatus    string `json:"emailStatus"`
	SMSStatus      string `json:"smsStatus"`
	SentAt         string `json:"sentAt"` // RFC 3339
}

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
	// StatusSkipped means the channel is enabled but had nothing to do.
	StatusSkipped = "skipped"
)
