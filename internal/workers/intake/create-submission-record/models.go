package createsubmissionrecord

import "homebuyer-prequal/internal/models"

type Input struct {
	// SubmissionID is optional. When absent the id is derived from the
	// process instance key, so retries hit the primary key instead of
	// creating a second row.
	SubmissionID          string                       `json:"submissionId,omitempty"`
	Submission            *models.Submission           `json:"submission"`
	QualificationCategory models.QualificationCategory `json:"qualificationCategory,omitempty"`
	OverallScore          *float64                     `json:"overallScore,omitempty"`

	ProcessInstanceKey int64 `json:"-"`
}

type Output struct {
	SubmissionID     string `json:"submissionId"`
	SubmissionStatus string `json:"submissionStatus"`
	CreatedAt        string `json:"createdAt"` // RFC 3339
}
