package crmleadsubmit

import (
	"time"

	"homebuyer-prequal/internal/models"
)

type Input struct {
	SubmissionID          string                       `json:"submissionId"`
	Submission            *models.Submission           `json:"submission"`
	QualificationCategory models.QualificationCategory `json:"qualificationCategory,omitempty"`
}

type Output struct {
	LeadID      string    `json:"crmLeadId"`
	LeadStatus  string    `json:"crmLeadStatus"`
	CRMProvider string    `json:"crmProvider"`
	Duplicate   bool      `json:"crmDuplicate"`
	SubmittedAt time.Time `json:"crmSubmittedAt"`
}

// Lead_Status picklist values per qualification category.
var leadStatusByCategory = map[models.QualificationCategory]string{
	models.CategoryReady:       "Pre-Qualified",
	models.CategoryFixesNeeded: "Needs Follow-Up",
	models.CategoryNotReady:    "Not Qualified",
}

const defaultLeadStatus = "Not Contacted"
