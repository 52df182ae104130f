package indexsubmission

import "homebuyer-prequal/internal/models"

type Input struct {
	SubmissionID          string                       `json:"submissionId"`
	Submission            *models.Submission           `json:"submission"`
	QualificationCategory models.QualificationCategory `json:"qualificationCategory,omitempty"`
	OverallScore          *float64                     `json:"overallScore,omitempty"`
}

type Output struct {
	Indexed         bool   `json:"indexed"`
	IndexName       string `json:"indexName"`
	DocumentVersion int64  `json:"documentVersion"`
	IndexResult     string `json:"indexResult"`
}

// SearchDocument is what the client-list screen searches over.
type SearchDocument struct {
	SubmissionID          string                       `json:"submissionId"`
	Name                  string                       `json:"name"`
	Email                 string                       `json:"email"`
	Phone                 string                       `json:"phone"`
	PhoneDigits           string                       `json:"phoneDigits"`
	Agent                 string                       `json:"agent"`
	Campaign              string                       `json:"campaign"`
	LegalStatus           string                       `json:"legalStatus"`
	CreditCategory        string                       `json:"creditCategory"`
	EmploymentType        string                       `json:"employmentType"`
	IncomeAnnual          float64                      `json:"incomeAnnual"`
	HasCreditIssues       bool                         `json:"hasCreditIssues"`
	Timeline              models.Timeline              `json:"timeline,omitempty"`
	QualificationCategory models.QualificationCategory `json:"qualificationCategory,omitempty"`
	OverallScore          *float64                     `json:"overallScore,omitempty"`
	IndexedAt             string                       `json:"indexedAt"`
}
