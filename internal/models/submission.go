package models

// Output labels used in the submission payload.
const (
	LegalStatusCitizen           = "US Citizen"
	LegalStatusPermanentResident = "Permanent Resident"
	LegalStatusUndocumented      = "Undocumented"

	SubmissionEmploymentW2   = "W-2"
	SubmissionEmployment1099 = "1099"

	DefaultCampaign = "homebuyer-prequalification"
)

// SubmissionCreditIssues carries only the flags that were set.
type SubmissionCreditIssues struct {
	HasCreditIssues bool   `json:"hasCreditIssues"`
	Bankruptcy      bool   `json:"bankruptcy,omitempty"`
	Foreclosure     bool   `json:"foreclosure,omitempty"`
	Collections     bool   `json:"collections,omitempty"`
	Medical         bool   `json:"medical,omitempty"`
	Other           bool   `json:"other,omitempty"`
	Details         string `json:"details,omitempty"`
}

// Submission is the normalized payload handed to downstream systems. It is
// built once from an IntakeRecord and never mutated afterwards.
type Submission struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	IncomeAnnual   float64 `json:"incomeAnnual"`
	IncomeMonthly  float64 `json:"incomeMonthly"`
	LegalStatus    string  `json:"legalStatus"`
	CreditCategory string  `json:"creditCategory"`
	EmploymentType string  `json:"employmentType"`

	CreditIssues SubmissionCreditIssues `json:"creditIssues"`
	Comments     string                 `json:"comments,omitempty"`

	DownPaymentSaved     bool     `json:"downPaymentSaved"`
	DownPaymentAmount    *float64 `json:"downPaymentAmount,omitempty"`
	AssistanceInterested *bool    `json:"assistanceInterested,omitempty"`
	MonthlyDebts         string   `json:"monthlyDebts,omitempty"`
	Timeline             Timeline `json:"timeline,omitempty"`
	FirstTimeBuyer       *bool    `json:"firstTimeBuyer,omitempty"`

	Agent    string `json:"agent"`
	Campaign string `json:"campaign"`

	Qualified    bool `json:"qualified"`
	ConsentGiven bool `json:"consentGiven"`
}

// PhoneDigits returns the phone number without display formatting.
func (s *Submission) PhoneDigits() string {
	return phoneDigits(s.Phone)
}
