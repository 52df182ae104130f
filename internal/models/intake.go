// internal/models/intake.go
package models

import "homebuyer-prequal/pkg/phone"

// Timeline is how soon the respondent plans to buy.
type Timeline string

const (
	TimelineUnanswered    Timeline = ""
	TimelineImmediately   Timeline = "immediately"
	TimelineWithin3Months Timeline = "within-3-months"
	Timeline3To6Months    Timeline = "3-6-months"
	Timeline6To12Months   Timeline = "6-12-months"
	TimelineExploring     Timeline = "exploring"
)

func AllTimelines() []Timeline {
	return []Timeline{
		TimelineImmediately,
		TimelineWithin3Months,
		Timeline3To6Months,
		Timeline6To12Months,
		TimelineExploring,
	}
}

type EmploymentType string

const (
	EmploymentUnanswered       EmploymentType = ""
	EmploymentSalaried         EmploymentType = "salaried"
	EmploymentSelfEmployed1099 EmploymentType = "self-employed-1099"
	EmploymentRetired          EmploymentType = "retired"
	EmploymentUnemployed       EmploymentType = "unemployed"
	EmploymentOther            EmploymentType = "other"
)

func AllEmploymentTypes() []EmploymentType {
	return []EmploymentType{
		EmploymentSalaried,
		EmploymentSelfEmployed1099,
		EmploymentRetired,
		EmploymentUnemployed,
		EmploymentOther,
	}
}

// IncomeType is the unit of IncomeAmount.
type IncomeType string

const (
	IncomeAnnual  IncomeType = "annual"
	IncomeMonthly IncomeType = "monthly"
)

type CreditCategory string

const (
	CreditUnanswered CreditCategory = ""
	CreditExcellent  CreditCategory = "excellent"
	CreditGood       CreditCategory = "good"
	CreditFair       CreditCategory = "fair"
	CreditPoor       CreditCategory = "poor"
	CreditUnknown    CreditCategory = "unknown"
)

func AllCreditCategories() []CreditCategory {
	return []CreditCategory{
		CreditExcellent,
		CreditGood,
		CreditFair,
		CreditPoor,
		CreditUnknown,
	}
}

// IDType doubles as a proxy for residency status. IDTypeUnanswered means the
// question has not been reached yet; IDTypeNone is an actual answer.
type IDType string

const (
	IDTypeUnanswered IDType = ""
	IDTypeSSN        IDType = "SSN"
	IDTypeITIN       IDType = "ITIN"
	IDTypeNone       IDType = "none"
)

func AllIDTypes() []IDType {
	return []IDType{IDTypeSSN, IDTypeITIN, IDTypeNone}
}

type CreditIssueKind string

const (
	CreditIssueBankruptcy  CreditIssueKind = "bankruptcy"
	CreditIssueForeclosure CreditIssueKind = "foreclosure"
	CreditIssueCollections CreditIssueKind = "collections"
	CreditIssueMedical     CreditIssueKind = "medical"
	CreditIssueOther       CreditIssueKind = "other"
)

// AllCreditIssueKinds lists the kinds in the order they are reported.
func AllCreditIssueKinds() []CreditIssueKind {
	return []CreditIssueKind{
		CreditIssueBankruptcy,
		CreditIssueForeclosure,
		CreditIssueCollections,
		CreditIssueMedical,
		CreditIssueOther,
	}
}

type CreditIssueDetails struct {
	Amount       *float64 `json:"amount,omitempty"`
	Timeframe    string   `json:"timeframe,omitempty"`
	InCollection bool     `json:"inCollection"`
}

type CreditIssues struct {
	Bankruptcy  bool `json:"bankruptcy,omitempty"`
	Foreclosure bool `json:"foreclosure,omitempty"`
	Collections bool `json:"collections,omitempty"`
	Medical     bool `json:"medical,omitempty"`
	Other       bool `json:"other,omitempty"`

	BankruptcyDetails  *CreditIssueDetails `json:"bankruptcyDetails,omitempty"`
	ForeclosureDetails *CreditIssueDetails `json:"foreclosureDetails,omitempty"`
	CollectionsDetails *CreditIssueDetails `json:"collectionsDetails,omitempty"`
	MedicalDetails     *CreditIssueDetails `json:"medicalDetails,omitempty"`
	OtherDetails       *CreditIssueDetails `json:"otherDetails,omitempty"`
}

// Flagged reports whether the given kind is set.
func (c *CreditIssues) Flagged(kind CreditIssueKind) bool {
	if c == nil {
		return false
	}
	switch kind {
	case CreditIssueBankruptcy:
		return c.Bankruptcy
	case CreditIssueForeclosure:
		return c.Foreclosure
	case CreditIssueCollections:
		return c.Collections
	case CreditIssueMedical:
		return c.Medical
	case CreditIssueOther:
		return c.Other
	}
	return false
}

// Details returns the details attached to kind, or nil.
func (c *CreditIssues) Details(kind CreditIssueKind) *CreditIssueDetails {
	if c == nil {
		return nil
	}
	switch kind {
	case CreditIssueBankruptcy:
		return c.BankruptcyDetails
	case CreditIssueForeclosure:
		return c.ForeclosureDetails
	case CreditIssueCollections:
		return c.CollectionsDetails
	case CreditIssueMedical:
		return c.MedicalDetails
	case CreditIssueOther:
		return c.OtherDetails
	}
	return nil
}

// IntakeRecord accumulates one respondent's questionnaire answers. Every field
// may be absent while the questionnaire is in progress.
type IntakeRecord struct {
	Timeline          Timeline       `json:"timeline,omitempty"`
	FirstTimeBuyer    *bool          `json:"firstTimeBuyer,omitempty"`
	EmploymentType    EmploymentType `json:"employmentType,omitempty"`
	SelfEmployedYears *int           `json:"selfEmployedYears,omitempty"`
	IncomeAmount      *float64       `json:"incomeAmount,omitempty"`
	IncomeType        IncomeType     `json:"incomeType,omitempty"`
	CreditCategory    CreditCategory `json:"creditCategory,omitempty"`
	CreditScore       *int           `json:"creditScore,omitempty"`
	DownPaymentSaved  *bool          `json:"downPaymentSaved,omitempty"`
	DownPaymentAmount *float64       `json:"downPaymentAmount,omitempty"`
	AssistanceOpen    *bool          `json:"assistanceOpen,omitempty"`
	MonthlyDebts      string         `json:"monthlyDebts,omitempty"`

	HasCreditIssues *bool         `json:"hasCreditIssues,omitempty"`
	CreditIssues    *CreditIssues `json:"creditIssues,omitempty"`
	// Most recent major derogatory event, asked separately from the flags.
	CreditIssueType CreditIssueKind `json:"creditIssueType,omitempty"`
	CreditIssueYear *int            `json:"creditIssueYear,omitempty"`

	IDType IDType `json:"idType,omitempty"`

	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Comments string `json:"comments,omitempty"`
	Campaign string `json:"campaign,omitempty"`
}

// ResolvedIncomeType returns the unit for IncomeAmount, defaulting to annual.
func (r *IntakeRecord) ResolvedIncomeType() IncomeType {
	if r.IncomeType == IncomeMonthly {
		return IncomeMonthly
	}
	return IncomeAnnual
}

// SetIncome records an income amount together with its unit.
func (r *IntakeRecord) SetIncome(amount float64, unit IncomeType) {
	r.IncomeAmount = &amount
	if unit == "" {
		unit = IncomeAnnual
	}
	r.IncomeType = unit
}

// HasIncome reports whether a positive income value was supplied.
func (r *IntakeRecord) HasIncome() bool {
	return r.IncomeAmount != nil && *r.IncomeAmount > 0
}

// ActiveCreditIssues returns the credit issues only when HasCreditIssues is true.
func (r *IntakeRecord) ActiveCreditIssues() *CreditIssues {
	if !IsTrue(r.HasCreditIssues) {
		return nil
	}
	return r.CreditIssues
}

// ActiveSelfEmployedYears returns SelfEmployedYears only for 1099 respondents.
func (r *IntakeRecord) ActiveSelfEmployedYears() *int {
	if r.EmploymentType != EmploymentSelfEmployed1099 {
		return nil
	}
	return r.SelfEmployedYears
}

func IsTrue(b *bool) bool {
	return b != nil && *b
}

func BoolPtr(b bool) *bool {
	return &b
}

func IntPtr(i int) *int {
	return &i
}

func Float64Ptr(f float64) *float64 {
	return &f
}

// SetPhone stores the phone number in canonical display form.
func (r *IntakeRecord) SetPhone(raw string) {
	r.Phone = phone.Normalize(raw)
}

// PhoneDigits returns the stored phone number without display formatting.
func (r *IntakeRecord) PhoneDigits() string {
	return phoneDigits(r.Phone)
}

func phoneDigits(s string) string {
	return phone.Digits(s)
}
