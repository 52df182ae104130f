package models

type QualificationCategory string

const (
	CategoryReady       QualificationCategory = "ready"
	CategoryFixesNeeded QualificationCategory = "fixesNeeded"
	CategoryNotReady    QualificationCategory = "notReady"
)

// Disqualifier names a rule that made a record not qualify.
type Disqualifier string

const (
	DisqualifierNoIdentification    Disqualifier = "no-identification"
	DisqualifierUnemployedNoIncome  Disqualifier = "unemployed-without-income"
	DisqualifierPoorCreditNoSavings Disqualifier = "poor-credit-without-down-payment"
	DisqualifierRecentMajorEvent    Disqualifier = "recent-bankruptcy-or-foreclosure"
)

// FixReason names a condition that keeps a qualified record from being ready.
type FixReason string

const (
	FixCreditCategory       FixReason = "credit-category"
	FixSelfEmploymentTenure FixReason = "self-employment-under-two-years"
	FixLargeCollections     FixReason = "collections-over-500"
)

type QualificationResult struct {
	Qualifies     bool                  `json:"qualifies"`
	Category      QualificationCategory `json:"category"`
	Disqualifiers []Disqualifier        `json:"disqualifiers,omitempty"`
	Fixes         []FixReason           `json:"fixes,omitempty"`
}

// SuitabilityScore holds five sub-scores and their aggregate, all in [0,10].
type SuitabilityScore struct {
	Credit        float64 `json:"credit"`
	Income        float64 `json:"income"`
	DownPayment   float64 `json:"downPayment"`
	Documentation float64 `json:"documentation"`
	Readiness     float64 `json:"readiness"`
	Overall       float64 `json:"overall"`
}

// SubScores returns the five components in a fixed order.
func (s SuitabilityScore) SubScores() []float64 {
	return []float64{s.Credit, s.Income, s.DownPayment, s.Documentation, s.Readiness}
}

type RecommendationType string

const (
	RecommendationCredit        RecommendationType = "credit"
	RecommendationDownPayment   RecommendationType = "downPayment"
	RecommendationEmployment    RecommendationType = "employment"
	RecommendationIdentity      RecommendationType = "identity"
	RecommendationDocumentation RecommendationType = "documentation"
	RecommendationTimeline      RecommendationType = "timeline"
	RecommendationOther         RecommendationType = "other"
)

// Priority of a recommendation. PriorityNone means the item has no priority.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities high first; PriorityNone sorts last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    Priority           `json:"priority,omitempty"`
}
