package calculatesuitabilityscore

import "homebuyer-prequal/internal/models"

type Input struct {
	Intake *models.IntakeRecord `json:"intake"`
	// Locale is a BCP 47 tag or Accept-Language value for the tier label.
	Locale string `json:"locale,omitempty"`
}

type Output struct {
	SuitabilityScore    models.SuitabilityScore `json:"suitabilityScore"`
	OverallScore        float64                 `json:"overallScore"`
	Recommendations     []models.Recommendation `json:"recommendations"`
	CreditTierLabel     string                  `json:"creditTierLabel"`
	CreditCategoryScore float64                 `json:"creditCategoryScore"`
	Cached              bool                    `json:"scoreCached"`
}
