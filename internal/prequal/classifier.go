package prequal

import (
	"time"

	"homebuyer-prequal/internal/models"
)

const (
	// A bankruptcy or foreclosure disqualifies for this many years.
	majorEventSeasoningYears = 2
	minSelfEmployedYears     = 2
	collectionsFixThreshold  = 500.0
)

// Classifier decides whether a record qualifies and how ready it is.
type Classifier struct {
	now func() time.Time
}

// NewClassifier uses now as the source of the current year. A nil now means
// time.Now.
func NewClassifier(now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{now: now}
}

var defaultClassifier = NewClassifier(nil)

// Evaluate runs every rule and reports which ones fired.
func (c *Classifier) Evaluate(r *models.IntakeRecord) models.QualificationResult {
	r = orEmpty(r)

	disqualifiers := c.disqualifiers(r)
	if len(disqualifiers) > 0 {
		return models.QualificationResult{
			Qualifies:     false,
			Category:      models.CategoryNotReady,
			Disqualifiers: disqualifiers,
		}
	}

	fixes := fixReasons(r)
	category := models.CategoryReady
	if len(fixes) > 0 {
		category = models.CategoryFixesNeeded
	}
	return models.QualificationResult{
		Qualifies: true,
		Category:  category,
		Fixes:     fixes,
	}
}

func (c *Classifier) IsQualified(r *models.IntakeRecord) bool {
	return c.Evaluate(r).Qualifies
}

func (c *Classifier) Category(r *models.IntakeRecord) models.QualificationCategory {
	return c.Evaluate(r).Category
}

func (c *Classifier) disqualifiers(r *models.IntakeRecord) []models.Disqualifier {
	var out []models.Disqualifier

	if r.IDType == models.IDTypeNone {
		out = append(out, models.DisqualifierNoIdentification)
	}
	if r.EmploymentType == models.EmploymentUnemployed && !r.HasIncome() {
		out = append(out, models.DisqualifierUnemployedNoIncome)
	}
	if r.CreditCategory == models.CreditPoor && !models.IsTrue(r.DownPaymentSaved) {
		out = append(out, models.DisqualifierPoorCreditNoSavings)
	}
	if c.recentMajorEvent(r) {
		out = append(out, models.DisqualifierRecentMajorEvent)
	}
	return out
}

func (c *Classifier) recentMajorEvent(r *models.IntakeRecord) bool {
	if r.CreditIssueType != models.CreditIssueBankruptcy && r.CreditIssueType != models.CreditIssueForeclosure {
		return false
	}
	if r.CreditIssueYear == nil {
		return false
	}
	return c.now().Year()-*r.CreditIssueYear < majorEventSeasoningYears
}

func fixReasons(r *models.IntakeRecord) []models.FixReason {
	var out []models.FixReason

	if r.CreditCategory == models.CreditPoor || r.CreditCategory == models.CreditFair {
		out = append(out, models.FixCreditCategory)
	}
	if r.EmploymentType == models.EmploymentSelfEmployed1099 {
		// An unanswered tenure counts as under two years.
		if r.SelfEmployedYears == nil || *r.SelfEmployedYears < minSelfEmployedYears {
			out = append(out, models.FixSelfEmploymentTenure)
		}
	}
	if largeCollections(r) {
		out = append(out, models.FixLargeCollections)
	}
	return out
}

func largeCollections(r *models.IntakeRecord) bool {
	issues := r.ActiveCreditIssues()
	if !issues.Flagged(models.CreditIssueCollections) {
		return false
	}
	d := issues.Details(models.CreditIssueCollections)
	return d != nil && d.Amount != nil && *d.Amount > collectionsFixThreshold
}

func IsQualified(r *models.IntakeRecord) bool {
	return defaultClassifier.IsQualified(r)
}

func QualificationCategory(r *models.IntakeRecord) models.QualificationCategory {
	return defaultClassifier.Category(r)
}

func Evaluate(r *models.IntakeRecord) models.QualificationResult {
	return defaultClassifier.Evaluate(r)
}
