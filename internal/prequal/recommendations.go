package prequal

import (
	"fmt"
	"sort"

	"homebuyer-prequal/internal/models"
)

// Recommender turns a record into a prioritized list of next steps.
type Recommender struct {
	classifier *Classifier
}

// NewRecommender uses classifier for the recent-event rule. A nil classifier
// means the default wall-clock one.
func NewRecommender(classifier *Classifier) *Recommender {
	if classifier == nil {
		classifier = defaultClassifier
	}
	return &Recommender{classifier: classifier}
}

var defaultRecommender = NewRecommender(nil)

type rule func(c *Classifier, r *models.IntakeRecord) []models.Recommendation

var recommendationRules = []rule{
	identityRecommendations,
	creditRecommendations,
	employmentRecommendations,
	downPaymentRecommendations,
	timelineRecommendations,
}

// Recommend returns at least one item, ordered high, medium, low and then
// items without a priority. Items of equal priority keep rule order.
func (rc *Recommender) Recommend(r *models.IntakeRecord) []models.Recommendation {
	r = orEmpty(r)

	var out []models.Recommendation
	for _, fn := range recommendationRules {
		out = append(out, fn(rc.classifier, r)...)
	}
	if len(out) == 0 {
		out = append(out, models.Recommendation{
			Type:        models.RecommendationOther,
			Title:       "Talk to a loan officer",
			Description: "Your answers look strong. A loan officer can confirm your numbers and start a formal pre-approval.",
			Priority:    models.PriorityLow,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

func Recommend(r *models.IntakeRecord) []models.Recommendation {
	return defaultRecommender.Recommend(r)
}

func identityRecommendations(_ *Classifier, r *models.IntakeRecord) []models.Recommendation {
	switch r.IDType {
	case models.IDTypeNone:
		return []models.Recommendation{{
			Type:        models.RecommendationIdentity,
			Title:       "Obtain a taxpayer ID",
			Description: "Lenders need an SSN or ITIN. You can apply for an ITIN with IRS form W-7.",
			Priority:    models.PriorityHigh,
		}}
	case models.IDTypeITIN:
		return []models.Recommendation{{
			Type:        models.RecommendationDocumentation,
			Title:       "Explore ITIN loan programs",
			Description: "ITIN mortgages usually ask for two years of tax returns and a larger down payment.",
			Priority:    models.PriorityMedium,
		}}
	}
	return nil
}

func creditRecommendations(c *Classifier, r *models.IntakeRecord) []models.Recommendation {
	var out []models.Recommendation

	switch r.CreditCategory {
	case models.CreditPoor:
		out = append(out, models.Recommendation{
			Type:        models.RecommendationCredit,
			Title:       "Rebuild your credit",
			Description: "Pay every bill on time and keep card balances under 30% of their limits. Most programs start at 620.",
			Priority:    models.PriorityHigh,
		})
	case models.CreditFair:
		out = append(out, models.Recommendation{
			Type:        models.RecommendationCredit,
			Title:       "Raise your score above 680",
			Description: "A higher score lowers your rate. Paying down revolving balances is usually the fastest lever.",
			Priority:    models.PriorityMedium,
		})
	case models.CreditUnknown:
		out = append(out, models.Recommendation{
			Type:        models.RecommendationCredit,
			Title:       "Check your credit report",
			Description: "Get a free report at annualcreditreport.com so you know where you stand.",
			Priority:    models.PriorityLow,
		})
	}

	if c.recentMajorEvent(r) {
		out = append(out, models.Recommendation{
			Type:        models.RecommendationCredit,
			Title:       "Wait out the seasoning period",
			Description: fmt.Sprintf("Most lenders require %d years after a bankruptcy or foreclosure. Use the time to re-establish credit.", majorEventSeasoningYears),
			Priority:    models.PriorityHigh,
		})
	}

	if largeCollections(r) {
		out = append(out, models.Recommendation{
			Type:        models.RecommendationCredit,
			Title:       "Resolve accounts in collections",
			Description: fmt.Sprintf("Collections over $%.0f usually have to be paid or settled before closing.", collectionsFixThreshold),
			Priority:    models.PriorityHigh,
		})
	}
	return out
}

func employmentRecommendations(_ *Classifier, r *models.IntakeRecord) []models.Recommendation {
	switch r.EmploymentType {
	case models.EmploymentUnemployed:
		if !r.HasIncome() {
			return []models.Recommendation{{
				Type:        models.RecommendationEmployment,
				Title:       "Establish a steady income",
				Description: "Lenders look for verifiable income. Retirement, disability or rental income can count too.",
				Priority:    models.PriorityHigh,
			}}
		}
	case models.EmploymentSelfEmployed1099:
		if y := r.ActiveSelfEmployedYears(); y == nil || *y < minSelfEmployedYears {
			return []models.Recommendation{{
				Type:        models.RecommendationEmployment,
				Title:       "Build a two-year self-employment history",
				Description: "Self-employed borrowers usually need two years of filed tax returns. Bank statement loans are an alternative.",
				Priority:    models.PriorityMedium,
			}}
		}
	}
	return nil
}

func downPaymentRecommendations(_ *Classifier, r *models.IntakeRecord) []models.Recommendation {
	if r.DownPaymentSaved == nil || *r.DownPaymentSaved {
		return nil
	}

	priority := models.PriorityMedium
	if r.CreditCategory == models.CreditPoor {
		priority = models.PriorityHigh
	}
	out := []models.Recommendation{{
		Type:        models.RecommendationDownPayment,
		Title:       "Start a down payment fund",
		Description: "Even 3% down opens conventional and FHA programs. Automatic transfers make saving easier.",
		Priority:    priority,
	}}
	if models.IsTrue(r.AssistanceOpen) {
		out = append(out, models.Recommendation{
			Type:        models.RecommendationDownPayment,
			Title:       "Look into down payment assistance",
			Description: "State and city programs offer grants and forgivable loans, especially for first-time buyers.",
		})
	}
	return out
}

func timelineRecommendations(_ *Classifier, r *models.IntakeRecord) []models.Recommendation {
	switch r.Timeline {
	case models.TimelineImmediately, models.TimelineWithin3Months:
		return []models.Recommendation{{
			Type:        models.RecommendationTimeline,
			Title:       "Gather your documents now",
			Description: "Have two months of bank statements, recent pay stubs and two years of W-2s or tax returns ready.",
			Priority:    models.PriorityMedium,
		}}
	case models.TimelineExploring:
		return []models.Recommendation{{
			Type:        models.RecommendationTimeline,
			Title:       "Set a target date",
			Description: "Picking a purchase window helps you plan savings and credit improvements.",
			Priority:    models.PriorityLow,
		}}
	}
	return nil
}
