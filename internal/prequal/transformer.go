package prequal

import (
	"math"
	"strconv"
	"strings"

	"homebuyer-prequal/internal/models"
	"homebuyer-prequal/pkg/phone"
)

var legalStatusByID = map[models.IDType]string{
	models.IDTypeSSN:  models.LegalStatusCitizen,
	models.IDTypeITIN: models.LegalStatusPermanentResident,
}

var creditCategoryLabels = map[models.CreditCategory]string{
	models.CreditExcellent: "Excellent",
	models.CreditGood:      "Good",
	models.CreditFair:      "Fair",
	models.CreditPoor:      "Poor",
	models.CreditUnknown:   "Fair",
}

var creditIssueLabels = map[models.CreditIssueKind]string{
	models.CreditIssueBankruptcy:  "Bankruptcy",
	models.CreditIssueForeclosure: "Foreclosure",
	models.CreditIssueCollections: "Collections",
	models.CreditIssueMedical:     "Medical",
	models.CreditIssueOther:       "Other",
}

// Transformer builds Submission payloads.
type Transformer struct {
	defaultCampaign string
}

// NewTransformer uses campaign when a record has none. An empty campaign
// means models.DefaultCampaign.
func NewTransformer(campaign string) *Transformer {
	if strings.TrimSpace(campaign) == "" {
		campaign = models.DefaultCampaign
	}
	return &Transformer{defaultCampaign: campaign}
}

var defaultTransformer = NewTransformer("")

// Transform maps a record to its submission payload. It never fails: every
// absent field falls back to a documented value.
func (t *Transformer) Transform(r *models.IntakeRecord, selectedAgent string) models.Submission {
	r = orEmpty(r)
	annual, monthly := resolveIncome(r)
	clauses := creditIssueClauses(r)

	campaign := strings.TrimSpace(r.Campaign)
	if campaign == "" {
		campaign = t.defaultCampaign
	}

	return models.Submission{
		Name:  strings.TrimSpace(r.Name),
		Phone: phone.Normalize(r.Phone),
		Email: strings.TrimSpace(r.Email),

		IncomeAnnual:   annual,
		IncomeMonthly:  monthly,
		LegalStatus:    LegalStatus(r.IDType),
		CreditCategory: CreditCategoryLabel(r.CreditCategory),
		EmploymentType: SubmissionEmploymentType(r.EmploymentType),

		CreditIssues: submissionCreditIssues(r, clauses),
		Comments:     joinComments(r.Comments, clauses),

		DownPaymentSaved:     models.IsTrue(r.DownPaymentSaved),
		DownPaymentAmount:    copyFloat(r.DownPaymentAmount),
		AssistanceInterested: copyBool(r.AssistanceOpen),
		MonthlyDebts:         strings.TrimSpace(r.MonthlyDebts),
		Timeline:             r.Timeline,
		FirstTimeBuyer:       copyBool(r.FirstTimeBuyer),

		Agent:    selectedAgent,
		Campaign: campaign,

		Qualified:    true,
		ConsentGiven: true,
	}
}

func Transform(r *models.IntakeRecord, selectedAgent string) models.Submission {
	return defaultTransformer.Transform(r, selectedAgent)
}

// LegalStatus maps an ID type. Anything but SSN or ITIN, including an
// unanswered question, is "Undocumented".
func LegalStatus(id models.IDType) string {
	if status, ok := legalStatusByID[id]; ok {
		return status
	}
	return models.LegalStatusUndocumented
}

// CreditCategoryLabel maps a category to its submission label; unknown and
// unanswered both map to "Fair".
func CreditCategoryLabel(c models.CreditCategory) string {
	if label, ok := creditCategoryLabels[c]; ok {
		return label
	}
	return "Fair"
}

// SubmissionEmploymentType collapses employment to "1099" or "W-2".
func SubmissionEmploymentType(e models.EmploymentType) string {
	if e == models.EmploymentSelfEmployed1099 {
		return models.SubmissionEmployment1099
	}
	return models.SubmissionEmploymentW2
}

// resolveIncome derives both units from whichever was supplied. The annual
// figure is always computed from the monthly one so annual == monthly*12.
func resolveIncome(r *models.IntakeRecord) (annual, monthly float64) {
	if r.IncomeAmount == nil {
		return 0, 0
	}
	amount := *r.IncomeAmount
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, 0
	}
	if r.ResolvedIncomeType() == models.IncomeMonthly {
		monthly = amount
	} else {
		monthly = amount / 12
	}
	return monthly * 12, monthly
}

func creditIssueClauses(r *models.IntakeRecord) []string {
	issues := r.ActiveCreditIssues()
	if issues == nil {
		return nil
	}
	var clauses []string
	for _, kind := range models.AllCreditIssueKinds() {
		if !issues.Flagged(kind) {
			continue
		}
		clauses = append(clauses, formatClause(creditIssueLabels[kind], issues.Details(kind)))
	}
	return clauses
}

func formatClause(label string, d *models.CreditIssueDetails) string {
	amount, timeframe, collection := "unknown", "unknown", "Not in collection"
	if d != nil {
		if d.Amount != nil {
			amount = strconv.FormatFloat(*d.Amount, 'f', -1, 64)
		}
		if tf := strings.TrimSpace(d.Timeframe); tf != "" {
			timeframe = tf
		}
		if d.InCollection {
			collection = "In collection"
		}
	}
	return label + ": $" + amount + ", " + timeframe + " ago, " + collection
}

func submissionCreditIssues(r *models.IntakeRecord, clauses []string) models.SubmissionCreditIssues {
	out := models.SubmissionCreditIssues{HasCreditIssues: models.IsTrue(r.HasCreditIssues)}
	issues := r.ActiveCreditIssues()
	if issues == nil {
		return out
	}
	out.Bankruptcy = issues.Bankruptcy
	out.Foreclosure = issues.Foreclosure
	out.Collections = issues.Collections
	out.Medical = issues.Medical
	out.Other = issues.Other
	if len(clauses) > 0 {
		out.Details = strings.Join(clauses, "; ")
	}
	return out
}

func joinComments(comments string, clauses []string) string {
	var segments []string
	if c := strings.TrimSpace(comments); c != "" {
		segments = append(segments, c)
	}
	if len(clauses) > 0 {
		segments = append(segments, "Credit Issues: "+strings.Join(clauses, "; "))
	}
	return strings.Join(segments, "\n\n")
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
