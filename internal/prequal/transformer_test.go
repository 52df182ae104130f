package prequal

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"homebuyer-prequal/internal/models"
)

func TestTransform_FullRecord(t *testing.T) {
	r := &models.IntakeRecord{
		Timeline:          models.TimelineWithin3Months,
		FirstTimeBuyer:    models.BoolPtr(true),
		EmploymentType:    models.EmploymentSalaried,
		IncomeAmount:      models.Float64Ptr(6000),
		IncomeType:        models.IncomeMonthly,
		CreditCategory:    models.CreditGood,
		DownPaymentSaved:  models.BoolPtr(true),
		DownPaymentAmount: models.Float64Ptr(15000),
		AssistanceOpen:    models.BoolPtr(false),
		MonthlyDebts:      " $400 car loan ",
		HasCreditIssues:   models.BoolPtr(true),
		CreditIssues: &models.CreditIssues{
			Collections:        true,
			CollectionsDetails: &models.CreditIssueDetails{Amount: models.Float64Ptr(800), Timeframe: "2 years", InCollection: true},
			Medical:            true,
		},
		IDType:   models.IDTypeSSN,
		Name:     "  Ana Lopez ",
		Phone:    "555.123.4567",
		Email:    " ana@example.com",
		Comments: "Prefer evenings. ",
	}

	want := models.Submission{
		Name:           "Ana Lopez",
		Phone:          "(555) 123-4567",
		Email:          "ana@example.com",
		IncomeAnnual:   72000,
		IncomeMonthly:  6000,
		LegalStatus:    "US Citizen",
		CreditCategory: "Good",
		EmploymentType: "W-2",
		CreditIssues: models.SubmissionCreditIssues{
			HasCreditIssues: true,
			Collections:     true,
			Medical:         true,
			Details:         "Collections: $800, 2 years ago, In collection; Medical: $unknown, unknown ago, Not in collection",
		},
		Comments:             "Prefer evenings.\n\nCredit Issues: Collections: $800, 2 years ago, In collection; Medical: $unknown, unknown ago, Not in collection",
		DownPaymentSaved:     true,
		DownPaymentAmount:    models.Float64Ptr(15000),
		AssistanceInterested: models.BoolPtr(false),
		MonthlyDebts:         "$400 car loan",
		Timeline:             models.TimelineWithin3Months,
		FirstTimeBuyer:       models.BoolPtr(true),
		Agent:                "maria",
		Campaign:             "homebuyer-prequalification",
		Qualified:            true,
		ConsentGiven:         true,
	}

	got := Transform(r, "maria")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Transform() mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_CollectionsClause(t *testing.T) {
	r := &models.IntakeRecord{
		HasCreditIssues: models.BoolPtr(true),
		CreditIssues: &models.CreditIssues{
			Collections: true,
			CollectionsDetails: &models.CreditIssueDetails{
				Amount:       models.Float64Ptr(800),
				Timeframe:    "2 years",
				InCollection: true,
			},
		},
	}

	got := Transform(r, "")
	assert.Contains(t, got.CreditIssues.Details, "Collections: $800, 2 years ago, In collection")
	assert.Equal(t, "Credit Issues: "+got.CreditIssues.Details, got.Comments)
}

func TestTransform_EmptyRecord(t *testing.T) {
	want := models.Submission{
		LegalStatus:    "Undocumented",
		CreditCategory: "Fair",
		EmploymentType: "W-2",
		Campaign:       "homebuyer-prequalification",
		Qualified:      true,
		ConsentGiven:   true,
	}

	if diff := cmp.Diff(want, Transform(nil, "")); diff != "" {
		t.Errorf("Transform(nil) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, Transform(&models.IntakeRecord{}, "")); diff != "" {
		t.Errorf("Transform(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_IncomeInvariant(t *testing.T) {
	tests := []struct {
		name    string
		amount  *float64
		unit    models.IncomeType
		monthly float64
	}{
		{name: "annual", amount: models.Float64Ptr(60000), unit: models.IncomeAnnual, monthly: 5000},
		{name: "unit defaults to annual", amount: models.Float64Ptr(50000), monthly: 50000.0 / 12},
		{name: "monthly", amount: models.Float64Ptr(4321.5), unit: models.IncomeMonthly, monthly: 4321.5},
		{name: "odd annual", amount: models.Float64Ptr(100001), unit: models.IncomeAnnual, monthly: 100001.0 / 12},
		{name: "absent", amount: nil},
		{name: "negative", amount: models.Float64Ptr(-10), unit: models.IncomeMonthly},
		{name: "nan", amount: models.Float64Ptr(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(&models.IntakeRecord{IncomeAmount: tt.amount, IncomeType: tt.unit}, "")
			assert.Equal(t, tt.monthly, got.IncomeMonthly)
			assert.Equal(t, got.IncomeMonthly*12, got.IncomeAnnual)
		})
	}
}

func TestTransform_IssuesIgnoredWhenNotDeclared(t *testing.T) {
	r := &models.IntakeRecord{
		HasCreditIssues: models.BoolPtr(false),
		CreditIssues:    &models.CreditIssues{Bankruptcy: true},
		Comments:        "hi",
	}

	got := Transform(r, "")
	assert.Equal(t, models.SubmissionCreditIssues{}, got.CreditIssues)
	assert.Equal(t, "hi", got.Comments)
}

func TestTransform_CampaignOverride(t *testing.T) {
	tr := NewTransformer("spring-open-house")
	assert.Equal(t, "spring-open-house", tr.Transform(&models.IntakeRecord{}, "").Campaign)
	assert.Equal(t, "radio", tr.Transform(&models.IntakeRecord{Campaign: "radio"}, "").Campaign)
}

func TestTransform_DoesNotAliasInput(t *testing.T) {
	r := &models.IntakeRecord{DownPaymentAmount: models.Float64Ptr(1000), FirstTimeBuyer: models.BoolPtr(true)}
	got := Transform(r, "")

	*r.DownPaymentAmount = 2
	*r.FirstTimeBuyer = false
	assert.Equal(t, 1000.0, *got.DownPaymentAmount)
	assert.True(t, *got.FirstTimeBuyer)
}

// ==========================
// Exhaustive mappings
// ==========================

func TestLegalStatus_AllIDTypes(t *testing.T) {
	expected := map[models.IDType]string{
		models.IDTypeSSN:        "US Citizen",
		models.IDTypeITIN:       "Permanent Resident",
		models.IDTypeNone:       "Undocumented",
		models.IDTypeUnanswered: "Undocumented",
	}
	for _, id := range append(models.AllIDTypes(), models.IDTypeUnanswered) {
		want, ok := expected[id]
		if !assert.True(t, ok, "no expectation for %q", id) {
			continue
		}
		assert.Equal(t, want, LegalStatus(id))
	}
}

func TestCreditCategoryLabel_AllCategories(t *testing.T) {
	expected := map[models.CreditCategory]string{
		models.CreditExcellent:  "Excellent",
		models.CreditGood:       "Good",
		models.CreditFair:       "Fair",
		models.CreditPoor:       "Poor",
		models.CreditUnknown:    "Fair",
		models.CreditUnanswered: "Fair",
	}
	for _, c := range models.AllCreditCategories() {
		_, mapped := creditCategoryLabels[c]
		assert.True(t, mapped, "category %q has no label", c)
		assert.Equal(t, expected[c], CreditCategoryLabel(c))
	}
	assert.Equal(t, "Fair", CreditCategoryLabel(models.CreditUnanswered))
}

func TestSubmissionEmploymentType_AllTypes(t *testing.T) {
	for _, e := range append(models.AllEmploymentTypes(), models.EmploymentUnanswered) {
		want := "W-2"
		if e == models.EmploymentSelfEmployed1099 {
			want = "1099"
		}
		assert.Equal(t, want, SubmissionEmploymentType(e), string(e))
	}
}

func TestCreditIssueLabels_AllKinds(t *testing.T) {
	for _, kind := range models.AllCreditIssueKinds() {
		assert.NotEmpty(t, creditIssueLabels[kind], string(kind))
	}
}
