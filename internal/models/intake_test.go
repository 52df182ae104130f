package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeRecord_UnmarshalJobVariables(t *testing.T) {
	raw := `{
		"timeline": "within-3-months",
		"employmentType": "self-employed-1099",
		"selfEmployedYears": 3,
		"incomeAmount": 5200,
		"incomeType": "monthly",
		"creditCategory": "fair",
		"downPaymentSaved": false,
		"hasCreditIssues": true,
		"creditIssues": {
			"collections": true,
			"collectionsDetails": {"amount": 800, "timeframe": "2 years", "inCollection": true}
		},
		"idType": "ITIN",
		"phone": "5551234567"
	}`

	var r IntakeRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, TimelineWithin3Months, r.Timeline)
	assert.Equal(t, IncomeMonthly, r.ResolvedIncomeType())
	assert.True(t, r.HasIncome())
	require.NotNil(t, r.DownPaymentSaved)
	assert.False(t, *r.DownPaymentSaved)
	assert.Nil(t, r.AssistanceOpen)
	assert.Equal(t, 3, *r.ActiveSelfEmployedYears())

	issues := r.ActiveCreditIssues()
	require.NotNil(t, issues)
	assert.True(t, issues.Flagged(CreditIssueCollections))
	assert.False(t, issues.Flagged(CreditIssueMedical))
	assert.Equal(t, 800.0, *issues.Details(CreditIssueCollections).Amount)
	assert.Nil(t, issues.Details(CreditIssueBankruptcy))
}

func TestIntakeRecord_EmptyMarshalsToEmptyObject(t *testing.T) {
	data, err := json.Marshal(IntakeRecord{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestIntakeRecord_ConditionalFields(t *testing.T) {
	r := IntakeRecord{
		EmploymentType:    EmploymentSalaried,
		SelfEmployedYears: IntPtr(4),
		CreditIssues:      &CreditIssues{Bankruptcy: true},
	}
	assert.Nil(t, r.ActiveSelfEmployedYears())
	assert.Nil(t, r.ActiveCreditIssues())

	r.HasCreditIssues = BoolPtr(true)
	assert.NotNil(t, r.ActiveCreditIssues())
}

func TestIntakeRecord_IncomeType(t *testing.T) {
	var r IntakeRecord
	assert.Equal(t, IncomeAnnual, r.ResolvedIncomeType())
	assert.False(t, r.HasIncome())

	r.SetIncome(4000, "")
	assert.Equal(t, IncomeAnnual, r.IncomeType)

	r.SetIncome(4000, IncomeMonthly)
	assert.Equal(t, IncomeMonthly, r.ResolvedIncomeType())
}

func TestIntakeRecord_Phone(t *testing.T) {
	var r IntakeRecord
	r.SetPhone("555-123-4567 ext 9")
	assert.Equal(t, "(555) 123-4567", r.Phone)
	assert.Equal(t, "5551234567", r.PhoneDigits())
}

func TestEnumerations_ExcludeUnanswered(t *testing.T) {
	assert.NotContains(t, AllTimelines(), TimelineUnanswered)
	assert.NotContains(t, AllEmploymentTypes(), EmploymentUnanswered)
	assert.NotContains(t, AllCreditCategories(), CreditUnanswered)
	assert.NotContains(t, AllIDTypes(), IDTypeUnanswered)

	assert.Len(t, AllTimelines(), 5)
	assert.Len(t, AllEmploymentTypes(), 5)
	assert.Len(t, AllCreditCategories(), 5)
	assert.Len(t, AllIDTypes(), 3)
	assert.Len(t, AllCreditIssueKinds(), 5)
}

func TestSubmission_JSONShape(t *testing.T) {
	s := Submission{
		Name:           "Ana",
		LegalStatus:    LegalStatusCitizen,
		CreditCategory: "Good",
		EmploymentType: SubmissionEmploymentW2,
		CreditIssues:   SubmissionCreditIssues{HasCreditIssues: false},
		Campaign:       DefaultCampaign,
		Qualified:      true,
		ConsentGiven:   true,
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, map[string]interface{}{"hasCreditIssues": false}, m["creditIssues"])
	assert.Equal(t, 0.0, m["incomeAnnual"])
	assert.NotContains(t, m, "downPaymentAmount")
	assert.NotContains(t, m, "assistanceInterested")
	assert.Equal(t, "homebuyer-prequalification", m["campaign"])
}
