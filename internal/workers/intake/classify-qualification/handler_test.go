package classifyqualification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
	"homebuyer-prequal/internal/models"
	"homebuyer-prequal/internal/prequal"
)

func newTestHandler(t *testing.T) *Handler {
	clock := func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
	return NewHandler(LoadConfig(nil), prequal.NewClassifier(clock), logger.NewTestLogger(t))
}

func TestExecute_Categories(t *testing.T) {
	tests := []struct {
		name          string
		intake        *models.IntakeRecord
		wantQualifies bool
		wantCategory  models.QualificationCategory
		wantDisq      []models.Disqualifier
		wantFixes     []models.FixReason
	}{
		{
			name: "ready",
			intake: &models.IntakeRecord{
				IDType:         models.IDTypeSSN,
				EmploymentType: models.EmploymentSalaried,
				CreditCategory: models.CreditGood,
			},
			wantQualifies: true,
			wantCategory:  models.CategoryReady,
			wantDisq:      []models.Disqualifier{},
			wantFixes:     []models.FixReason{},
		},
		{
			name: "fair credit needs fixes",
			intake: &models.IntakeRecord{
				IDType:         models.IDTypeSSN,
				CreditCategory: models.CreditFair,
			},
			wantQualifies: true,
			wantCategory:  models.CategoryFixesNeeded,
			wantDisq:      []models.Disqualifier{},
			wantFixes:     []models.FixReason{models.FixCreditCategory},
		},
		{
			name:          "no identification",
			intake:        &models.IntakeRecord{IDType: models.IDTypeNone, CreditCategory: models.CreditExcellent},
			wantQualifies: false,
			wantCategory:  models.CategoryNotReady,
			wantDisq:      []models.Disqualifier{models.DisqualifierNoIdentification},
			wantFixes:     []models.FixReason{},
		},
		{
			name: "bankruptcy last year",
			intake: &models.IntakeRecord{
				IDType:          models.IDTypeSSN,
				CreditIssueType: models.CreditIssueBankruptcy,
				CreditIssueYear: models.IntPtr(2024),
			},
			wantQualifies: false,
			wantCategory:  models.CategoryNotReady,
			wantDisq:      []models.Disqualifier{models.DisqualifierRecentMajorEvent},
			wantFixes:     []models.FixReason{},
		},
		{
			name:          "missing record",
			intake:        nil,
			wantQualifies: true,
			wantCategory:  models.CategoryReady,
			wantDisq:      []models.Disqualifier{},
			wantFixes:     []models.FixReason{},
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &Input{Intake: tt.intake})
			require.NoError(t, err)
			assert.Equal(t, tt.wantQualifies, out.Qualifies)
			assert.Equal(t, tt.wantCategory, out.QualificationCategory)
			assert.Equal(t, tt.wantDisq, out.Disqualifiers)
			assert.Equal(t, tt.wantFixes, out.FixReasons)
		})
	}
}

func TestExecute_RecordsOutcomeMetric(t *testing.T) {
	h := newTestHandler(t)
	counter := metrics.QualificationOutcomes.WithLabelValues(string(models.CategoryNotReady))
	before := testutil.ToFloat64(counter)

	_, err := h.Execute(context.Background(), &Input{Intake: &models.IntakeRecord{IDType: models.IDTypeNone}})
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestOutput_JSONVariables(t *testing.T) {
	h := newTestHandler(t)
	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"qualifies": true,
		"qualificationCategory": "ready",
		"disqualifiers": [],
		"fixReasons": []
	}`, string(raw))
}

func TestInput_FromJobVariables(t *testing.T) {
	var input Input
	err := json.Unmarshal([]byte(`{"intake":{"idType":"ITIN","creditCategory":"poor","downPaymentSaved":true}}`), &input)
	require.NoError(t, err)

	out, err := newTestHandler(t).Execute(context.Background(), &input)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFixesNeeded, out.QualificationCategory)
}
