package prequal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebuyer-prequal/internal/models"
)

func unemployed() *models.IntakeRecord {
	return &models.IntakeRecord{EmploymentType: models.EmploymentUnemployed}
}

func TestTotalSteps(t *testing.T) {
	assert.Equal(t, 12, TotalSteps())
	assert.Equal(t, 12, TotalStepCount)
}

func TestNextStep(t *testing.T) {
	tests := []struct {
		name     string
		current  Step
		record   *models.IntakeRecord
		expected Step
	}{
		{name: "plain advance", current: 1, record: &models.IntakeRecord{}, expected: 2},
		{name: "employed at employment", current: 3, record: &models.IntakeRecord{EmploymentType: models.EmploymentSalaried}, expected: 4},
		{name: "unemployed skips income", current: 3, record: unemployed(), expected: 6},
		{name: "unemployed elsewhere", current: 4, record: unemployed(), expected: 5},
		{name: "last step stays", current: 12, record: unemployed(), expected: 12},
		{name: "nil record", current: 3, record: nil, expected: 4},
		{name: "below range clamps", current: -4, record: nil, expected: 2},
		{name: "above range clamps", current: 40, record: nil, expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextStep(tt.current, tt.record))
		})
	}
}

func TestPreviousStep(t *testing.T) {
	tests := []struct {
		name     string
		current  Step
		record   *models.IntakeRecord
		expected Step
	}{
		{name: "plain retreat", current: 5, record: &models.IntakeRecord{}, expected: 4},
		{name: "employed at credit", current: 6, record: &models.IntakeRecord{EmploymentType: models.EmploymentRetired}, expected: 5},
		{name: "unemployed skips income", current: 6, record: unemployed(), expected: 3},
		{name: "first step stays", current: 1, record: nil, expected: 1},
		{name: "above range clamps", current: 99, record: nil, expected: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PreviousStep(tt.current, tt.record))
		})
	}
}

func TestNavigator_RoundTrip(t *testing.T) {
	records := map[string]*models.IntakeRecord{
		"empty":      {},
		"salaried":   {EmploymentType: models.EmploymentSalaried},
		"1099":       {EmploymentType: models.EmploymentSelfEmployed1099},
		"unemployed": unemployed(),
	}

	for name, r := range records {
		t.Run(name, func(t *testing.T) {
			path := DefaultNavigator().Path(r)
			for i := 0; i < len(path)-1; i++ {
				next := NextStep(path[i], r)
				require.Equal(t, path[i+1], next)
				assert.Equal(t, path[i], PreviousStep(next, r), "from %s", path[i])
			}
		})
	}
}

func TestNavigator_UnemployedPair(t *testing.T) {
	r := unemployed()
	assert.Equal(t, StepCredit, NextStep(StepEmployment, r))
	assert.Equal(t, StepEmployment, PreviousStep(StepCredit, r))
}

func TestNavigator_Path(t *testing.T) {
	assert.Len(t, DefaultNavigator().Path(&models.IntakeRecord{}), 12)

	path := DefaultNavigator().Path(unemployed())
	assert.Len(t, path, 10)
	assert.NotContains(t, path, StepSelfEmployment)
	assert.NotContains(t, path, StepIncome)
	assert.Equal(t, StepSummary, path[len(path)-1])
}

func TestNewNavigator_Validation(t *testing.T) {
	always := func(*models.IntakeRecord) bool { return true }

	tests := []struct {
		name  string
		total int
		edges []Edge
	}{
		{name: "no steps", total: 0},
		{name: "nil predicate", total: 12, edges: []Edge{{Name: "a", From: 2, To: 5}}},
		{name: "backward edge", total: 12, edges: []Edge{{Name: "a", From: 5, To: 2, When: always}}},
		{name: "edge to next step", total: 12, edges: []Edge{{Name: "a", From: 5, To: 6, When: always}}},
		{name: "out of range", total: 12, edges: []Edge{{Name: "a", From: 10, To: 13, When: always}}},
		{name: "overlapping", total: 12, edges: []Edge{
			{Name: "a", From: 2, To: 5, When: always},
			{Name: "b", From: 4, To: 8, When: always},
		}},
		{name: "touching", total: 12, edges: []Edge{
			{Name: "a", From: 2, To: 5, When: always},
			{Name: "b", From: 5, To: 8, When: always},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNavigator(tt.total, tt.edges)
			assert.Error(t, err)
		})
	}
}

func TestNewNavigator_CustomTable(t *testing.T) {
	noIncome := func(r *models.IntakeRecord) bool { return !r.HasIncome() }
	n, err := NewNavigator(12, []Edge{
		{Name: "skip-assistance", From: StepDownPayment, To: StepMonthlyDebts, When: noIncome},
		{Name: "skip-income", From: StepEmployment, To: StepCredit, When: IsUnemployed},
	})
	require.NoError(t, err)

	r := unemployed()
	assert.Equal(t, StepMonthlyDebts, n.NextStep(StepDownPayment, r))
	assert.Equal(t, StepDownPayment, n.PreviousStep(StepMonthlyDebts, r))
	assert.Len(t, n.Path(r), 9)
}

func TestStepNames(t *testing.T) {
	for s := Step(1); int(s) <= TotalStepCount; s++ {
		parsed, ok := ParseStep(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "step-13", Step(13).String())

	_, ok := ParseStep("nope")
	assert.False(t, ok)
}
