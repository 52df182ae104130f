package crmleadsubmit

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"homebuyer-prequal/internal/common/config"
	"homebuyer-prequal/internal/common/errors"
	httpclient "homebuyer-prequal/internal/common/http"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/zoho"
	"homebuyer-prequal/internal/models"
)

type MockCRM struct {
	mock.Mock
}

func (m *MockCRM) CreateLead(ctx context.Context, lead *zoho.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockCRM) SearchLeadsByEmail(ctx context.Context, email string) ([]zoho.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]zoho.Lead), args.Error(1)
}

const submissionID = "6f1c2a4e-8a57-4f3e-9d43-0f4b7e0e9b11"

func testInput() *Input {
	return &Input{
		SubmissionID: submissionID,
		Submission: &models.Submission{
			Name:           "Ana Maria Ruiz",
			Phone:          "(555) 010-2030",
			Email:          "ana@example.com",
			IncomeAnnual:   72000,
			LegalStatus:    models.LegalStatusCitizen,
			CreditCategory: "Good",
			EmploymentType: models.SubmissionEmploymentW2,
			Comments:       "Prefers evening calls",
			Timeline:       models.TimelineWithin3Months,
			Agent:          "Maria Lopez",
			Campaign:       models.DefaultCampaign,
		},
		QualificationCategory: models.CategoryReady,
	}
}

func newTestHandler(t *testing.T, crm CRM, rdb redis.Cmdable) *Handler {
	return NewHandler(HandlerOptions{
		CustomConfig: DefaultConfig(),
		CRM:          crm,
		Redis:        rdb,
		Logger:       logger.NewTestLogger(t),
	})
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestExecute_CreatesLead(t *testing.T) {
	crm := new(MockCRM)
	mr, rdb := newMiniredis(t)

	crm.On("SearchLeadsByEmail", mock.Anything, "ana@example.com").Return([]zoho.Lead{}, nil)
	crm.On("CreateLead", mock.Anything, mock.MatchedBy(func(l *zoho.Lead) bool {
		return l.FirstName == "Ana Maria" &&
			l.LastName == "Ruiz" &&
			l.LeadStatus == "Pre-Qualified" &&
			l.SubmissionID == submissionID &&
			l.Timeline == "within-3-months" &&
			l.Income == 72000 &&
			l.Description == "Prefers evening calls"
	})).Return("lead-1001", nil)

	out, err := newTestHandler(t, crm, rdb).Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "lead-1001", out.LeadID)
	assert.Equal(t, "Pre-Qualified", out.LeadStatus)
	assert.Equal(t, "zoho", out.CRMProvider)
	assert.False(t, out.Duplicate)
	crm.AssertExpectations(t)

	stored, err := mr.Get(idempotencyKeyPrefix + submissionID)
	require.NoError(t, err)
	assert.Equal(t, "lead-1001", stored)
	assert.Equal(t, 24*time.Hour, mr.TTL(idempotencyKeyPrefix+submissionID))
}

func TestExecute_RetryReusesRecordedLead(t *testing.T) {
	crm := new(MockCRM)
	mr, rdb := newMiniredis(t)
	require.NoError(t, mr.Set(idempotencyKeyPrefix+submissionID, "lead-1001"))

	out, err := newTestHandler(t, crm, rdb).Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "lead-1001", out.LeadID)
	assert.True(t, out.Duplicate)
	crm.AssertNotCalled(t, "SearchLeadsByEmail", mock.Anything, mock.Anything)
	crm.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestExecute_ExistingLeadByEmail(t *testing.T) {
	crm := new(MockCRM)
	crm.On("SearchLeadsByEmail", mock.Anything, "ana@example.com").
		Return([]zoho.Lead{{ID: "lead-77", LastName: "Ruiz"}}, nil)

	out, err := newTestHandler(t, crm, nil).Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "lead-77", out.LeadID)
	assert.True(t, out.Duplicate)
	crm.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestExecute_SearchFailureStillCreates(t *testing.T) {
	crm := new(MockCRM)
	crm.On("SearchLeadsByEmail", mock.Anything, mock.Anything).Return(nil, stderrors.New("timeout"))
	crm.On("CreateLead", mock.Anything, mock.Anything).Return("lead-2", nil)

	out, err := newTestHandler(t, crm, nil).Execute(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "lead-2", out.LeadID)
	crm.AssertExpectations(t)
}

func TestExecute_CreateFailures(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"rate limited", &httpclient.StatusError{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", &httpclient.StatusError{StatusCode: http.StatusBadGateway}, true},
		{"invalid data", &httpclient.StatusError{StatusCode: http.StatusBadRequest}, false},
		{"network", stderrors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crm := new(MockCRM)
			crm.On("SearchLeadsByEmail", mock.Anything, mock.Anything).Return([]zoho.Lead{}, nil)
			crm.On("CreateLead", mock.Anything, mock.Anything).Return("", tt.err)

			_, err := newTestHandler(t, crm, nil).Execute(context.Background(), testInput())
			require.Error(t, err)

			stdErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeCRMAPIError, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

func TestExecute_RedisDownDoesNotBlockSubmission(t *testing.T) {
	crm := new(MockCRM)
	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectGet(idempotencyKeyPrefix + submissionID).SetErr(stderrors.New("connection refused"))
	rmock.ExpectSetNX(idempotencyKeyPrefix+submissionID, "lead-3", 24*time.Hour).SetErr(stderrors.New("connection refused"))

	crm.On("SearchLeadsByEmail", mock.Anything, mock.Anything).Return([]zoho.Lead{}, nil)
	crm.On("CreateLead", mock.Anything, mock.Anything).Return("lead-3", nil)

	out, err := newTestHandler(t, crm, rdb).Execute(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "lead-3", out.LeadID)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestExecute_NotConfigured(t *testing.T) {
	h := NewHandler(HandlerOptions{
		AppConfig: &config.Config{},
		Logger:    logger.NewNoOpLogger(),
	})

	_, err := h.Execute(context.Background(), testInput())
	require.Error(t, err)
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCRMNotConfigured, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestExecute_Validation(t *testing.T) {
	crm := new(MockCRM)
	h := newTestHandler(t, crm, nil)

	tests := []struct {
		name  string
		input *Input
		want  string
	}{
		{"no submission id", &Input{Submission: testInput().Submission}, "submissionId is required"},
		{"no submission", &Input{SubmissionID: submissionID}, "submission is required"},
		{"no name", &Input{SubmissionID: submissionID, Submission: &models.Submission{Email: "a@b.c"}}, "submission.name is required"},
		{"no contact", &Input{SubmissionID: submissionID, Submission: &models.Submission{Name: "Ana"}}, "email or phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			stdErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeIntakeValidationFailed, stdErr.Code)
			assert.Contains(t, stdErr.Details, tt.want)
		})
	}
	crm.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestLeadStatusAndName(t *testing.T) {
	assert.Equal(t, "Needs Follow-Up", leadStatus(models.CategoryFixesNeeded))
	assert.Equal(t, "Not Qualified", leadStatus(models.CategoryNotReady))
	assert.Equal(t, "Not Contacted", leadStatus(""))

	first, last := splitName("  Cher ")
	assert.Equal(t, "", first)
	assert.Equal(t, "Cher", last)
}

func TestLoadConfig(t *testing.T) {
	app := &config.Config{
		Workers: map[string]config.WorkerConfig{ConfigKey: {Enabled: true, Timeout: 4500}},
		Integrations: config.IntegrationConfig{
			Zoho: config.ZohoConfig{AuthToken: "tok", BaseURL: "https://crm.example.com"},
		},
	}
	cfg := LoadConfig(app)
	assert.Equal(t, 4500*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.Zoho.Configured())
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
}
