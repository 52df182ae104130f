package crmleadsubmit

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/zoho"
	"homebuyer-prequal/internal/models"
)

const (
	provider             = "zoho"
	idempotencyKeyPrefix = "prequal:crm:lead:"
)

// CRM is the part of *zoho.CRMClient the service uses.
type CRM interface {
	CreateLead(ctx context.Context, lead *zoho.Lead) (string, error)
	SearchLeadsByEmail(ctx context.Context, email string) ([]zoho.Lead, error)
}

type ServiceDependencies struct {
	CRM    CRM
	Redis  redis.Cmdable
	Logger logger.Logger
}

type Service struct {
	config *Config
	crm    CRM
	redis  redis.Cmdable
	logger logger.Logger
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		crm:    deps.CRM,
		redis:  deps.Redis,
		logger: deps.Logger,
		now:    time.Now,
	}
}

// Execute creates one lead per submission. A lead already recorded for the
// submission ID, or an existing lead with the same email, is reused.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if s.crm == nil {
		return nil, errors.NewCRMNotConfiguredError()
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	status := leadStatus(input.QualificationCategory)
	output := &Output{LeadStatus: status, CRMProvider: provider, SubmittedAt: s.now().UTC()}

	if leadID, ok := s.recordedLead(ctx, input.SubmissionID); ok {
		output.LeadID = leadID
		output.Duplicate = true
		return output, nil
	}

	sub := input.Submission
	if sub.Email != "" {
		existing, err := s.crm.SearchLeadsByEmail(ctx, sub.Email)
		if err != nil {
			s.logger.Warn("lead search failed, creating a new lead", map[string]interface{}{
				"error": err.Error(),
			})
		} else if len(existing) > 0 {
			s.logger.Info("lead already exists in CRM", map[string]interface{}{
				"leadId":       existing[0].ID,
				"submissionId": input.SubmissionID,
			})
			output.LeadID = existing[0].ID
			output.Duplicate = true
			s.recordLead(ctx, input.SubmissionID, output.LeadID)
			return output, nil
		}
	}

	leadID, err := s.crm.CreateLead(ctx, buildLead(input, status))
	if err != nil {
		stdErr := errors.NewCRMAPIError("createLead", err)
		stdErr.Retryable = zoho.IsTemporary(err)
		return nil, stdErr
	}

	s.logger.Info("lead created", map[string]interface{}{
		"leadId":       leadID,
		"submissionId": input.SubmissionID,
		"status":       status,
	})
	output.LeadID = leadID
	s.recordLead(ctx, input.SubmissionID, leadID)
	return output, nil
}

func (s *Service) recordedLead(ctx context.Context, submissionID string) (string, bool) {
	if s.redis == nil {
		return "", false
	}
	leadID, err := s.redis.Get(ctx, idempotencyKeyPrefix+submissionID).Result()
	if err != nil {
		if !stderrors.Is(err, redis.Nil) {
			s.logger.Warn("idempotency lookup failed", map[string]interface{}{"error": err.Error()})
		}
		return "", false
	}
	return leadID, leadID != ""
}

// recordLead keeps the first lead ID written for a submission.
func (s *Service) recordLead(ctx context.Context, submissionID, leadID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.SetNX(ctx, idempotencyKeyPrefix+submissionID, leadID, s.config.IdempotencyTTL).Err(); err != nil {
		s.logger.Warn("idempotency write failed", map[string]interface{}{"error": err.Error()})
	}
}

func validateInput(input *Input) error {
	var problems []string
	if input.SubmissionID == "" {
		problems = append(problems, "submissionId is required")
	}
	if input.Submission == nil {
		problems = append(problems, "submission is required")
	} else {
		if strings.TrimSpace(input.Submission.Name) == "" {
			problems = append(problems, "submission.name is required")
		}
		if input.Submission.Email == "" && input.Submission.PhoneDigits() == "" {
			problems = append(problems, "submission needs an email or phone")
		}
	}
	if len(problems) > 0 {
		return errors.NewIntakeValidationError(strings.Join(problems, "; "))
	}
	return nil
}

func leadStatus(category models.QualificationCategory) string {
	if status, ok := leadStatusByCategory[category]; ok {
		return status
	}
	return defaultLeadStatus
}

func buildLead(input *Input, status string) *zoho.Lead {
	sub := input.Submission
	first, last := splitName(sub.Name)
	return &zoho.Lead{
		FirstName:      first,
		LastName:       last,
		Email:          sub.Email,
		Phone:          sub.Phone,
		LeadStatus:     status,
		Description:    sub.Comments,
		Income:         sub.IncomeAnnual,
		LegalStatus:    sub.LegalStatus,
		CreditCategory: sub.CreditCategory,
		EmploymentType: sub.EmploymentType,
		Timeline:       string(sub.Timeline),
		Campaign:       sub.Campaign,
		Agent:          sub.Agent,
		SubmissionID:   input.SubmissionID,
	}
}

// splitName puts everything but the last word in the first name. Zoho
// requires Last_Name, so a single word goes there.
func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return "", fields[0]
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
}

func (o *Output) String() string {
	return fmt.Sprintf("lead %s (%s, duplicate=%t)", o.LeadID, o.LeadStatus, o.Duplicate)
}
