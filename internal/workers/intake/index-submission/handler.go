package indexsubmission

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/database"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
)

const TaskType = "index-submission"

// Indexer is satisfied by *database.ElasticsearchClient.
type Indexer interface {
	IndexDocument(ctx context.Context, index, id string, doc interface{}) (*database.IndexResult, error)
}

type Handler struct {
	config  *Config
	indexer Indexer
	now     func() time.Time
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, indexer Indexer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		indexer: indexer,
		now:     time.Now,
		errors:  errors.NewErrorHandler(log),
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(ctx, client, job, errors.NewInputParsingError(err))
		timer.Done(string(errors.ErrCodeInputParsingFailed))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		timer.Done(string(errors.CodeOf(err)))
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"jobKey": job.Key, "error": err})
		timer.Done(string(errors.CodeOf(err)))
		return
	}
	timer.Done("")
}

// Execute indexes the submission under its ID, so a retried job overwrites
// the same document.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SubmissionID == "" || input.Submission == nil {
		return nil, errors.NewIntakeValidationError("submissionId and submission are required")
	}

	doc := buildDocument(input, h.now())
	res, err := h.indexer.IndexDocument(ctx, h.config.IndexName, input.SubmissionID, doc)
	if err != nil {
		return nil, errors.NewIndexFailedError(h.config.IndexName, err)
	}

	h.logger.Info("submission indexed", map[string]interface{}{
		"submissionId": input.SubmissionID,
		"index":        res.Index,
		"result":       res.Result,
		"version":      res.Version,
	})

	return &Output{
		Indexed:         true,
		IndexName:       h.config.IndexName,
		DocumentVersion: res.Version,
		IndexResult:     res.Result,
	}, nil
}

func buildDocument(input *Input, now time.Time) SearchDocument {
	s := input.Submission
	return SearchDocument{
		SubmissionID:          input.SubmissionID,
		Name:                  s.Name,
		Email:                 s.Email,
		Phone:                 s.Phone,
		PhoneDigits:           s.PhoneDigits(),
		Agent:                 s.Agent,
		Campaign:              s.Campaign,
		LegalStatus:           s.LegalStatus,
		CreditCategory:        s.CreditCategory,
		EmploymentType:        s.EmploymentType,
		IncomeAnnual:          s.IncomeAnnual,
		HasCreditIssues:       s.CreditIssues.HasCreditIssues,
		Timeline:              s.Timeline,
		QualificationCategory: input.QualificationCategory,
		OverallScore:          input.OverallScore,
		IndexedAt:             now.UTC().Format(time.RFC3339),
	}
}

var _ Indexer = (*database.ElasticsearchClient)(nil)
