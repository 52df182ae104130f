package transformsubmission

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
	"homebuyer-prequal/internal/common/validation"
	"homebuyer-prequal/internal/models"
	"homebuyer-prequal/internal/prequal"
)

const TaskType = "transform-submission"

type Handler struct {
	config      *Config
	transformer *prequal.Transformer
	classifier  *prequal.Classifier
	errors      *errors.ErrorHandler
	logger      logger.Logger
}

func NewHandler(config *Config, classifier *prequal.Classifier, log logger.Logger) *Handler {
	if classifier == nil {
		classifier = prequal.NewClassifier(nil)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		transformer: prequal.NewTransformer(config.DefaultCampaign),
		classifier:  classifier,
		errors:      errors.NewErrorHandler(log),
		logger:      log,
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	record := input.Intake
	if record == nil {
		record = &models.IntakeRecord{}
	}

	if err := check(validation.IntakeSchema(), record, errors.NewIntakeValidationError); err != nil {
		return nil, err
	}

	if record.IDType == models.IDTypeUnanswered {
		h.logger.Warn("idType unanswered, legal status mapped to default", map[string]interface{}{
			"legalStatus": prequal.LegalStatus(record.IDType),
		})
	}

	submission := h.transformer.Transform(record, input.SelectedAgent)
	if err := check(validation.SubmissionSchema(), &submission, errors.NewSubmissionSchemaError); err != nil {
		return nil, err
	}

	result := h.classifier.Evaluate(record)
	h.logger.Info("submission built", map[string]interface{}{
		"agent":          submission.Agent,
		"campaign":       submission.Campaign,
		"legalStatus":    submission.LegalStatus,
		"creditCategory": submission.CreditCategory,
		"category":       result.Category,
	})

	return &Output{
		Submission:            submission,
		Qualifies:             result.Qualifies,
		QualificationCategory: result.Category,
		IDTypeAnswered:        record.IDType != models.IDTypeUnanswered,
	}, nil
}

func check(schema *validation.Schema, doc interface{}, wrap func(string) *errors.StandardError) error {
	result, err := schema.Validate(doc)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !result.Valid {
		return wrap(result.Summary())
	}
	return nil
}
