package classifyqualification

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
	"homebuyer-prequal/internal/models"
	"homebuyer-prequal/internal/prequal"
)

const TaskType = "classify-qualification"

type Handler struct {
	config     *Config
	classifier *prequal.Classifier
	errors     *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, classifier *prequal.Classifier, log logger.Logger) *Handler {
	if classifier == nil {
		classifier = prequal.NewClassifier(nil)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		classifier: classifier,
		errors:     errors.NewErrorHandler(log),
		logger:     log,
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

	output, _ := h.Execute(ctx, &input)

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"jobKey": job.Key, "error": err})
		timer.Done(string(errors.CodeOf(err)))
		return
	}
	timer.Done("")
}

// Execute never fails; a missing record classifies as an empty one.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	result := h.classifier.Evaluate(input.Intake)
	metrics.QualificationOutcomes.WithLabelValues(string(result.Category)).Inc()

	h.logger.Info("intake classified", map[string]interface{}{
		"qualifies":     result.Qualifies,
		"category":      result.Category,
		"disqualifiers": result.Disqualifiers,
		"fixes":         result.Fixes,
	})

	output := &Output{
		Qualifies:             result.Qualifies,
		QualificationCategory: result.Category,
		Disqualifiers:         result.Disqualifiers,
		FixReasons:            result.Fixes,
	}
	// Empty lists rather than null so gateway expressions can call count().
	if output.Disqualifiers == nil {
		output.Disqualifiers = []models.Disqualifier{}
	}
	if output.FixReasons == nil {
		output.FixReasons = []models.FixReason{}
	}
	return output, nil
}
