package resolveintakestep

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
	"homebuyer-prequal/internal/prequal"
)

const TaskType = "resolve-intake-step"

type Handler struct {
	config    *Config
	navigator *prequal.Navigator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

// NewHandler uses the default twelve-step navigator when navigator is nil.
func NewHandler(config *Config, navigator *prequal.Navigator, log logger.Logger) *Handler {
	if navigator == nil {
		navigator = prequal.DefaultNavigator()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		navigator: navigator,
		errors:    errors.NewErrorHandler(log),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)
	h.logger.Debug("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, timer, errors.NewInputParsingError(err))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, timer, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"jobKey": job.Key, "error": err})
		timer.Done(string(errors.CodeOf(err)))
		return
	}
	timer.Done("")
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	h.errors.HandleJobError(ctx, client, job, err)
	timer.Done(string(errors.CodeOf(err)))
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	current := prequal.Step(input.CurrentStep)
	// No step yet means the intake has not started; next lands on step 1.
	started := current != 0 || input.CurrentStepName != ""
	if input.CurrentStepName != "" {
		step, ok := prequal.ParseStep(input.CurrentStepName)
		if !ok {
			return nil, errors.NewIntakeValidationError(fmt.Sprintf("unknown step name %q", input.CurrentStepName))
		}
		current = step
	}
	current = h.navigator.Clamp(current)

	path := h.navigator.Path(input.Intake)
	output := &Output{TotalSteps: h.navigator.TotalSteps()}

	switch input.Direction {
	case DirectionNext, "":
		if started {
			current = h.navigator.NextStep(current, input.Intake)
		}
	case DirectionPrevious:
		current = h.navigator.PreviousStep(current, input.Intake)
	case DirectionPath:
		output.StepPath = stepNames(path)
	default:
		return nil, errors.NewInvalidStepDirectionError(string(input.Direction))
	}

	output.CurrentStep = int(current)
	output.StepName = current.String()
	output.IsFirstStep = current == 1
	output.IsLastStep = int(current) == output.TotalSteps
	output.StepsVisited = visitedBefore(path, current)

	h.logger.Debug("step resolved", map[string]interface{}{
		"direction": input.Direction,
		"step":      output.StepName,
	})
	return output, nil
}

// visitedBefore counts path entries up to and including current, for progress
// display. A step the record would not visit counts as its predecessor's slot.
func visitedBefore(path []prequal.Step, current prequal.Step) int {
	n := 0
	for _, s := range path {
		if s > current {
			break
		}
		n++
	}
	return n
}

func stepNames(path []prequal.Step) []string {
	names := make([]string, len(path))
	for i, s := range path {
		names[i] = s.String()
	}
	return names
}
