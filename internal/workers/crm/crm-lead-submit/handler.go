package crmleadsubmit

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/config"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
	"homebuyer-prequal/internal/common/zoho"
)

const TaskType = "crm.lead.submit"

type Handler struct {
	config  *Config
	service *Service
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	// CRM overrides the Zoho client built from the config.
	CRM    CRM
	Redis  redis.Cmdable
	Logger logger.Logger
}

// NewHandler wires the Zoho client when credentials are configured. Without
// them the worker still starts and every job fails with CRM_NOT_CONFIGURED.
func NewHandler(opts HandlerOptions) *Handler {
	cfg := opts.CustomConfig
	if cfg == nil {
		cfg = LoadConfig(opts.AppConfig)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	crm := opts.CRM
	if crm == nil && cfg.Zoho.Configured() {
		crm = zoho.NewCRMClient(cfg.Zoho)
	}
	if crm == nil {
		log.Warn("zoho credentials missing, leads will not be submitted", nil)
	}

	return &Handler{
		config: cfg,
		service: NewService(ServiceDependencies{
			CRM:    crm,
			Redis:  opts.Redis,
			Logger: log,
		}, cfg),
		errors: errors.NewErrorHandler(log),
		logger: log,
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
	h.logger.Info("job completed", map[string]interface{}{"jobKey": job.Key, "lead": output.String()})
	timer.Done("")
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.Execute(ctx, input)
}
