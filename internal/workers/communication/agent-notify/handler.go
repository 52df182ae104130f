package agentnotify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"homebuyer-prequal/internal/common/aws"
	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
	"homebuyer-prequal/internal/models"
)

const TaskType = "agent-notify"

type Handler struct {
	config *Config
	email  *aws.EmailSender
	sms    *aws.SMSSender
	now    func() time.Time
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, sesClient aws.SESService, snsClient aws.SNSService, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	h := &Handler{
		config: config,
		now:    time.Now,
		errors: errors.NewErrorHandler(log),
		logger: log,
	}
	if sesClient != nil {
		h.email = aws.NewEmailSender(sesClient, config.FromEmail)
	}
	if snsClient != nil {
		h.sms = aws.NewSMSSender(snsClient, config.SMSSenderID)
	}
	return h
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

// Execute e-mails the agent and, for ready leads, sends an SMS as well. A
// failed e-mail fails the job so it is retried. A failed SMS after a
// delivered e-mail is only reported, since a retry would repeat the e-mail.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Submission == nil {
		return nil, errors.NewIntakeValidationError("submission is required")
	}

	output := &Output{
		NotificationID: uuid.New().String(),
		EmailStatus:    StatusDisabled,
		SMSStatus:      StatusDisabled,
		SentAt:         h.now().UTC().Format(time.RFC3339),
	}
	data := newTemplateData(input)

	if h.config.EmailEnabled && h.email != nil {
		output.EmailStatus = StatusSkipped
		if to := firstNonEmpty(input.AgentEmail, h.config.AgentEmail); to != "" {
			if err := h.sendEmail(ctx, to, data); err != nil {
				return nil, errors.NewNotificationSendFailedError("email", err)
			}
			output.EmailStatus = StatusSent
		}
	}

	if h.config.SMSEnabled && h.sms != nil {
		output.SMSStatus = StatusSkipped
		to := firstNonEmpty(input.AgentPhone, h.config.AgentPhone)
		if to != "" && input.QualificationCategory == models.CategoryReady {
			output.SMSStatus = StatusSent
			if err := h.sendSMS(ctx, to, data); err != nil {
				if output.EmailStatus != StatusSent {
					return nil, errors.NewNotificationSendFailedError("sms", err)
				}
				h.logger.Error("sms send failed", map[string]interface{}{"error": err.Error()})
				output.SMSStatus = StatusFailed
			}
		}
	}

	output.Status = overallStatus(output.EmailStatus, output.SMSStatus)
	h.logger.Info("agent notified", map[string]interface{}{
		"notificationId": output.NotificationID,
		"submissionId":   input.SubmissionID,
		"email":          output.EmailStatus,
		"sms":            output.SMSStatus,
	})
	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, to string, data templateData) error {
	subject, err := render(subjectTemplate, data)
	if err != nil {
		return err
	}
	body, err := render(bodyTemplate, data)
	if err != nil {
		return err
	}
	if _, err := h.email.Send(ctx, aws.Email{To: []string{to}, Subject: subject, TextBody: body}); err != nil {
		return err
	}
	metrics.NotificationsSent.WithLabelValues("email").Inc()
	return nil
}

func (h *Handler) sendSMS(ctx context.Context, to string, data templateData) error {
	msg, err := render(smsTemplate, data)
	if err != nil {
		return err
	}
	if _, err := h.sms.Send(ctx, to, msg); err != nil {
		return err
	}
	metrics.NotificationsSent.WithLabelValues("sms").Inc()
	return nil
}

func overallStatus(statuses ...string) string {
	status := StatusDisabled
	for _, s := range statuses {
		switch s {
		case StatusSent:
			status = StatusSent
		case StatusFailed:
			if status != StatusSent {
				status = StatusFailed
			}
		case StatusSkipped:
			if status == StatusDisabled {
				status = StatusSkipped
			}
		}
	}
	return status
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
