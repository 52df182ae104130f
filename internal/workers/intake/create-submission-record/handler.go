package createsubmissionrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/database"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
)

const (
	TaskType = "create-submission-record"

	statusReceived = "received"
)

const insertSubmission = `
	INSERT INTO submissions (
		id, name, email, phone, agent, campaign, legal_status, credit_category,
		employment_type, income_annual, qualification_category, overall_score,
		payload, status, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

const selectSubmission = `
	SELECT status, created_at FROM submissions WHERE id = $1`

// submissionNamespace scopes ids derived from process instance keys.
var submissionNamespace = uuid.MustParse("4f9c6d0e-2b1a-5e7f-8c3d-9a0b1c2d3e4f")

const insertAudit = `
	INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
	VALUES ($1, $2, $3, $4, $5)`

type Handler struct {
	config *Config
	db     *sql.DB
	now    func() time.Time
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		db:     db,
		now:    time.Now,
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

	input.ProcessInstanceKey = job.ProcessInstanceKey
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

// Execute stores the submission and its audit entry in one transaction.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	s := input.Submission
	if s == nil {
		return nil, errors.NewIntakeValidationError("submission is required")
	}

	id := input.SubmissionID
	derived := false
	switch {
	case id == "" && input.ProcessInstanceKey != 0:
		id = SubmissionIDFor(input.ProcessInstanceKey)
		derived = true
	case id == "":
		id = uuid.New().String()
	default:
		if _, err := uuid.Parse(id); err != nil {
			return nil, errors.NewIntakeValidationError(fmt.Sprintf("submissionId %q is not a UUID", id))
		}
	}
	createdAt := h.now().UTC()

	payload, err := json.Marshal(s)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	audit, err := json.Marshal(map[string]interface{}{
		"agent":                 s.Agent,
		"campaign":              s.Campaign,
		"qualificationCategory": input.QualificationCategory,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	err = database.WithTx(ctx, h.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertSubmission,
			id,
			s.Name,
			s.Email,
			s.PhoneDigits(),
			s.Agent,
			s.Campaign,
			s.LegalStatus,
			s.CreditCategory,
			s.EmploymentType,
			s.IncomeAnnual,
			nullString(string(input.QualificationCategory)),
			nullFloat(input.OverallScore),
			payload,
			statusReceived,
			createdAt,
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertAudit, "submission_created", "submission", id, audit, createdAt)
		return err
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			if derived {
				// An earlier attempt for this process instance committed.
				return h.existing(ctx, id)
			}
			return nil, errors.NewDuplicateSubmissionError(id)
		}
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("submission record created", map[string]interface{}{
		"submissionId": id,
		"agent":        s.Agent,
		"campaign":     s.Campaign,
	})

	return &Output{
		SubmissionID:     id,
		SubmissionStatus: statusReceived,
		CreatedAt:        createdAt.Format(time.RFC3339),
	}, nil
}

// SubmissionIDFor derives the submission id of a process instance, so a
// retried job maps to the row its first attempt wrote.
func SubmissionIDFor(processInstanceKey int64) string {
	return uuid.NewSHA1(submissionNamespace, []byte(strconv.FormatInt(processInstanceKey, 10))).String()
}

func (h *Handler) existing(ctx context.Context, id string) (*Output, error) {
	var (
		status    string
		createdAt time.Time
	)
	if err := h.db.QueryRowContext(ctx, selectSubmission, id).Scan(&status, &createdAt); err != nil {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}
	h.logger.Info("submission record already exists", map[string]interface{}{"submissionId": id})
	return &Output{
		SubmissionID:     id,
		SubmissionStatus: status,
		CreatedAt:        createdAt.UTC().Format(time.RFC3339),
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
