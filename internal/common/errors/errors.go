// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode is a stable identifier shared with the BPMN models.
type ErrorCode string

const (
	ErrCodeInputParsingFailed     ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeIntakeValidationFailed ErrorCode = "INTAKE_VALIDATION_FAILED"
	ErrCodeInvalidStepDirection   ErrorCode = "INVALID_STEP_DIRECTION"
	ErrCodeSubmissionSchema       ErrorCode = "SUBMISSION_SCHEMA_INVALID"

	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateSubmission  ErrorCode = "DUPLICATE_SUBMISSION"
	ErrCodeIndexFailed          ErrorCode = "INDEX_FAILED"
	ErrCodeCacheUnavailable     ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeCRMAPIError         ErrorCode = "CRM_API_ERROR"
	ErrCodeCRMNotConfigured    ErrorCode = "CRM_NOT_CONFIGURED"
	ErrCodeNotificationSendErr ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeWorkflowEngine ErrorCode = "WORKFLOW_ENGINE_ERROR"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error value every worker returns from Execute.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value that is forwarded to the BPMN error variables.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// As extracts a *StandardError from err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or INTERNAL_ERROR for foreign errors.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := As(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is what gets thrown to, or failed on, the Camunda engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the process variables set alongside a failure.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInputParsingError(err error) *StandardError {
	return newError(ErrCodeInputParsingFailed, "Failed to parse job variables", err.Error(), false, err)
}

func NewIntakeValidationError(details string) *StandardError {
	return newError(ErrCodeIntakeValidationFailed, "Intake record validation failed", details, false, nil)
}

func NewInvalidStepDirectionError(direction string) *StandardError {
	return newError(ErrCodeInvalidStepDirection, "Unsupported step direction",
		fmt.Sprintf("direction: %q", direction), false, nil)
}

func NewSubmissionSchemaError(details string) *StandardError {
	return newError(ErrCodeSubmissionSchema, "Submission does not match the output schema", details, false, nil)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error(), true, err)
}

func NewDuplicateSubmissionError(submissionID string) *StandardError {
	return newError(ErrCodeDuplicateSubmission, "Submission already exists",
		fmt.Sprintf("submissionId: %s", submissionID), false, nil)
}

func NewIndexFailedError(index string, err error) *StandardError {
	return newError(ErrCodeIndexFailed, "Search indexing failed",
		fmt.Sprintf("index: %s, error: %v", index, err), true, err)
}

func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Cache unavailable", err.Error(), true, err)
}

func NewCRMAPIError(operation string, err error) *StandardError {
	return newError(ErrCodeCRMAPIError, "CRM API request failed",
		fmt.Sprintf("operation: %s, error: %v", operation, err), true, err)
}

func NewCRMNotConfiguredError() *StandardError {
	return newError(ErrCodeCRMNotConfigured, "CRM integration is not configured",
		"missing Zoho credentials", false, nil)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendErr, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %v", channel, err), true, err)
}

// NewWorkflowEngineError wraps a failed Zeebe gateway call.
func NewWorkflowEngineError(operation string, err error, retryable bool) *StandardError {
	return newError(ErrCodeWorkflowEngine, fmt.Sprintf("Zeebe operation %s failed", operation), err.Error(), retryable, err).
		WithMetadata("operation", operation)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal codes to the error codes caught by boundary
// events. Codes absent from the map are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputParsingFailed:     "INTAKE_VALIDATION_FAILED",
	ErrCodeIntakeValidationFailed: "INTAKE_VALIDATION_FAILED",
	ErrCodeInvalidStepDirection:   "INVALID_STEP_DIRECTION",
	ErrCodeSubmissionSchema:       "SUBMISSION_SCHEMA_INVALID",
	ErrCodeDatabaseInsertFailed:   "DATABASE_INSERT_FAILED",
	ErrCodeDuplicateSubmission:    "DUPLICATE_SUBMISSION",
	ErrCodeIndexFailed:            "INDEX_FAILED",
	ErrCodeCacheUnavailable:       "CACHE_UNAVAILABLE",
	ErrCodeCRMAPIError:            "CRM_API_ERROR",
	ErrCodeCRMNotConfigured:       "CRM_NOT_CONFIGURED",
	ErrCodeNotificationSendErr:    "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount is the retry budget for a code. Zero means throw, don't fail.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseInsertFailed,
		ErrCodeIndexFailed,
		ErrCodeCRMAPIError,
		ErrCodeNotificationSendErr:
		return 3
	case ErrCodeCacheUnavailable:
		return 1
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, ok := BPMNErrorMapping[stdErr.Code]
	if !ok {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory buckets a code for dashboards and log filtering.
func GetErrorCategory(code ErrorCode) string {
	c := string(code)
	switch {
	case strings.HasPrefix(c, "CRM"):
		return "CRM"
	case strings.Contains(c, "DATABASE") || strings.Contains(c, "DUPLICATE"):
		return "DATABASE"
	case strings.Contains(c, "INDEX"):
		return "SEARCH"
	case strings.Contains(c, "CACHE"):
		return "CACHE"
	case strings.Contains(c, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(c, "WORKFLOW"):
		return "WORKFLOW"
	case strings.Contains(c, "VALIDATION") || strings.Contains(c, "INVALID") || strings.Contains(c, "PARSING"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
