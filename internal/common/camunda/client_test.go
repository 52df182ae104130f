package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebuyer-prequal/internal/common/config"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
)

func fastClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		RetryConfig: &RetryConfig{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	}}
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg       string
		retryable bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"RESOURCE_EXHAUSTED: backpressure", true},
		{"NOT_FOUND: job 42 not found", false},
		{"permission denied", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableZeebeError(stderrors.New(tt.msg)))
		})
	}
}

func TestExecuteWithRetry_RecoversFromTransientError(t *testing.T) {
	calls := 0
	result, err := fastClient(3).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, stderrors.New("connection reset by peer")
		}
		return "ok", nil
	}, "completeJob")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	_, err := fastClient(3).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("NOT_FOUND: job not found")
	}, "completeJob")

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeWorkflowEngine, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Equal(t, "completeJob", stdErr.Metadata["operation"])
}

func TestExecuteWithRetry_ExhaustsBudget(t *testing.T) {
	calls := 0
	_, err := fastClient(2).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("unavailable")
	}, "publishMessage")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, 3, stdErr.Metadata["attempts"])
}

func TestRetryWithBackoff(t *testing.T) {
	log := logger.NewTestLogger(t)

	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return stderrors.New("not yet")
		}
		return nil
	}, 5, time.Millisecond, log, "redis ping")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	err = RetryWithBackoff(context.Background(), func() error {
		return stderrors.New("down")
	}, 3, time.Millisecond, log, "postgres ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres ping failed after 3 attempts")
}

func TestRetryWithBackoff_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return stderrors.New("down") }, 5, time.Hour, logger.NewNoOpLogger(), "zeebe")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigFrom(t *testing.T) {
	cc := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", UsePlaintext: true, RequestTimeout: 1500})
	assert.Equal(t, "zeebe:26500", cc.GatewayAddress)
	assert.True(t, cc.UsePlaintextConnection)
	assert.Equal(t, 1500*time.Millisecond, cc.RequestTimeout)
	assert.Same(t, DefaultRetryConfig, cc.RetryConfig)
}
