// internal/common/camunda/worker.go
package camunda

import (
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"homebuyer-prequal/internal/common/config"
	"homebuyer-prequal/internal/common/logger"
)

// Middleware decorates a job handler, e.g. with tracing.
type Middleware func(taskType string, handler worker.JobHandler) worker.JobHandler

// WorkerSet opens job workers and closes them together on shutdown.
type WorkerSet struct {
	client     zbc.Client
	logger     logger.Logger
	middleware []Middleware

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewWorkerSet(client zbc.Client, log logger.Logger, middleware ...Middleware) *WorkerSet {
	return &WorkerSet{
		client:     client,
		logger:     log,
		middleware: middleware,
		workers:    make(map[string]worker.JobWorker),
	}
}

// Start opens a worker for taskType unless wcfg disables it. Starting the same
// task type twice is a no-op. It reports whether a worker is running.
func (s *WorkerSet) Start(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool {
	if !wcfg.Enabled {
		s.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.workers[taskType]; running {
		return true
	}

	for i := len(s.middleware) - 1; i >= 0; i-- {
		handler = s.middleware[i](taskType, handler)
	}

	s.workers[taskType] = s.client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(wcfg.TimeoutDuration()).
		Open()

	s.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// Running lists the task types with an open worker.
func (s *WorkerSet) Running() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.workers))
	for taskType := range s.workers {
		out = append(out, taskType)
	}
	return out
}

// Close stops polling on every worker and waits for in-flight jobs.
func (s *WorkerSet) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for taskType, w := range s.workers {
		s.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		w.Close()
		w.AwaitClose()
	}
	s.workers = make(map[string]worker.JobWorker)
}
