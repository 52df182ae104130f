package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/logger"
)

var errServerClosed = http.ErrServerClosed

// checkFunc reports whether one dependency is reachable.
type checkFunc func(ctx context.Context) error

type healthHandler struct {
	checks  map[string]checkFunc
	running func() []string
	logger  logger.Logger
}

func newHealthServer(addr string, deps *dependencies, workers *camunda.WorkerSet, log logger.Logger) *http.Server {
	h := &healthHandler{
		checks: map[string]checkFunc{
			"zeebe":         deps.Zeebe.HealthCheck,
			"postgres":      deps.Postgres.Ping,
			"redis":         deps.Redis.Ping,
			"elasticsearch": func(context.Context) error { return deps.Search.Ping() },
		},
		running: workers.Running,
		logger:  log,
	}
	return &http.Server{
		Addr:              addr,
		Handler:           h.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (h *healthHandler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.health)
	mux.HandleFunc("/ready", h.ready)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (h *healthHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ready fails with 503 when any dependency check fails.
func (h *healthHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed", map[string]interface{}{"component": name, "error": err})
			components[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	workers := h.running()
	sort.Strings(workers)

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status":     state,
		"components": components,
		"workers":    workers,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
