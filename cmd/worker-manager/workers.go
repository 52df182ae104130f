package main

import (
	"time"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/config"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/prequal"

	agentnotify "homebuyer-prequal/internal/workers/communication/agent-notify"
	crmleadsubmit "homebuyer-prequal/internal/workers/crm/crm-lead-submit"
	calculatesuitabilityscore "homebuyer-prequal/internal/workers/intake/calculate-suitability-score"
	classifyqualification "homebuyer-prequal/internal/workers/intake/classify-qualification"
	createsubmissionrecord "homebuyer-prequal/internal/workers/intake/create-submission-record"
	indexsubmission "homebuyer-prequal/internal/workers/intake/index-submission"
	resolveintakestep "homebuyer-prequal/internal/workers/intake/resolve-intake-step"
	transformsubmission "homebuyer-prequal/internal/workers/intake/transform-submission"
)

// registerWorkers opens a job worker for every enabled task type. All intake
// workers share one classifier so they agree on the current year.
func registerWorkers(cfg *config.Config, deps *dependencies, set *camunda.WorkerSet, log logger.Logger) {
	classifier := prequal.NewClassifier(time.Now)

	step := resolveintakestep.NewHandler(resolveintakestep.LoadConfig(cfg), prequal.DefaultNavigator(), log)
	set.Start(resolveintakestep.TaskType, config.GetWorkerConfig(cfg, resolveintakestep.TaskType), step.Handle)

	classify := classifyqualification.NewHandler(classifyqualification.LoadConfig(cfg), classifier, log)
	set.Start(classifyqualification.TaskType, config.GetWorkerConfig(cfg, classifyqualification.TaskType), classify.Handle)

	score := calculatesuitabilityscore.NewHandler(calculatesuitabilityscore.LoadConfig(cfg), deps.Redis.Client, log)
	set.Start(calculatesuitabilityscore.TaskType, config.GetWorkerConfig(cfg, calculatesuitabilityscore.TaskType), score.Handle)

	transform := transformsubmission.NewHandler(transformsubmission.LoadConfig(cfg), classifier, log)
	set.Start(transformsubmission.TaskType, config.GetWorkerConfig(cfg, transformsubmission.TaskType), transform.Handle)

	record := createsubmissionrecord.NewHandler(createsubmissionrecord.LoadConfig(cfg), deps.Postgres.DB, log)
	set.Start(createsubmissionrecord.TaskType, config.GetWorkerConfig(cfg, createsubmissionrecord.TaskType), record.Handle)

	index := indexsubmission.NewHandler(indexsubmission.LoadConfig(cfg), deps.Search, log)
	set.Start(indexsubmission.TaskType, config.GetWorkerConfig(cfg, indexsubmission.TaskType), index.Handle)

	crm := crmleadsubmit.NewHandler(crmleadsubmit.HandlerOptions{
		AppConfig: cfg,
		Redis:     deps.Redis.Client,
		Logger:    log,
	})
	set.Start(crmleadsubmit.TaskType, config.GetWorkerConfig(cfg, crmleadsubmit.ConfigKey), crm.Handle)

	notify := agentnotify.NewHandler(agentnotify.LoadConfig(cfg), deps.SES, deps.SNS, log)
	set.Start(agentnotify.TaskType, config.GetWorkerConfig(cfg, agentnotify.TaskType), notify.Handle)
}
