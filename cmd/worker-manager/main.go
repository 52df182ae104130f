// cmd/worker-manager/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homebuyer-prequal/internal/common/aws"
	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/config"
	"homebuyer-prequal/internal/common/database"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("info", "json").Error("config load failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})
	log.Info("starting worker manager", map[string]interface{}{"environment": cfg.App.Environment})

	obs := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint, log)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := connect(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	defer deps.Close()

	workers := camunda.NewWorkerSet(deps.Zeebe.GetClient(), log, obs.WrapJobHandler)
	registerWorkers(cfg, deps, workers, log)
	defer workers.Close()

	server := newHealthServer(cfg.App.HTTPAddress, deps, workers, log)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != errServerClosed {
			log.Error("health server stopped", map[string]interface{}{"error": err})
		}
	}()
	log.Info("worker manager ready", map[string]interface{}{
		"workers": workers.Running(),
		"http":    cfg.App.HTTPAddress,
	})

	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("health server shutdown failed", map[string]interface{}{"error": err})
	}
}

// dependencies are the connections shared by all workers. SES and SNS are
// nil when the channel is disabled.
type dependencies struct {
	Zeebe    *camunda.Client
	Postgres *database.PostgresClient
	Search   *database.ElasticsearchClient
	Redis    *database.RedisClient
	SES      aws.SESService
	SNS      aws.SNSService
}

func (d *dependencies) Close() {
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if d.Postgres != nil {
		_ = d.Postgres.Close()
	}
	if d.Zeebe != nil {
		_ = d.Zeebe.Close()
	}
}

func connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*dependencies, error) {
	deps := &dependencies{}

	err := camunda.RetryWithBackoff(ctx, func() error {
		client, err := camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		if err != nil {
			return err
		}
		deps.Zeebe = client
		return nil
	}, 10, 2*time.Second, log, "zeebe connection")
	if err != nil {
		return deps, err
	}
	log.Info("zeebe connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	deps.Postgres, err = database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return deps, err
	}
	if err := camunda.RetryWithBackoff(ctx, func() error {
		return deps.Postgres.Ping(ctx)
	}, 15, 2*time.Second, log, "postgres connection"); err != nil {
		return deps, err
	}
	log.Info("postgres connected", nil)

	deps.Search, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return deps, err
	}
	if err := camunda.RetryWithBackoff(ctx, deps.Search.Ping, 15, 2*time.Second, log, "elasticsearch connection"); err != nil {
		return deps, err
	}
	log.Info("elasticsearch connected", nil)

	deps.Redis, err = database.NewRedis(cfg.Database.Redis)
	if err != nil {
		return deps, err
	}
	if err := camunda.RetryWithBackoff(ctx, func() error {
		return deps.Redis.Ping(ctx)
	}, 10, 2*time.Second, log, "redis connection"); err != nil {
		return deps, err
	}
	log.Info("redis connected", nil)

	region := cfg.Integrations.AWS.Region
	if cfg.Integrations.AWS.SES.Enabled {
		client, err := aws.NewSESClient(ctx, region)
		if err != nil {
			log.Warn("ses client unavailable, agent e-mail disabled", map[string]interface{}{"error": err})
		} else {
			deps.SES = client
		}
	}
	if cfg.Integrations.AWS.SNS.Enabled {
		client, err := aws.NewSNSClient(ctx, region)
		if err != nil {
			log.Warn("sns client unavailable, agent sms disabled", map[string]interface{}{"error": err})
		} else {
			deps.SNS = client
		}
	}

	return deps, nil
}
