package calculatesuitabilityscore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"homebuyer-prequal/internal/common/camunda"
	"homebuyer-prequal/internal/common/database"
	"homebuyer-prequal/internal/common/errors"
	"homebuyer-prequal/internal/common/logger"
	"homebuyer-prequal/internal/common/metrics"
	"homebuyer-prequal/internal/models"
	"homebuyer-prequal/internal/prequal"
)

const (
	TaskType       = "calculate-suitability-score"
	cacheKeyPrefix = "prequal:score:"
)

type Handler struct {
	config      *Config
	scorer      *prequal.Scorer
	recommender *prequal.Recommender
	cache       redis.Cmdable
	errors      *errors.ErrorHandler
	logger      logger.Logger
}

// NewHandler builds the handler. cache may be nil, which disables caching.
func NewHandler(config *Config, cache redis.Cmdable, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		scorer:      prequal.NewScorer(),
		recommender: prequal.NewRecommender(nil),
		cache:       cache,
		errors:      errors.NewErrorHandler(log),
		logger:      log,
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
	timer.Done("")
}

// Execute scores the record. Cache failures are logged and never fail the
// job; the score is recomputed instead.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	record := input.Intake
	if record == nil {
		record = &models.IntakeRecord{}
	}
	locale := input.Locale
	if locale == "" {
		locale = h.config.DefaultLocale
	}

	key, cacheable := h.cacheKey(record, locale)
	if cacheable {
		var cached Output
		found, err := database.GetJSON(ctx, h.cache, key, &cached)
		switch {
		case err != nil:
			metrics.ScoreCacheLookups.WithLabelValues("error").Inc()
			h.logger.Warn("score cache read failed", map[string]interface{}{"error": errors.NewCacheUnavailableError(err).Error()})
		case found:
			metrics.ScoreCacheLookups.WithLabelValues("hit").Inc()
			cached.Cached = true
			return &cached, nil
		default:
			metrics.ScoreCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	score := h.scorer.Score(record)
	output := &Output{
		SuitabilityScore:    score,
		OverallScore:        score.Overall,
		Recommendations:     h.recommender.Recommend(record),
		CreditTierLabel:     prequal.CreditTierLabel(record.CreditCategory, locale),
		CreditCategoryScore: prequal.CreditCategoryScore(record.CreditCategory),
	}
	metrics.SuitabilityOverall.Observe(score.Overall)

	if cacheable {
		if err := database.SetJSON(ctx, h.cache, key, output, h.config.CacheTTL); err != nil {
			h.logger.Warn("score cache write failed", map[string]interface{}{"error": errors.NewCacheUnavailableError(err).Error()})
		}
	}

	h.logger.Info("suitability scored", map[string]interface{}{
		"overall":         score.Overall,
		"recommendations": len(output.Recommendations),
	})
	return output, nil
}

// cacheKey hashes the record together with the resolved locale.
func (h *Handler) cacheKey(record *models.IntakeRecord, locale string) (string, bool) {
	if h.cache == nil || h.config.CacheTTL <= 0 {
		return "", false
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return "", false
	}
	sum := sha256.New()
	sum.Write(raw)
	sum.Write([]byte{0})
	sum.Write([]byte(prequal.MatchLocale(locale).String()))
	return cacheKeyPrefix + hex.EncodeToString(sum.Sum(nil)), true
}
