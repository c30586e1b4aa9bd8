// internal/workers/matching/apply-relevance-ranking/handler.go
package applyrelevanceranking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/common/metrics"
	"dealflow-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "apply-relevance-ranking"

	catalogCacheKey = "cde:catalog:active"
)

var (
	ErrEmptyCatalog  = errors.New("EMPTY_CDE_CATALOG")
	ErrRankingFailed = errors.New("RANKING_FAILED")
)

const upsertMatchSQL = `
	INSERT INTO deal_matches (id, deal_id, cde_id, score, quality, reasons, matched_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (deal_id, cde_id) DO UPDATE SET
		score = EXCLUDED.score,
		quality = EXCLUDED.quality,
		reasons = EXCLUDED.reasons,
		matched_at = EXCLUDED.matched_at`

type Handler struct {
	config *Config
	engine *matching.Engine
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, engine *matching.Engine, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: engine,
		db:     db,
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "RANKING_FAILED"
		if errors.Is(err, ErrEmptyCatalog) {
			errorCode = "EMPTY_CDE_CATALOG"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Project.DealID == "" {
		return nil, fmt.Errorf("%w: project has no deal id", ErrRankingFailed)
	}

	catalog, err := h.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	opts := matching.Options{MinScore: h.config.MinScore, MaxResults: h.config.MaxResults}
	if input.MinScore > 0 {
		opts.MinScore = input.MinScore
	}
	if input.MaxResults > 0 {
		opts.MaxResults = input.MaxResults
	}

	results := h.engine.MatchAll(input.Project, catalog, opts)

	for _, result := range results {
		metrics.MatchesComputed.WithLabelValues(result.Quality).Inc()
		if err := h.storeMatch(ctx, input.Project.DealID, result); err != nil {
			h.logger.Warn("failed to store match", map[string]interface{}{
				"dealId": input.Project.DealID,
				"cdeId":  result.CDEID,
				"error":  err,
			})
		}
	}

	bestQuality := matching.QualityWeak
	if len(results) > 0 {
		bestQuality = results[0].Quality
	}

	h.logger.Info("relevance ranking applied", map[string]interface{}{
		"dealId":         input.Project.DealID,
		"totalEvaluated": len(catalog),
		"returned":       len(results),
		"bestQuality":    bestQuality,
	})

	return &Output{
		DealID:         input.Project.DealID,
		Matches:        results,
		TotalEvaluated: len(catalog),
		Returned:       len(results),
		BestQuality:    bestQuality,
	}, nil
}

func (h *Handler) loadCatalog(ctx context.Context) ([]matching.Profile, error) {
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var catalog []matching.Profile
			if err := json.Unmarshal([]byte(val), &catalog); err == nil {
				metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
				return catalog, nil
			}
		}
		metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, organization_name, primary_states, target_sectors,
		       min_deal_size, max_deal_size, small_deal_fund,
		       rural_focus, urban_focus, require_severely_distressed
		FROM cde_profiles WHERE status = 'active'
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingFailed, err)
	}
	defer rows.Close()

	catalog := []matching.Profile{}
	for rows.Next() {
		var profile matching.Profile
		var states, sectors []byte
		if err := rows.Scan(&profile.ID, &profile.Name, &states, &sectors,
			&profile.MinDealSize, &profile.MaxDealSize, &profile.SmallDealFund,
			&profile.RuralFocus, &profile.UrbanFocus, &profile.RequireSeverelyDistressed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRankingFailed, err)
		}
		if err := json.Unmarshal(states, &profile.PrimaryStates); err != nil {
			profile.PrimaryStates = []string{}
		}
		if err := json.Unmarshal(sectors, &profile.TargetSectors); err != nil {
			profile.TargetSectors = []string{}
		}
		catalog = append(catalog, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingFailed, err)
	}

	if h.redis != nil && len(catalog) > 0 {
		data, _ := json.Marshal(catalog)
		h.redis.Set(ctx, catalogCacheKey, data, h.config.CacheTTL)
	}

	return catalog, nil
}

func (h *Handler) storeMatch(ctx context.Context, dealID string, result matching.Result) error {
	reasons, _ := json.Marshal(result.Reasons)
	_, err := h.db.ExecContext(ctx, upsertMatchSQL,
		uuid.New().String(),
		dealID,
		result.CDEID,
		result.Score,
		result.Quality,
		reasons,
		time.Now().UTC(),
	)
	return err
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
