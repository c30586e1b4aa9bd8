// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/common/metrics"
	"dealflow-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-match-score"
)

var (
	ErrCDEProfileNotFound = errors.New("CDE_PROFILE_NOT_FOUND")
	ErrMatchScoreFailed   = errors.New("MATCH_SCORE_FAILED")
)

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
		errorCode := "MATCH_SCORE_FAILED"
		if errors.Is(err, ErrCDEProfileNotFound) {
			errorCode = "CDE_PROFILE_NOT_FOUND"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.CDEProfile
	if profile == nil {
		if input.CDEID == "" {
			return nil, fmt.Errorf("%w: neither cdeProfile nor cdeId supplied", ErrMatchScoreFailed)
		}
		fetched, err := h.getCDEProfile(ctx, input.CDEID)
		if err != nil {
			return nil, err
		}
		profile = fetched
	}

	result := h.engine.Match(input.Project, *profile)

	metrics.MatchesComputed.WithLabelValues(result.Quality).Inc()

	h.logger.Info("match score calculated", map[string]interface{}{
		"dealId":  input.Project.DealID,
		"cdeId":   result.CDEID,
		"score":   result.Score,
		"quality": result.Quality,
	})

	return &Output{
		DealID:     input.Project.DealID,
		CDEID:      result.CDEID,
		CDEName:    result.CDEName,
		MatchScore: result.Score,
		Quality:    result.Quality,
		Components: result.Components,
		Reasons:    result.Reasons,
	}, nil
}

func (h *Handler) getCDEProfile(ctx context.Context, cdeID string) (*matching.Profile, error) {
	cacheKey := "cde:profile:" + cdeID
	if h.redis != nil {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var profile matching.Profile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
				return &profile, nil
			}
		}
		metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, organization_name, primary_states, target_sectors,
		       min_deal_size, max_deal_size, small_deal_fund,
		       rural_focus, urban_focus, require_severely_distressed
		FROM cde_profiles WHERE id = $1 AND status = 'active'`, cdeID)

	var profile matching.Profile
	var states, sectors []byte
	err := row.Scan(&profile.ID, &profile.Name, &states, &sectors,
		&profile.MinDealSize, &profile.MaxDealSize, &profile.SmallDealFund,
		&profile.RuralFocus, &profile.UrbanFocus, &profile.RequireSeverelyDistressed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrCDEProfileNotFound, cdeID)
		}
		return nil, fmt.Errorf("%w: %v", ErrMatchScoreFailed, err)
	}

	if err := json.Unmarshal(states, &profile.PrimaryStates); err != nil {
		profile.PrimaryStates = []string{}
	}
	if err := json.Unmarshal(sectors, &profile.TargetSectors); err != nil {
		profile.TargetSectors = []string{}
	}

	if h.redis != nil {
		data, _ := json.Marshal(profile)
		h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
	}

	return &profile, nil
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
