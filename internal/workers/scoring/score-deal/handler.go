// internal/workers/scoring/score-deal/handler.go
package scoredeal

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/common/metrics"
	"dealflow-workers/internal/intake"
	"dealflow-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-deal"
)

type Handler struct {
	config *Config
	engine *scoring.Engine
	logger logger.Logger
}

func NewHandler(config *Config, engine *scoring.Engine, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: engine,
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
		h.failJob(client, job, "DEAL_SCORING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Deal.ID == "" {
		return nil, fmt.Errorf("deal record has no id")
	}

	result := h.engine.Score(intake.ScoringInput(input.Deal, input.CDECriteria))

	metrics.DealsScored.WithLabelValues(strconv.Itoa(result.Tier), result.ModelVersion).Inc()

	h.logger.Info("deal scored", map[string]interface{}{
		"dealId":       input.Deal.ID,
		"meritScore":   result.TotalScore,
		"tier":         result.Tier,
		"modelVersion": result.ModelVersion,
		"reasonCodes":  result.ReasonCodes,
	})

	return &Output{
		DealID:           input.Deal.ID,
		MeritScore:       result.TotalScore,
		Tier:             result.Tier,
		TierLabel:        tierLabel(result.Tier),
		ModelVersion:     result.ModelVersion,
		Breakdown:        result.Breakdown,
		EligibilityFlags: result.EligibilityFlags,
		ReasonCodes:      result.ReasonCodes,
	}, nil
}

// tierLabel names the tier for BPMN gateway conditions.
func tierLabel(tier int) string {
	switch tier {
	case scoring.TierGreenlight:
		return "greenlight"
	case scoring.TierWatchlist:
		return "watchlist"
	default:
		return "defer"
	}
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
