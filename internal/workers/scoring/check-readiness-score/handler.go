// internal/workers/scoring/check-readiness-score/handler.go
package checkreadinessscore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/intake"
	"dealflow-workers/internal/readiness"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-readiness-score"
)

type Handler struct {
	config *Config
	engine *readiness.Engine
	logger logger.Logger

	// now is swappable so months-to-start stays fixed in tests.
	now func() time.Time
}

func NewHandler(config *Config, engine *readiness.Engine, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: engine,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:    time.Now,
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
		h.failJob(client, job, "READINESS_SCORE_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Deal.ID == "" {
		return nil, fmt.Errorf("deal record has no id")
	}

	threshold := h.config.Threshold
	if input.Threshold > 0 {
		threshold = input.Threshold
	}

	readinessInput := intake.ReadinessInput(input.Deal, h.now())
	result := h.engine.Score(readinessInput)

	h.logger.Info("readiness scored", map[string]interface{}{
		"dealId":    input.Deal.ID,
		"score":     result.TotalScore,
		"tier":      result.Tier,
		"threshold": threshold,
	})

	return &Output{
		DealID:         input.Deal.ID,
		ReadinessScore: result.TotalScore,
		Percentage:     result.Percentage,
		Tier:           result.Tier,
		MeetsThreshold: result.TotalScore >= threshold,
		Breakdown:      result.Breakdown,
		Gaps:           h.engine.Gaps(readinessInput),
		WeightsVersion: result.WeightsVersion,
	}, nil
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
