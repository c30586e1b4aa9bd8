// internal/workers/pricing/stack-credit-streams/handler.go
package stackcreditstreams

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/common/metrics"
	"dealflow-workers/internal/pricing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "stack-credit-streams"

var ErrStackFailed = errors.New("STACK_PRICING_FAILED")

type Handler struct {
	config *Config
	engine *pricing.Engine
	logger logger.Logger
}

func NewHandler(config *Config, engine *pricing.Engine, log logger.Logger) *Handler {
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
		h.failJob(client, job, errorCode(err), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, pricing.ErrEmptyStack):
		return "EMPTY_CREDIT_STACK"
	case errors.Is(err, pricing.ErrUnknownProgram):
		return "UNKNOWN_CREDIT_PROGRAM"
	case errors.Is(err, pricing.ErrInvalidPrice):
		return "INVALID_CREDIT_PRICE"
	default:
		return "STACK_PRICING_FAILED"
	}
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.DealID == "" {
		return nil, fmt.Errorf("%w: deal id is required", ErrStackFailed)
	}

	stack, err := h.engine.Stack(input.Streams)
	if err != nil {
		return nil, err
	}

	for _, stream := range stack.Streams {
		metrics.CreditStreamsPriced.WithLabelValues(string(stream.Program)).Inc()
	}

	h.logger.Info("credit stack priced", map[string]interface{}{
		"dealId":          input.DealID,
		"streams":         len(stack.Streams),
		"totalCredits":    stack.TotalCredits,
		"totalInvestment": stack.TotalInvestment,
	})

	return &Output{
		DealID: input.DealID,
		Stack:  stack,
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
