// internal/workers/intake/validate-deal-data/handler.go
package validatedealdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const TaskType = "validate-deal-data"

var (
	ErrInvalidPayload   = errors.New("INVALID_DEAL_PAYLOAD")
	ErrValidationFailed = errors.New("DEAL_VALIDATION_FAILED")
)

type Handler struct {
	config *Config
	schema *gojsonschema.Schema
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(dealSchema))
	if err != nil {
		return nil, fmt.Errorf("compile deal schema: %w", err)
	}
	return &Handler{
		config: config,
		schema: schema,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
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
		errorCode := "DEAL_VALIDATION_FAILED"
		if errors.Is(err, ErrInvalidPayload) {
			errorCode = "INVALID_DEAL_PAYLOAD"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if len(input.Deal) == 0 {
		return nil, fmt.Errorf("%w: no deal payload", ErrInvalidPayload)
	}

	result, err := h.schema.Validate(gojsonschema.NewBytesLoader(input.Deal))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(errs, "; "))
	}

	var deal models.DealRecord
	if err := json.Unmarshal(input.Deal, &deal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	warnings := collectWarnings(&deal)

	h.logger.Info("deal payload validated", map[string]interface{}{
		"dealId":   deal.ID,
		"warnings": len(warnings),
	})

	return &Output{
		Valid:         true,
		Deal:          &deal,
		Warnings:      warnings,
		SchemaVersion: schemaVersion,
	}, nil
}

// collectWarnings flags the optional fields the intake adapter will default so
// the submitter can improve the record.
func collectWarnings(deal *models.DealRecord) []string {
	var warnings []string

	if deal.TractMFIRatio == 0 {
		warnings = append(warnings, "tractMfiRatio missing; distress scoring will assume area-median parity")
	}
	if deal.SiteControl == "" {
		warnings = append(warnings, "siteControl missing; treated as none")
	}
	if deal.ProjectedStartDate == nil {
		warnings = append(warnings, "projectedStartDate missing; timeline readiness will score zero")
	}
	if deal.IsRural == nil {
		warnings = append(warnings, "isRural unknown; rural/urban matching checks will be skipped")
	}
	if deal.CensusTract == "" {
		warnings = append(warnings, "censusTract missing; tract eligibility cannot be verified")
	}

	return warnings
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
