// internal/workers/scoring/record-deal-score/handler.go
package recorddealscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dealflow-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "record-deal-score"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrQueryTimeout         = errors.New("QUERY_TIMEOUT")
)

// One row per deal per model version; re-scoring under the same model
// overwrites the previous run instead of accumulating rows.
const upsertScoreSQL = `
	INSERT INTO deal_scores (
		id, deal_id, model_version, merit_score, tier,
		readiness_score, readiness_tier, breakdown, scored_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (deal_id, model_version) DO UPDATE SET
		merit_score = EXCLUDED.merit_score,
		tier = EXCLUDED.tier,
		readiness_score = EXCLUDED.readiness_score,
		readiness_tier = EXCLUDED.readiness_tier,
		breakdown = EXCLUDED.breakdown,
		scored_at = EXCLUDED.scored_at`

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		errorCode := "DATABASE_INSERT_FAILED"
		if errors.Is(err, ErrQueryTimeout) {
			errorCode = "QUERY_TIMEOUT"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.DealID == "" {
		return nil, fmt.Errorf("%w: deal id is required", ErrDatabaseInsertFailed)
	}
	if input.ModelVersion == "" {
		return nil, fmt.Errorf("%w: model version is required", ErrDatabaseInsertFailed)
	}

	scoreID := uuid.New().String()
	scoredAt := time.Now().UTC()

	breakdown := input.Breakdown
	if len(breakdown) == 0 {
		breakdown = json.RawMessage("{}")
	}

	_, err := h.db.ExecContext(ctx, upsertScoreSQL,
		scoreID,
		input.DealID,
		input.ModelVersion,
		input.MeritScore,
		input.Tier,
		input.ReadinessScore,
		input.ReadinessTier,
		[]byte(breakdown),
		scoredAt,
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", ErrQueryTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit entry is non-critical; log and continue on failure.
	auditDetails, err := json.Marshal(map[string]interface{}{
		"scoreId":      scoreID,
		"modelVersion": input.ModelVersion,
		"meritScore":   input.MeritScore,
		"tier":         input.Tier,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetails = []byte("{}")
	}
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"deal_score_recorded", "deal", input.DealID, auditDetails, scoredAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"dealId": input.DealID,
			"error":  err,
		})
	}

	h.logger.Info("deal score recorded", map[string]interface{}{
		"dealId":       input.DealID,
		"scoreId":      scoreID,
		"modelVersion": input.ModelVersion,
		"meritScore":   input.MeritScore,
	})

	return &Output{
		ScoreID:  scoreID,
		DealID:   input.DealID,
		Recorded: true,
		ScoredAt: scoredAt.Format(time.RFC3339),
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
