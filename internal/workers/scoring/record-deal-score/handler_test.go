// internal/workers/scoring/record-deal-score/handler_test.go
package recorddealscore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dealflow-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestInput() *Input {
	return &Input{
		DealID:         "deal-001",
		ModelVersion:   "1.0.0",
		MeritScore:     72,
		Tier:           2,
		ReadinessScore: 65,
		ReadinessTier:  "advanced",
		Breakdown:      json.RawMessage(`{"economicDistress":{"score":30}}`),
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO deal_scores`).
		WithArgs(
			sqlmock.AnyArg(), // score ID (UUID)
			"deal-001",
			"1.0.0",
			72,
			2,
			65,
			"advanced",
			sqlmock.AnyArg(), // breakdown JSON bytes
			sqlmock.AnyArg(), // scored_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(
			"deal_score_recorded", "deal", "deal-001",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), createTestInput())

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.True(t, output.Recorded)
	assert.Equal(t, "deal-001", output.DealID)
	assert.NotEmpty(t, output.ScoreID)
	assert.NotEmpty(t, output.ScoredAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AuditFailureDoesNotFailJob(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO deal_scores`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(errors.New("relation does not exist"))

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), createTestInput())

	assert.NoError(t, err)
	require.NotNil(t, output)
	assert.True(t, output.Recorded)
}

func TestHandler_Execute_EmptyBreakdownDefaultsToObject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO deal_scores`).
		WithArgs(
			sqlmock.AnyArg(), "deal-001", "1.0.0", 72, 2, 65, "advanced",
			[]byte("{}"), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	input := createTestInput()
	input.Breakdown = nil

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))
	_, err = handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO deal_scores`).
		WillReturnError(errors.New("connection reset"))

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), createTestInput())

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_ValidationErrors(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"missing deal id", func(in *Input) { in.DealID = "" }},
		{"missing model version", func(in *Input) { in.ModelVersion = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createTestInput()
			tt.mutate(input)

			output, err := handler.Execute(context.Background(), input)
			assert.Error(t, err)
			assert.Nil(t, output)
		})
	}
}
