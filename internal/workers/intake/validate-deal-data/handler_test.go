// internal/workers/intake/validate-deal-data/handler_test.go
package validatedealdata

import (
	"context"
	"encoding/json"
	"testing"

	"dealflow-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) *Handler {
	handler, err := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return handler
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"id":                  "deal-001",
		"projectName":         "Delta Health Campus",
		"projectType":         "healthcare facility",
		"state":               "MS",
		"totalProjectCost":    12_000_000,
		"tractMfiRatio":       55.0,
		"siteControl":         "owned",
		"isRural":             true,
		"censusTract":         "28151000200",
		"projectedStartDate":  "2026-03-01T00:00:00Z",
		"committedCapitalPct": 65.0,
	}
}

func marshal(t *testing.T, payload map[string]interface{}) json.RawMessage {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ValidDeal(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Deal: marshal(t, validPayload()),
	})

	require.NoError(t, err)
	assert.True(t, output.Valid)
	require.NotNil(t, output.Deal)
	assert.Equal(t, "deal-001", output.Deal.ID)
	assert.Equal(t, 55.0, output.Deal.TractMFIRatio)
	assert.Empty(t, output.Warnings)
	assert.Equal(t, schemaVersion, output.SchemaVersion)
}

func TestHandler_Execute_MissingRequiredFields(t *testing.T) {
	handler := newTestHandler(t)

	payload := validPayload()
	delete(payload, "id")
	delete(payload, "totalProjectCost")

	output, err := handler.Execute(context.Background(), &Input{
		Deal: marshal(t, payload),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "id")
	assert.Nil(t, output)
}

func TestHandler_Execute_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]interface{})
		fragment string
	}{
		{
			name:     "lowercase state",
			mutate:   func(p map[string]interface{}) { p["state"] = "ms" },
			fragment: "state",
		},
		{
			name:     "poverty rate over 100",
			mutate:   func(p map[string]interface{}) { p["tractPovertyRate"] = 140.0 },
			fragment: "tractPovertyRate",
		},
		{
			name:     "negative project cost",
			mutate:   func(p map[string]interface{}) { p["totalProjectCost"] = -1.0 },
			fragment: "totalProjectCost",
		},
		{
			name:     "unknown site control",
			mutate:   func(p map[string]interface{}) { p["siteControl"] = "handshake" },
			fragment: "siteControl",
		},
		{
			name:     "non-string id",
			mutate:   func(p map[string]interface{}) { p["id"] = 42 },
			fragment: "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t)

			payload := validPayload()
			tt.mutate(payload)

			_, err := handler.Execute(context.Background(), &Input{
				Deal: marshal(t, payload),
			})

			assert.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.fragment)
		})
	}
}

func TestHandler_Execute_EmptyPayload(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Nil(t, output)
}

func TestHandler_Execute_MalformedJSON(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Deal: json.RawMessage(`{"id": "deal-001",`),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Nil(t, output)
}

// ==========================
// Warning Tests
// ==========================

func TestHandler_Execute_WarnsOnDefaultedFields(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Deal: marshal(t, map[string]interface{}{
			"id":               "deal-002",
			"projectName":      "Main Street Lofts",
			"projectType":      "mixed-use",
			"state":            "LA",
			"totalProjectCost": 4_000_000,
		}),
	})

	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Len(t, output.Warnings, 5)

	joined := ""
	for _, w := range output.Warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, "tractMfiRatio")
	assert.Contains(t, joined, "siteControl")
	assert.Contains(t, joined, "projectedStartDate")
	assert.Contains(t, joined, "isRural")
	assert.Contains(t, joined, "censusTract")
}
