// internal/workers/pricing/stack-credit-streams/handler_test.go
package stackcreditstreams

import (
	"context"
	"testing"

	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T) *Handler {
	engine := pricing.NewEngine(pricing.DefaultTables())
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t))
}

func createStack() []pricing.Input {
	return []pricing.Input{
		{Program: pricing.ProgramNMTC, EligibleBasis: 10_000_000, CreditPrice: 0.80},
		{Program: pricing.ProgramHTC, EligibleBasis: 2_000_000, CreditPrice: 0.92},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_PricesStack(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		DealID:  "deal-001",
		Streams: createStack(),
	})

	require.NoError(t, err)
	assert.Equal(t, "deal-001", output.DealID)
	require.Len(t, output.Stack.Streams, 2)
	assert.InDelta(t, 4_300_000, output.Stack.TotalCredits, 0.01)
	assert.InDelta(t, 3_488_000, output.Stack.TotalInvestment, 0.01)
	assert.InDelta(t, output.Stack.TotalCredits/output.Stack.TotalInvestment, output.Stack.BlendedCashOnCash, 1e-12)
}

func TestHandler_Execute_SingleStream(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		DealID:  "deal-001",
		Streams: createStack()[:1],
	})

	require.NoError(t, err)
	assert.InDelta(t, output.Stack.Streams[0].CashOnCash, output.Stack.BlendedCashOnCash, 1e-12)
}

func TestHandler_Execute_EmptyStack(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{DealID: "deal-001"})

	assert.Error(t, err)
	assert.ErrorIs(t, err, pricing.ErrEmptyStack)
	assert.Nil(t, output)
}

func TestHandler_Execute_BadStreamFailsWholeStack(t *testing.T) {
	handler := newTestHandler(t)

	streams := createStack()
	streams[1].CreditPrice = 0

	output, err := handler.Execute(context.Background(), &Input{
		DealID:  "deal-001",
		Streams: streams,
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, pricing.ErrInvalidPrice)
	assert.Nil(t, output)
}

func TestHandler_Execute_MissingDealID(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Streams: createStack()})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrStackFailed)
	assert.Nil(t, output)
}

// ==========================
// Error Code Mapping Tests
// ==========================

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"empty stack", pricing.ErrEmptyStack, "EMPTY_CREDIT_STACK"},
		{"unknown program", pricing.ErrUnknownProgram, "UNKNOWN_CREDIT_PROGRAM"},
		{"invalid price", pricing.ErrInvalidPrice, "INVALID_CREDIT_PRICE"},
		{"generic failure", ErrStackFailed, "STACK_PRICING_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errorCode(tt.err))
		})
	}
}
