// internal/readiness/engine_test.go
package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestEngine() *Engine {
	return NewEngine(DefaultWeights())
}

func createShovelReadyInput() Input {
	return Input{
		ProjectName:             "Delta Community Health Hub",
		ProjectType:             "healthcare",
		SponsorName:             "Delta Health Partners LLC",
		Address:                 "400 Levee Rd",
		City:                    "Greenville",
		State:                   "MS",
		Zip:                     "38701",
		CensusTract:             "28151000600",
		TractEligible:           true,
		SiteControl:             "owned",
		TotalProjectCost:        12_000_000,
		FinancingGapKnown:       true,
		CommittedCapitalPercent: 80,
		HasStartDate:            true,
		MonthsToStart:           5,
		ApprovalStatus:          "approved",
	}
}

func createDevelopingInput() Input {
	return Input{
		ProjectName:             "Riverside Workforce Center",
		SponsorName:             "Riverside CDC",
		Address:                 "12 Mill St",
		CensusTract:             "39035117102",
		SiteControl:             "under_contract",
		TotalProjectCost:        6_000_000,
		CommittedCapitalPercent: 45,
		HasStartDate:            true,
		MonthsToStart:           10,
		ApprovalStatus:          "submitted",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestEngine_Score(t *testing.T) {
	tests := []struct {
		name           string
		input          Input
		expectedScore  int
		expectedTier   string
		validateOutput func(t *testing.T, result Result)
	}{
		{
			name:          "fully prepared deal is shovel-ready",
			input:         createShovelReadyInput(),
			expectedScore: 100,
			expectedTier:  TierShovelReady,
			validateOutput: func(t *testing.T, result Result) {
				assert.Equal(t, 100, result.Percentage)
				for _, dim := range result.Breakdown {
					assert.Equal(t, StatusComplete, dim.Status, dim.ID)
				}
			},
		},
		{
			name:          "partially prepared deal",
			input:         createDevelopingInput(),
			expectedScore: 61, // 16 + 10 + 10 + 12 + 7 + 6
			expectedTier:  TierAdvanced,
			validateOutput: func(t *testing.T, result Result) {
				byID := map[string]DimensionScore{}
				for _, dim := range result.Breakdown {
					byID[dim.ID] = dim
				}
				assert.Equal(t, 16, byID["project_basics"].Score) // name + sponsor, no type
				assert.Equal(t, StatusPartial, byID["project_basics"].Status)
				assert.Equal(t, 10, byID["location_tract"].Score) // address + tract only
				assert.Equal(t, 10, byID["site_control"].Score)
				assert.Equal(t, 12, byID["capital_stack"].Score) // cost 5 + committed band 7
				assert.Equal(t, 7, byID["timeline"].Score)
				assert.Equal(t, 6, byID["approvals"].Score)
			},
		},
		{
			name:          "empty intake scores zero",
			input:         Input{},
			expectedScore: 0,
			expectedTier:  TierEarly,
			validateOutput: func(t *testing.T, result Result) {
				assert.Equal(t, 0, result.Percentage)
				for _, dim := range result.Breakdown {
					assert.Equal(t, StatusMissing, dim.Status, dim.ID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine()
			result := engine.Score(tt.input)

			assert.Equal(t, tt.expectedScore, result.TotalScore)
			assert.Equal(t, 100, result.MaxScore)
			assert.Equal(t, tt.expectedTier, result.Tier)
			assert.Equal(t, "1.0.0", result.WeightsVersion)
			assert.Len(t, result.Breakdown, 6)

			if tt.validateOutput != nil {
				tt.validateOutput(t, result)
			}
		})
	}
}

func TestEngine_Score_Bounds(t *testing.T) {
	engine := newTestEngine()

	inputs := []Input{
		{},
		createShovelReadyInput(),
		createDevelopingInput(),
		{CommittedCapitalPercent: 500, MonthsToStart: -3, HasStartDate: true, SiteControl: "OWNED"},
	}

	for _, in := range inputs {
		result := engine.Score(in)
		assert.GreaterOrEqual(t, result.TotalScore, 0)
		assert.LessOrEqual(t, result.TotalScore, 100)
		for _, dim := range result.Breakdown {
			assert.GreaterOrEqual(t, dim.Score, 0)
			assert.LessOrEqual(t, dim.Score, dim.MaxScore)
		}
	}
}

// ==========================
// Dimension Tests
// ==========================

func TestEngine_ScoreTimeline(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name     string
		input    Input
		expected int
	}{
		{"no start date ignores months", Input{HasStartDate: false, MonthsToStart: 3}, 0},
		{"starting within six months", Input{HasStartDate: true, MonthsToStart: 6}, 10},
		{"starting within a year", Input{HasStartDate: true, MonthsToStart: 12}, 7},
		{"starting within 18 months", Input{HasStartDate: true, MonthsToStart: 18}, 4},
		{"distant start still earns the floor", Input{HasStartDate: true, MonthsToStart: 36}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.scoreTimeline(tt.input))
		})
	}
}

func TestEngine_ScoreSiteControl(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name     string
		control  string
		expected int
	}{
		{"owned", "owned", 20},
		{"owned mixed case", " Owned ", 20},
		{"under contract", "under_contract", 10},
		{"letter of intent", "loi", 5},
		{"none", "none", 0},
		{"unknown status", "handshake", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.scoreSiteControl(Input{SiteControl: tt.control}))
		})
	}
}

func TestEngine_ScoreCapitalStack(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name     string
		input    Input
		expected int
	}{
		{"fully committed", Input{TotalProjectCost: 5_000_000, FinancingGapKnown: true, CommittedCapitalPercent: 75}, 20},
		{"committed at band edge 60", Input{CommittedCapitalPercent: 60}, 10},
		{"committed at band edge 40", Input{CommittedCapitalPercent: 40}, 7},
		{"committed at band edge 20", Input{CommittedCapitalPercent: 20}, 4},
		{"below lowest band", Input{CommittedCapitalPercent: 19}, 0},
		{"cost only", Input{TotalProjectCost: 1_000_000}, 5},
		{"nothing", Input{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.scoreCapitalStack(tt.input))
		})
	}
}

func TestEngine_ScoreApprovals(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name     string
		status   string
		expected int
	}{
		{"approved", "approved", 10},
		{"submitted", "submitted", 6},
		{"started", "started", 3},
		{"none", "none", 0},
		{"unknown", "pending review", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.scoreApprovals(Input{ApprovalStatus: tt.status}))
		})
	}
}

// ==========================
// Threshold & Gaps
// ==========================

func TestEngine_MeetsThreshold(t *testing.T) {
	engine := newTestEngine()

	assert.True(t, engine.MeetsThreshold(createShovelReadyInput(), DefaultThreshold))
	assert.False(t, engine.MeetsThreshold(Input{}, DefaultThreshold))

	// The cutoff belongs to the caller, not the engine.
	developing := createDevelopingInput()
	assert.True(t, engine.MeetsThreshold(developing, 40))
	assert.False(t, engine.MeetsThreshold(developing, 70))
}

func TestEngine_Gaps(t *testing.T) {
	engine := newTestEngine()

	assert.Empty(t, engine.Gaps(createShovelReadyInput()))

	gaps := engine.Gaps(createDevelopingInput())
	assert.Contains(t, gaps, "Project Basics: Incomplete (16/20)")
	assert.Contains(t, gaps, "Site Control: Incomplete (10/20)")

	allMissing := engine.Gaps(Input{})
	assert.Len(t, allMissing, 6)
	assert.Contains(t, allMissing, "Timeline: Not started")
}

func TestEngine_Score_Idempotent(t *testing.T) {
	engine := newTestEngine()
	input := createDevelopingInput()

	assert.Equal(t, engine.Score(input), engine.Score(input))
}
