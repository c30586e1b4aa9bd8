// internal/intake/adapter_test.go
package intake

import (
	"testing"
	"time"

	"dealflow-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func timePtr(t time.Time) *time.Time {
	return &t
}

func createDealRecord() models.DealRecord {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	completion := time.Date(2027, 9, 1, 0, 0, 0, 0, time.UTC)
	return models.DealRecord{
		ID:          "deal-100",
		ProjectName: "Eastside Fresh Market",
		ProjectType: "food access",
		SponsorName: "Eastside CDC",
		Address:     "88 Market Ave",
		City:        "Toledo",
		State:       "OH",
		Zip:         "43604",
		CensusTract: "39095002600",

		TractPovertyRate:  32,
		TractMFIRatio:     58,
		TractUnemployment: 12,
		TractTypes:        []string{models.TractTypePersistentPoverty},
		TractEligible:     true,

		TotalProjectCost:    9_000_000,
		CommittedCapitalPct: 65,
		AllocationRequested: 7_000_000,
		JobsCreated:         40,
		JobsRetained:        12,

		SiteControl:             "under_contract",
		ProFormaComplete:        true,
		ThirdPartyReports:       false,
		ApprovalStatus:          "submitted",
		ProjectedStartDate:      timePtr(start),
		ProjectedCompletionDate: timePtr(completion),

		TargetSectors: []string{"food", "retail"},
	}
}

// ==========================
// Scoring Input
// ==========================

func TestScoringInput(t *testing.T) {
	deal := createDealRecord()

	in := ScoringInput(deal, nil)

	assert.Equal(t, "39095002600", in.CensusTract)
	assert.Equal(t, 32.0, in.PovertyRate)
	assert.Equal(t, 58.0, in.MedianFamilyIncome)
	assert.True(t, in.PersistentPovertyCounty)
	assert.False(t, in.NonMetro)
	assert.Equal(t, "under_contract", in.SiteControl)
	assert.True(t, in.TimelineRealistic)
	assert.Equal(t, 7_000_000.0, in.DealSize) // allocation request wins over cost
	assert.Nil(t, in.CDECriteria)
}

func TestScoringInput_Defaults(t *testing.T) {
	deal := models.DealRecord{ID: "deal-empty"}

	in := ScoringInput(deal, nil)

	// A missing income ratio defaults to parity, which earns no distress
	// points, rather than zero, which would earn the maximum.
	assert.Equal(t, 100.0, in.MedianFamilyIncome)
	assert.Equal(t, "none", in.SiteControl)
	assert.False(t, in.TimelineRealistic)
	assert.Zero(t, in.DealSize)
}

func TestScoringInput_DealSizeFallsBackToCost(t *testing.T) {
	deal := createDealRecord()
	deal.AllocationRequested = 0

	in := ScoringInput(deal, nil)
	assert.Equal(t, 9_000_000.0, in.DealSize)
}

// ==========================
// Readiness Input
// ==========================

func TestReadinessInput(t *testing.T) {
	deal := createDealRecord()
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	in := ReadinessInput(deal, now)

	assert.Equal(t, "Eastside Fresh Market", in.ProjectName)
	assert.Equal(t, "Eastside CDC", in.SponsorName)
	assert.True(t, in.TractEligible)
	assert.True(t, in.FinancingGapKnown)
	assert.Equal(t, 65.0, in.CommittedCapitalPercent)
	assert.Equal(t, "submitted", in.ApprovalStatus)
	assert.True(t, in.HasStartDate)
	assert.Equal(t, 6, in.MonthsToStart) // Oct 2025 -> Mar 2026
}

func TestReadinessInput_NoStartDate(t *testing.T) {
	deal := createDealRecord()
	deal.ProjectedStartDate = nil

	in := ReadinessInput(deal, time.Now())

	assert.False(t, in.HasStartDate)
	assert.Zero(t, in.MonthsToStart)
}

func TestReadinessInput_StartDateInPast(t *testing.T) {
	deal := createDealRecord()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	in := ReadinessInput(deal, now)

	assert.True(t, in.HasStartDate)
	assert.Zero(t, in.MonthsToStart) // already past the start date
}

// ==========================
// Matching Adapters
// ==========================

func TestMatchProject(t *testing.T) {
	deal := createDealRecord()
	rural := false
	deal.IsRural = &rural

	project := MatchProject(deal, true)

	assert.Equal(t, "deal-100", project.DealID)
	assert.Equal(t, "OH", project.State)
	assert.Equal(t, 7_000_000.0, project.AllocationRequest)
	assert.True(t, project.SeverelyDistressed)
	assert.NotNil(t, project.IsRural)
	assert.False(t, *project.IsRural)
}

func TestMatchProject_UnknownRuralCharacter(t *testing.T) {
	project := MatchProject(createDealRecord(), false)
	assert.Nil(t, project.IsRural)
}

func TestMatchProfile(t *testing.T) {
	cde := models.CDEProfile{
		ID:                        "cde-001",
		OrganizationName:          "Great Lakes Capital",
		PrimaryStates:             []string{"OH", "MI"},
		TargetSectors:             []string{"food"},
		MinDealSize:               2_000_000,
		MaxDealSize:               10_000_000,
		SmallDealFund:             true,
		UrbanFocus:                true,
		RequireSeverelyDistressed: true,
	}

	profile := MatchProfile(cde)

	assert.Equal(t, "cde-001", profile.ID)
	assert.Equal(t, "Great Lakes Capital", profile.Name)
	assert.Equal(t, []string{"OH", "MI"}, profile.PrimaryStates)
	assert.True(t, profile.SmallDealFund)
	assert.True(t, profile.RequireSeverelyDistressed)
}

func TestCriteria(t *testing.T) {
	assert.Nil(t, Criteria(nil))

	cde := models.CDEProfile{
		TargetSectors: []string{"healthcare"},
		PrimaryStates: []string{"MS"},
		MinDealSize:   1_000_000,
		MaxDealSize:   5_000_000,
	}

	criteria := Criteria(&cde)
	assert.NotNil(t, criteria)
	assert.Equal(t, []string{"healthcare"}, criteria.TargetSectors)
	assert.Equal(t, []string{"MS"}, criteria.GeographicFocus)
}
