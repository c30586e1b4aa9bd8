// internal/intake/adapter.go

// Package intake adapts persisted deal and CDE records into the typed inputs
// the scoring, readiness, and matching engines consume. All defaulting for
// missing optional fields happens here, once, so the engines never re-check
// presence.
package intake

import (
	"math"
	"time"

	"dealflow-workers/internal/matching"
	"dealflow-workers/internal/models"
	"dealflow-workers/internal/readiness"
	"dealflow-workers/internal/scoring"
)

// neutralMFIRatio substitutes for a missing tract income ratio. Parity with
// area median earns no distress points, which is the safe default for
// unverified tract data.
const neutralMFIRatio = 100

// ScoringInput builds the merit-engine input from a deal record.
func ScoringInput(deal models.DealRecord, criteria *scoring.CDECriteria) scoring.Input {
	mfi := deal.TractMFIRatio
	if mfi == 0 {
		mfi = neutralMFIRatio
	}

	siteControl := deal.SiteControl
	if siteControl == "" {
		siteControl = "none"
	}

	return scoring.Input{
		CensusTract:             deal.CensusTract,
		PovertyRate:             deal.TractPovertyRate,
		MedianFamilyIncome:      mfi,
		UnemploymentRate:        deal.TractUnemployment,
		PersistentPovertyCounty: deal.HasTractType(models.TractTypePersistentPoverty),
		NonMetro:                deal.HasTractType(models.TractTypeNonMetro),

		TotalProjectCost:       deal.TotalProjectCost,
		JobsCreated:            deal.JobsCreated,
		JobsRetained:           deal.JobsRetained,
		HousingUnits:           deal.HousingUnits,
		AffordableHousingUnits: deal.AffordableHousingUnits,

		SiteControl:             siteControl,
		HasProForma:             deal.ProFormaComplete,
		HasThirdPartyReports:    deal.ThirdPartyReports,
		CommittedSourcesPercent: deal.CommittedCapitalPct,
		TimelineRealistic:       deal.ProjectedCompletionDate != nil,

		ProjectType:   deal.ProjectType,
		TargetSectors: deal.TargetSectors,
		DealSize:      deal.DealSize(),

		CDECriteria: criteria,
	}
}

// ReadinessInput builds the readiness-engine input. The months-to-start
// figure is computed against the supplied clock so scoring stays
// reproducible.
func ReadinessInput(deal models.DealRecord, now time.Time) readiness.Input {
	in := readiness.Input{
		ProjectName:   deal.ProjectName,
		ProjectType:   deal.ProjectType,
		SponsorName:   deal.SponsorName,
		Address:       deal.Address,
		City:          deal.City,
		State:         deal.State,
		Zip:           deal.Zip,
		CensusTract:   deal.CensusTract,
		TractEligible: deal.TractEligible,

		SiteControl: deal.SiteControl,

		TotalProjectCost:        deal.TotalProjectCost,
		FinancingGapKnown:       deal.TotalProjectCost > 0 && deal.AllocationRequested > 0,
		CommittedCapitalPercent: deal.CommittedCapitalPct,

		ApprovalStatus: deal.ApprovalStatus,
	}

	if deal.ProjectedStartDate != nil {
		in.HasStartDate = true
		in.MonthsToStart = monthsBetween(now, *deal.ProjectedStartDate)
	}
	return in
}

// MatchProject builds the matching-engine project summary. The severe
// distress flag comes from a prior merit-scoring pass.
func MatchProject(deal models.DealRecord, severelyDistressed bool) matching.Project {
	return matching.Project{
		DealID:             deal.ID,
		State:              deal.State,
		ProjectType:        deal.ProjectType,
		AllocationRequest:  deal.DealSize(),
		SeverelyDistressed: severelyDistressed,
		IsRural:            deal.IsRural,
	}
}

// MatchProfile builds the matching-engine profile from a CDE record.
func MatchProfile(cde models.CDEProfile) matching.Profile {
	return matching.Profile{
		ID:                        cde.ID,
		Name:                      cde.OrganizationName,
		PrimaryStates:             cde.PrimaryStates,
		TargetSectors:             cde.TargetSectors,
		MinDealSize:               cde.MinDealSize,
		MaxDealSize:               cde.MaxDealSize,
		SmallDealFund:             cde.SmallDealFund,
		RuralFocus:                cde.RuralFocus,
		UrbanFocus:                cde.UrbanFocus,
		RequireSeverelyDistressed: cde.RequireSeverelyDistressed,
	}
}

// Criteria builds the optional mission-fit criteria from a CDE record. Returns
// nil for a zero-valued profile so the merit engine falls back to its neutral
// mission-fit score.
func Criteria(cde *models.CDEProfile) *scoring.CDECriteria {
	if cde == nil {
		return nil
	}
	return &scoring.CDECriteria{
		TargetSectors:             cde.TargetSectors,
		GeographicFocus:           cde.PrimaryStates,
		MinDealSize:               cde.MinDealSize,
		MaxDealSize:               cde.MaxDealSize,
		RequireSeverelyDistressed: cde.RequireSeverelyDistressed,
	}
}

// monthsBetween counts whole months from now to the start date, rounding up
// partial months and clamping the past to zero.
func monthsBetween(now, start time.Time) int {
	if !start.After(now) {
		return 0
	}
	days := start.Sub(now).Hours() / 24
	return int(math.Ceil(days / 30))
}
