// internal/readiness/engine.go
package readiness

import (
	"fmt"
	"math"
	"strings"
)

// Engine computes readiness scores against a fixed weight table. Readiness is
// not eligibility and not approval: it measures how far along a deal is, for
// marketplace sorting, CDE triage, and shovel-ready signals.
type Engine struct {
	weights Weights
}

// NewEngine binds an engine to a weight table.
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Weights returns the bound weight table.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score evaluates the six readiness dimensions and derives tier and statuses.
func (e *Engine) Score(in Input) Result {
	breakdown := []DimensionScore{
		e.dimension("project_basics", "Project Basics", e.scoreBasics(in), e.weights.BasicsMax),
		e.dimension("location_tract", "Location & Tract", e.scoreLocation(in), e.weights.LocationMax),
		e.dimension("site_control", "Site Control", e.scoreSiteControl(in), e.weights.SiteControlMax),
		e.dimension("capital_stack", "Capital Stack", e.scoreCapitalStack(in), e.weights.CapitalStackMax),
		e.dimension("timeline", "Timeline", e.scoreTimeline(in), e.weights.TimelineMax),
		e.dimension("approvals", "Approvals", e.scoreApprovals(in), e.weights.ApprovalsMax),
	}

	totalScore := 0
	maxScore := 0
	for _, dim := range breakdown {
		totalScore += dim.Score
		maxScore += dim.MaxScore
	}

	percentage := 0
	if maxScore > 0 {
		percentage = int(math.Round(float64(totalScore) / float64(maxScore) * 100))
	}

	return Result{
		TotalScore:     totalScore,
		MaxScore:       maxScore,
		Percentage:     percentage,
		Tier:           classifyTier(totalScore),
		WeightsVersion: e.weights.Version,
		Breakdown:      breakdown,
	}
}

// MeetsThreshold reports whether the deal clears the given readiness cutoff.
// Pass DefaultThreshold unless the caller has its own gate.
func (e *Engine) MeetsThreshold(in Input, threshold int) bool {
	return e.Score(in).TotalScore >= threshold
}

// Gaps lists the dimensions that are not yet complete, for intake follow-up.
func (e *Engine) Gaps(in Input) []string {
	gaps := []string{}
	for _, dim := range e.Score(in).Breakdown {
		switch dim.Status {
		case StatusMissing:
			gaps = append(gaps, fmt.Sprintf("%s: Not started", dim.Label))
		case StatusPartial:
			gaps = append(gaps, fmt.Sprintf("%s: Incomplete (%d/%d)", dim.Label, dim.Score, dim.MaxScore))
		}
	}
	return gaps
}

func (e *Engine) dimension(id, label string, score, max int) DimensionScore {
	status := StatusMissing
	switch {
	case score >= max:
		status = StatusComplete
	case score > 0:
		status = StatusPartial
	}
	return DimensionScore{ID: id, Label: label, Score: score, MaxScore: max, Status: status}
}

func (e *Engine) scoreBasics(in Input) int {
	score := 0
	if strings.TrimSpace(in.ProjectName) != "" {
		score += e.weights.NamePts
	}
	if strings.TrimSpace(in.ProjectType) != "" {
		score += e.weights.TypePts
	}
	if strings.TrimSpace(in.SponsorName) != "" {
		score += e.weights.SponsorPts
	}
	return score
}

func (e *Engine) scoreLocation(in Input) int {
	score := 0
	if strings.TrimSpace(in.Address) != "" {
		score += e.weights.AddressPts
	}
	if strings.TrimSpace(in.City) != "" && strings.TrimSpace(in.State) != "" && strings.TrimSpace(in.Zip) != "" {
		score += e.weights.CityStateZipPts
	}
	if strings.TrimSpace(in.CensusTract) != "" {
		score += e.weights.TractPts
	}
	if in.TractEligible {
		score += e.weights.TractEligiblePts
	}
	return score
}

func (e *Engine) scoreSiteControl(in Input) int {
	return e.weights.SiteControlPts[strings.ToLower(strings.TrimSpace(in.SiteControl))]
}

func (e *Engine) scoreCapitalStack(in Input) int {
	score := 0
	if in.TotalProjectCost > 0 {
		score += e.weights.CostPresentPts
	}
	if in.FinancingGapKnown {
		score += e.weights.GapKnownPts
	}
	for _, band := range e.weights.CommittedBands {
		if in.CommittedCapitalPercent >= band.MinPct {
			score += band.Points
			break
		}
	}
	return score
}

func (e *Engine) scoreTimeline(in Input) int {
	if !in.HasStartDate {
		return 0
	}
	for _, band := range e.weights.TimelineBands {
		if in.MonthsToStart <= band.MaxMonths {
			return band.Points
		}
	}
	return e.weights.TimelineFarPts
}

func (e *Engine) scoreApprovals(in Input) int {
	return e.weights.ApprovalPts[strings.ToLower(strings.TrimSpace(in.ApprovalStatus))]
}

func classifyTier(score int) string {
	switch {
	case score >= 80:
		return TierShovelReady
	case score >= 60:
		return TierAdvanced
	case score >= 40:
		return TierDeveloping
	default:
		return TierEarly
	}
}
