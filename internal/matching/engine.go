// internal/matching/engine.go
package matching

import (
	"fmt"
	"sort"
	"strings"
)

// Engine scores project/CDE pairings. Stateless; one Match call per catalog
// entry, then MatchAll handles filtering and ordering.
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

// Match scores one project against one CDE profile. The additive score is
// clamped to [0,100]; overflow is expected, not an error.
func (e *Engine) Match(project Project, profile Profile) Result {
	w := e.weights
	components := Components{}
	reasons := []string{}

	// Geography
	switch {
	case len(profile.PrimaryStates) == 0:
		components.Geography = w.NationalPts
		reasons = append(reasons, "CDE serves nationwide")
	case containsFold(profile.PrimaryStates, project.State):
		components.Geography = w.StateMatchPts
		reasons = append(reasons, fmt.Sprintf("CDE actively serves %s", project.State))
	}

	// Sector: any holder tag appearing inside the project type counts.
	if sectorMatches(profile.TargetSectors, project.ProjectType) {
		components.Sector = w.SectorMatchPts
		reasons = append(reasons, "Project type aligns with CDE focus")
	}

	// Deal size
	switch {
	case project.AllocationRequest >= profile.MinDealSize && project.AllocationRequest <= profile.MaxDealSize:
		components.DealSize = w.SizeInRangePts
		reasons = append(reasons, "Deal size within CDE range")
	case project.AllocationRequest < profile.MinDealSize && profile.SmallDealFund:
		components.DealSize = w.SmallDealFundPts
		reasons = append(reasons, "Small deal fund accepts smaller transactions")
	}

	// Rural/urban focus, skipped when the project's character is unknown.
	if project.IsRural != nil {
		switch {
		case *project.IsRural && profile.RuralFocus:
			components.RuralUrban = w.RuralUrbanPts
			reasons = append(reasons, "CDE has rural focus")
		case !*project.IsRural && profile.UrbanFocus:
			components.RuralUrban = w.RuralUrbanPts
			reasons = append(reasons, "CDE serves urban areas")
		}
	}

	// Severe-distress requirement. A holder that does not impose one is
	// easier to close with, so its absence also earns points.
	switch {
	case profile.RequireSeverelyDistressed && project.SeverelyDistressed:
		components.Distress = w.DistressMetPts
		reasons = append(reasons, "Project meets severely distressed requirement")
	case !profile.RequireSeverelyDistressed:
		components.Distress = w.NoDistressReqPts
		reasons = append(reasons, "CDE does not restrict to severely distressed tracts")
	}

	score := components.Geography + components.Sector + components.DealSize +
		components.RuralUrban + components.Distress
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return Result{
		CDEID:      profile.ID,
		CDEName:    profile.Name,
		Score:      score,
		Quality:    e.Quality(score),
		Components: components,
		Reasons:    reasons,
	}
}

// MatchAll scores a project against a whole catalog, drops results under the
// minimum score, and returns the top results ordered by score descending with
// CDE id as the deterministic tiebreak.
func (e *Engine) MatchAll(project Project, catalog []Profile, opts Options) []Result {
	if opts.MinScore == 0 && opts.MaxResults == 0 {
		opts = DefaultOptions()
	}

	results := []Result{}
	for _, profile := range catalog {
		result := e.Match(project, profile)
		if result.Score >= opts.MinScore {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CDEID < results[j].CDEID
	})

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

// Quality maps a clamped score to its display band.
func (e *Engine) Quality(score int) string {
	w := e.weights
	switch {
	case score >= w.ExcellentFloor:
		return QualityExcellent
	case score >= w.GoodFloor:
		return QualityGood
	case score >= w.FairFloor:
		return QualityFair
	default:
		return QualityWeak
	}
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func sectorMatches(sectors []string, projectType string) bool {
	projectType = strings.ToLower(projectType)
	for _, sector := range sectors {
		if sector == "" {
			continue
		}
		if strings.Contains(projectType, strings.ToLower(sector)) {
			return true
		}
	}
	return false
}
