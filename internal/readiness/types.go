// internal/readiness/types.go
package readiness

// Input is the intake snapshot the readiness engine scores. Most fields are
// presence-based: an empty string or zero value simply earns no points.
type Input struct {
	// Project basics
	ProjectName string `json:"projectName"`
	ProjectType string `json:"projectType"`
	SponsorName string `json:"sponsorName"`

	// Location & tract
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	CensusTract   string `json:"censusTract"`
	TractEligible bool   `json:"tractEligible"`

	// Site control status: owned, under_contract, loi, none
	SiteControl string `json:"siteControl"`

	// Capital stack
	TotalProjectCost float64 `json:"totalProjectCost"`
	FinancingGapKnown bool    `json:"financingGapKnown"`
	CommittedCapitalPercent float64 `json:"committedCapitalPct"`

	// Timeline. MonthsToStart is ignored when HasStartDate is false: a deal
	// without a projected construction start has no timeline, not a far one.
	HasStartDate  bool `json:"hasStartDate"`
	MonthsToStart int  `json:"monthsToStart"`

	// Approvals status: approved, submitted, started, none
	ApprovalStatus string `json:"approvalStatus"`
}

// DimensionScore is one row of the breakdown, shaped for UI display.
type DimensionScore struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Status   string `json:"status"` // complete, partial, missing
}

// Result is the readiness score plus its per-dimension breakdown.
type Result struct {
	TotalScore     int              `json:"totalScore"`
	MaxScore       int              `json:"maxScore"`
	Percentage     int              `json:"percentage"`
	Tier           string           `json:"tier"`
	WeightsVersion string           `json:"weightsVersion"`
	Breakdown      []DimensionScore `json:"breakdown"`
}

// Dimension statuses.
const (
	StatusComplete = "complete"
	StatusPartial  = "partial"
	StatusMissing  = "missing"
)

// Readiness tiers, thresholded on total score.
const (
	TierShovelReady = "shovel-ready"
	TierAdvanced    = "advanced"
	TierDeveloping  = "developing"
	TierEarly       = "early"
)

// DefaultThreshold is the conventional minimum-readiness cutoff. Callers gate
// with their own value; this is only the default.
const DefaultThreshold = 40
