// internal/models/deal.go
package models

import "time"

// DealRecord is the persisted intake record for a project seeking credit
// allocation. Tract fields come from an external data vendor and are of
// variable quality; the intake adapter normalizes them before any engine
// sees them.
type DealRecord struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectName"`
	ProjectType string `json:"projectType"`
	SponsorName string `json:"sponsorName"`
	Status      string `json:"status"`

	// Location
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	CensusTract string `json:"censusTract"`

	// Tract economics. TractMFIRatio is the tract median family income as a
	// percent of area median, 100 meaning parity.
	TractPovertyRate  float64  `json:"tractPovertyRate"`
	TractMFIRatio     float64  `json:"tractMfiRatio"`
	TractUnemployment float64  `json:"tractUnemployment"`
	TractTypes        []string `json:"tractTypes"`
	TractEligible     bool     `json:"tractEligible"`
	DDADesignated     bool     `json:"ddaDesignated"`

	// IsRural is tri-state: nil when the rural/urban character is unknown.
	IsRural *bool `json:"isRural,omitempty"`

	// Economics
	TotalProjectCost       float64 `json:"totalProjectCost"`
	CommittedCapitalPct    float64 `json:"committedCapitalPct"`
	AllocationRequested    float64 `json:"allocationRequested"`
	JobsCreated            int     `json:"jobsCreated"`
	JobsRetained           int     `json:"jobsRetained"`
	HousingUnits           int     `json:"housingUnits,omitempty"`
	AffordableHousingUnits int     `json:"affordableHousingUnits,omitempty"`

	// Readiness indicators
	SiteControl             string     `json:"siteControl"`
	ProFormaComplete        bool       `json:"proFormaComplete"`
	ThirdPartyReports       bool       `json:"thirdPartyReports"`
	ApprovalStatus          string     `json:"approvalStatus"`
	ProjectedStartDate      *time.Time `json:"projectedStartDate,omitempty"`
	ProjectedCompletionDate *time.Time `json:"projectedCompletionDate,omitempty"`

	// Mission
	TargetSectors []string `json:"targetSectors"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tract type tags carried in TractTypes.
const (
	TractTypePersistentPoverty = "Persistent Poverty"
	TractTypeNonMetro          = "Non-Metro"
)

// HasTractType reports whether the tract carries the given designation tag.
func (d *DealRecord) HasTractType(tag string) bool {
	for _, t := range d.TractTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// DealSize is the amount used for size-based matching and mission fit: the
// requested allocation when stated, otherwise the full project cost.
func (d *DealRecord) DealSize() float64 {
	if d.AllocationRequested > 0 {
		return d.AllocationRequested
	}
	return d.TotalProjectCost
}

// DealScoreRecord is a stored scoring run, one row per deal per model version.
type DealScoreRecord struct {
	ID             string    `json:"id"`
	DealID         string    `json:"dealId"`
	ModelVersion   string    `json:"modelVersion"`
	TotalScore     int       `json:"totalScore"`
	Tier           int       `json:"tier"`
	ReadinessScore int       `json:"readinessScore"`
	ReadinessTier  string    `json:"readinessTier"`
	BreakdownJSON  string    `json:"breakdown"`
	ScoredAt       time.Time `json:"scoredAt"`
}

// DealMatchRecord is a stored project/CDE pairing from a matching pass.
type DealMatchRecord struct {
	ID        string    `json:"id"`
	DealID    string    `json:"dealId"`
	CDEID     string    `json:"cdeId"`
	Score     int       `json:"score"`
	Quality   string    `json:"quality"`
	Reasons   []string  `json:"reasons"`
	MatchedAt time.Time `json:"matchedAt"`
}
