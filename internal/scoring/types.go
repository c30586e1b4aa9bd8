// internal/scoring/types.go
package scoring

// Input is the normalized record the merit engine scores. Callers build it
// through the intake adapter; rates are percentages and the income ratio is
// expressed against area median, where 100 means parity.
type Input struct {
	// Location data
	CensusTract             string  `json:"censusTract"`
	PovertyRate             float64 `json:"povertyRate"`
	MedianFamilyIncome      float64 `json:"medianFamilyIncome"`
	UnemploymentRate        float64 `json:"unemploymentRate"`
	PersistentPovertyCounty bool    `json:"isPersistentPovertyCounty"`
	NonMetro                bool    `json:"isNonMetro"`

	// Project data
	TotalProjectCost       float64 `json:"totalProjectCost"`
	JobsCreated            int     `json:"jobsCreated"`
	JobsRetained           int     `json:"jobsRetained"`
	HousingUnits           int     `json:"housingUnits,omitempty"`
	AffordableHousingUnits int     `json:"affordableHousingUnits,omitempty"`

	// Readiness indicators
	SiteControl             string  `json:"siteControl"`
	HasProForma             bool    `json:"hasProForma"`
	HasThirdPartyReports    bool    `json:"hasThirdPartyReports"`
	CommittedSourcesPercent float64 `json:"committedSourcesPercent"`
	TimelineRealistic       bool    `json:"timelineRealistic"`

	// Mission alignment
	ProjectType   string   `json:"projectType"`
	TargetSectors []string `json:"targetSector"`
	DealSize      float64  `json:"dealSize"`

	// Optional counterparty criteria for mission fit
	CDECriteria *CDECriteria `json:"cdeCriteria,omitempty"`
}

// CDECriteria captures an allocation holder's stated preferences, used only
// by the mission-fit pillar. Absence yields the neutral mission-fit score.
type CDECriteria struct {
	TargetSectors             []string `json:"targetSectors"`
	GeographicFocus           []string `json:"geographicFocus"`
	MinDealSize               float64  `json:"minDealSize"`
	MaxDealSize               float64  `json:"maxDealSize"`
	RequireSeverelyDistressed bool     `json:"requireSeverelyDistressed"`
}

// Result is the immutable scoring output. A new call produces a new Result.
type Result struct {
	TotalScore       int              `json:"totalScore"`
	Tier             int              `json:"tier"` // 1=Greenlight, 2=Watchlist, 3=Defer
	ModelVersion     string           `json:"modelVersion"`
	Breakdown        Breakdown        `json:"breakdown"`
	EligibilityFlags EligibilityFlags `json:"eligibilityFlags"`
	ReasonCodes      []string         `json:"reasonCodes"`
}

type Breakdown struct {
	EconomicDistress DistressPillar   `json:"economicDistress"`
	ImpactPotential  ImpactPillar     `json:"impactPotential"`
	ProjectReadiness ReadinessPillar  `json:"projectReadiness"`
	MissionFit       MissionFitPillar `json:"missionFit"`
}

type DistressPillar struct {
	Score      int                `json:"score"`
	MaxScore   int                `json:"maxScore"`
	Components DistressComponents `json:"components"`
}

type DistressComponents struct {
	PovertyPercentile      int `json:"povertyPercentile"`
	MFIScore               int `json:"mfiScore"`
	UnemploymentPercentile int `json:"unemploymentPercentile"`
	PersistentPoverty      int `json:"persistentPoverty"`
	NonMetro               int `json:"nonMetro"`
	CapitalDesert          int `json:"capitalDesert"`
}

type ImpactPillar struct {
	Score      int              `json:"score"`
	MaxScore   int              `json:"maxScore"`
	Components ImpactComponents `json:"components"`
}

type ImpactComponents struct {
	JobCreation       int `json:"jobCreation"`
	EssentialServices int `json:"essentialServices"`
	LowIncomeResidents int `json:"lowIncomeResidents"`
	CatalyticEffect   int `json:"catalyticEffect"`
	Leverage          int `json:"leverage"`
}

type ReadinessPillar struct {
	Score      int                 `json:"score"`
	MaxScore   int                 `json:"maxScore"`
	Components ReadinessComponents `json:"components"`
}

type ReadinessComponents struct {
	SiteControl       int `json:"siteControl"`
	ProForma          int `json:"proForma"`
	ThirdPartyReports int `json:"thirdPartyReports"`
	CommittedSources  int `json:"committedSources"`
	Timeline          int `json:"timeline"`
}

type MissionFitPillar struct {
	Score      int                  `json:"score"`
	MaxScore   int                  `json:"maxScore"`
	Components MissionFitComponents `json:"components"`
}

type MissionFitComponents struct {
	SectorAlignment    int `json:"sectorAlignment"`
	GeographyAlignment int `json:"geographyAlignment"`
	DealSizeAlignment  int `json:"dealSizeAlignment"`
}

// EligibilityFlags are informational threshold flags; they never gate scoring.
type EligibilityFlags struct {
	NMTCEligible          bool `json:"nmtcEligible"`
	SeverelyDistressed    bool `json:"severelyDistressed"`
	QualifiedCensusTracts bool `json:"qualifiedCensusTracts"`
}

// Reason codes appended when a pillar falls below its Watchlist threshold.
const (
	ReasonLowDistress = "LOW_DISTRESS"
	ReasonLowImpact   = "LOW_IMPACT"
	ReasonNotReady    = "NOT_READY"
	ReasonPoorFit     = "POOR_FIT"
)

// Tier labels for display.
const (
	TierGreenlight = 1
	TierWatchlist  = 2
	TierDefer      = 3
)
