// internal/readiness/weights.go
package readiness

// Weights holds the dimension budgets and bands for the readiness engine.
// Like the merit model, the tables are versioned: changing a weight re-ranks
// every deal in the marketplace, so it requires a new Version, not an edit.
type Weights struct {
	Version string

	// Project Basics (presence-based)
	BasicsMax  int
	NamePts    int
	TypePts    int
	SponsorPts int

	// Location & Tract (presence-based)
	LocationMax     int
	AddressPts      int
	CityStateZipPts int
	TractPts        int
	TractEligiblePts int

	// Site Control: a single banded value keyed by control status.
	SiteControlMax int
	SiteControlPts map[string]int

	// Capital Stack
	CapitalStackMax int
	CostPresentPts  int
	GapKnownPts     int
	CommittedBands  []CommittedBand

	// Timeline: banded by months to construction start. No start date at all
	// scores zero regardless of any months figure supplied.
	TimelineMax   int
	TimelineBands []TimelineBand
	TimelineFarPts int

	// Approvals: banded by entitlement status.
	ApprovalsMax int
	ApprovalPts  map[string]int
}

// CommittedBand maps a committed-capital percentage floor to points.
type CommittedBand struct {
	MinPct float64
	Points int
}

// TimelineBand maps a months-to-start ceiling to points.
type TimelineBand struct {
	MaxMonths int
	Points    int
}

// DefaultWeights returns the v1 dimension tables. The six maxima sum to 100.
func DefaultWeights() Weights {
	return Weights{
		Version: "1.0.0",

		BasicsMax:  20,
		NamePts:    8,
		TypePts:    4,
		SponsorPts: 8,

		LocationMax:      20,
		AddressPts:       5,
		CityStateZipPts:  5,
		TractPts:         5,
		TractEligiblePts: 5,

		SiteControlMax: 20,
		SiteControlPts: map[string]int{
			"owned":          20,
			"under_contract": 10,
			"loi":            5,
			"none":           0,
		},

		CapitalStackMax: 20,
		CostPresentPts:  5,
		GapKnownPts:     5,
		CommittedBands: []CommittedBand{
			{MinPct: 60, Points: 10},
			{MinPct: 40, Points: 7},
			{MinPct: 20, Points: 4},
		},

		TimelineMax: 10,
		TimelineBands: []TimelineBand{
			{MaxMonths: 6, Points: 10},
			{MaxMonths: 12, Points: 7},
			{MaxMonths: 18, Points: 4},
		},
		TimelineFarPts: 2,

		ApprovalsMax: 10,
		ApprovalPts: map[string]int{
			"approved":  10,
			"submitted": 6,
			"started":   3,
			"none":      0,
		},
	}
}
