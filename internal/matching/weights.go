// internal/matching/weights.go
package matching

// Weights holds the point budgets for the four match checks plus the quality
// thresholds. Versioned for the same reason as the scoring models: a changed
// budget reorders every stored match.
type Weights struct {
	Version string

	// Geography: a CDE with no primary states serves nationwide and earns the
	// national award on any project; an explicit state hit earns more.
	NationalPts   int
	StateMatchPts int

	// Sector
	SectorMatchPts int

	// Deal size
	SizeInRangePts  int
	SmallDealFundPts int

	// Rural / urban focus
	RuralUrbanPts int

	// Severe-distress requirement
	DistressMetPts      int
	NoDistressReqPts    int

	// Quality thresholds on the clamped score
	ExcellentFloor int
	GoodFloor      int
	FairFloor      int
}

// DefaultWeights returns the v1 point budgets.
func DefaultWeights() Weights {
	return Weights{
		Version: "1.0.0",

		NationalPts:   25,
		StateMatchPts: 30,

		SectorMatchPts: 25,

		SizeInRangePts:   20,
		SmallDealFundPts: 15,

		RuralUrbanPts: 10,

		DistressMetPts:   15,
		NoDistressReqPts: 10,

		ExcellentFloor: 80,
		GoodFloor:      60,
		FairFloor:      40,
	}
}
