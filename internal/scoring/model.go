// internal/scoring/model.go
package scoring

// Model holds every weight, threshold, and band used by the merit engine.
// The tables are versioned: any change to a constant requires a new Version,
// because changing them silently re-ranks every live deal. Engines are bound
// to one Model at construction and never mutate it.
type Model struct {
	Version string

	// Pillar maxima. Must sum to 100.
	DistressMax   int
	ImpactMax     int
	ReadinessMax  int
	MissionFitMax int

	// Economic distress
	PovertyCeiling        float64 // poverty rate at which the percentile sub-score maxes out
	MFIBase               float64 // income ratio at which the deficit score reaches zero
	MFIDivisor            float64
	UnemploymentCeiling   float64
	PercentileWeight      float64 // down-weights the three continuous sub-scores
	PersistentPovertyPts  int
	NonMetroPts           int
	CapitalDesertHighPts  int // poverty over floor AND non-metro
	CapitalDesertLowPts   int // poverty over floor only
	CapitalDesertPoverty  float64

	// Impact potential
	JobsPerMillionFactor    float64
	JobCreationMax          float64
	EssentialServicePts     int
	EssentialServiceKeywords []string
	AffordableShareMax      float64
	AffordableNeutralPts    int
	CatalyticHighCost       float64
	CatalyticMidCost        float64
	CatalyticHighPts        int
	CatalyticMidPts         int
	CatalyticLowPts         int
	LeverageHighPct         float64
	LeverageMidPct          float64
	LeverageHighPts         int
	LeverageMidPts          int
	LeverageLowPts          int

	// Project readiness (compressed merit variant)
	SiteControlPts    map[string]int
	ProFormaPts       int
	ReportsPts        int
	CommittedBands    []CommittedBand
	TimelinePts       int

	// Mission fit
	SectorAlignmentPts   int
	GeographyAlignmentPts int
	DealSizeAlignmentPts int
	NeutralMissionFitPts int

	// Tiering. Tier 1 needs distress >= Tier1DistressFloor AND impact >=
	// Tier1ImpactFloor (70% / 65% of the pillar maxima). Tier 2 needs either
	// pillar at 60% of max. Total score never participates.
	Tier1DistressFloor int
	Tier1ImpactFloor   int
	Tier2DistressFloor int
	Tier2ImpactFloor   int

	// Reason-code floors (the Tier-2 thresholds per pillar)
	NotReadyFloor int
	PoorFitFloor  int

	// Eligibility flag thresholds
	NMTCPovertyFloor     float64
	NMTCIncomeCeiling    float64
	SeverePovertyFloor   float64
	SevereUnemployment   float64
	QCTPovertyFloor      float64
}

// CommittedBand maps a committed-sources percentage floor to points.
type CommittedBand struct {
	MinPct float64
	Points int
}

// DefaultModel returns the v1 weight tables.
func DefaultModel() Model {
	return Model{
		Version: "1.0.0",

		DistressMax:   40,
		ImpactMax:     35,
		ReadinessMax:  15,
		MissionFitMax: 10,

		PovertyCeiling:       50,
		MFIBase:              80,
		MFIDivisor:           8,
		UnemploymentCeiling:  20,
		PercentileWeight:     0.25,
		PersistentPovertyPts: 3,
		NonMetroPts:          3,
		CapitalDesertHighPts: 4,
		CapitalDesertLowPts:  2,
		CapitalDesertPoverty: 20,

		JobsPerMillionFactor:     2,
		JobCreationMax:           15,
		EssentialServicePts:      8,
		EssentialServiceKeywords: []string{"healthcare", "education", "food", "childcare"},
		AffordableShareMax:       5,
		AffordableNeutralPts:     3,
		CatalyticHighCost:        10_000_000,
		CatalyticMidCost:         5_000_000,
		CatalyticHighPts:         4,
		CatalyticMidPts:          2,
		CatalyticLowPts:          1,
		LeverageHighPct:          70,
		LeverageMidPct:           50,
		LeverageHighPts:          3,
		LeverageMidPts:           2,
		LeverageLowPts:           1,

		SiteControlPts: map[string]int{
			"owned":          4,
			"under_contract": 3,
			"option":         2,
			"none":           0,
		},
		ProFormaPts: 3,
		ReportsPts:  3,
		CommittedBands: []CommittedBand{
			{MinPct: 70, Points: 3},
			{MinPct: 50, Points: 2},
			{MinPct: 30, Points: 1},
		},
		TimelinePts: 2,

		SectorAlignmentPts:    4,
		GeographyAlignmentPts: 3,
		DealSizeAlignmentPts:  3,
		NeutralMissionFitPts:  5,

		Tier1DistressFloor: 28,
		Tier1ImpactFloor:   23,
		Tier2DistressFloor: 24,
		Tier2ImpactFloor:   21,

		NotReadyFloor: 8,
		PoorFitFloor:  5,

		NMTCPovertyFloor:   20,
		NMTCIncomeCeiling:  80,
		SeverePovertyFloor: 30,
		SevereUnemployment: 15,
		QCTPovertyFloor:    25,
	}
}
