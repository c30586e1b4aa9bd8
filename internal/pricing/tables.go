// internal/pricing/tables.go
package pricing

// Program identifies a credit program with a fixed statutory schedule.
type Program string

const (
	ProgramNMTC       Program = "NMTC"
	ProgramHTC        Program = "HTC"
	ProgramLIHTC9     Program = "LIHTC_9"
	ProgramLIHTC4     Program = "LIHTC_4"
	ProgramOZ         Program = "OZ"
	ProgramBrownfield Program = "BROWNFIELD"
)

// PriceRange is the indicative market price per credit dollar.
type PriceRange struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// Tables holds the per-program schedules, totals, and market price ranges.
// Versioned: schedule percentages are statutory constants and price ranges
// are quarterly desk marks, and neither may drift silently.
type Tables struct {
	Version string

	// Year-indexed credit percentage schedules. The OZ schedule is empty
	// (deferral-only program); Brownfield is a single-year 100% of cleanup
	// cost.
	Schedules map[Program][]float64

	// Total credit percentage per program; equals the sum of its schedule
	// where one exists.
	TotalCredit map[Program]float64

	PriceRanges map[Program]PriceRange

	// Basis boost for designated difficult-development areas, applied only
	// to the programs listed in BoostEligible.
	BasisBoostPct float64
	BoostEligible map[Program]bool

	DisplayNames map[Program]string
}

// DefaultTables returns the v1 program tables.
func DefaultTables() Tables {
	return Tables{
		Version: "1.0.0",

		Schedules: map[Program][]float64{
			ProgramNMTC:       {0.05, 0.05, 0.05, 0.06, 0.06, 0.06, 0.06},
			ProgramHTC:        {0.04, 0.04, 0.04, 0.04, 0.04},
			ProgramLIHTC9:     {0.09, 0.09, 0.09, 0.09, 0.09, 0.09, 0.09, 0.09, 0.09, 0.09},
			ProgramLIHTC4:     {0.04, 0.04, 0.04, 0.04, 0.04, 0.04, 0.04, 0.04, 0.04, 0.04},
			ProgramOZ:         {},
			ProgramBrownfield: {1.0},
		},

		TotalCredit: map[Program]float64{
			ProgramNMTC:       0.39,
			ProgramHTC:        0.20,
			ProgramLIHTC9:     0.90,
			ProgramLIHTC4:     0.40,
			ProgramOZ:         0.15,
			ProgramBrownfield: 1.0,
		},

		PriceRanges: map[Program]PriceRange{
			ProgramNMTC:       {Low: 0.75, Mid: 0.80, High: 0.85},
			ProgramHTC:        {Low: 0.88, Mid: 0.92, High: 0.96},
			ProgramLIHTC9:     {Low: 0.88, Mid: 0.93, High: 0.98},
			ProgramLIHTC4:     {Low: 0.85, Mid: 0.90, High: 0.95},
			ProgramOZ:         {Low: 0.85, Mid: 0.90, High: 0.95},
			ProgramBrownfield: {Low: 0.70, Mid: 0.80, High: 0.90},
		},

		BasisBoostPct: 0.30,
		BoostEligible: map[Program]bool{
			ProgramLIHTC9: true,
			ProgramLIHTC4: true,
		},

		DisplayNames: map[Program]string{
			ProgramNMTC:       "New Markets Tax Credit",
			ProgramHTC:        "Historic Tax Credit",
			ProgramLIHTC9:     "LIHTC 9%",
			ProgramLIHTC4:     "LIHTC 4%",
			ProgramOZ:         "Opportunity Zone",
			ProgramBrownfield: "Brownfield",
		},
	}
}
