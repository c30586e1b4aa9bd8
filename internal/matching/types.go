// internal/matching/types.go
package matching

// Project is the deal summary the matcher evaluates against a CDE catalog.
type Project struct {
	DealID             string  `json:"dealId"`
	State              string  `json:"state"`
	ProjectType        string  `json:"projectType"`
	AllocationRequest  float64 `json:"allocationRequest"`
	SeverelyDistressed bool    `json:"severelyDistressed"`

	// IsRural is a tri-state: nil means the rural/urban character is unknown
	// and the focus check is skipped entirely.
	IsRural *bool `json:"isRural,omitempty"`
}

// Profile is an allocation holder's published matching criteria.
type Profile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PrimaryStates []string `json:"primaryStates"`
	TargetSectors []string `json:"targetSectors"`
	MinDealSize   float64  `json:"minDealSize"`
	MaxDealSize   float64  `json:"maxDealSize"`
	SmallDealFund bool     `json:"smallDealFund"`
	RuralFocus    bool     `json:"ruralFocus"`
	UrbanFocus    bool     `json:"urbanFocus"`

	RequireSeverelyDistressed bool `json:"requireSeverelyDistressed"`
}

// Components itemizes where the points came from.
type Components struct {
	Geography  int `json:"geography"`
	Sector     int `json:"sector"`
	DealSize   int `json:"dealSize"`
	RuralUrban int `json:"ruralUrban"`
	Distress   int `json:"distress"`
}

// Result is a single project/CDE pairing. Every non-zero check contributes a
// reason string; the reasons are part of the contract, not decoration.
type Result struct {
	CDEID      string     `json:"cdeId"`
	CDEName    string     `json:"cdeName"`
	Score      int        `json:"score"`
	Quality    string     `json:"quality"`
	Components Components `json:"components"`
	Reasons    []string   `json:"reasons"`
}

// Match qualities.
const (
	QualityExcellent = "excellent"
	QualityGood      = "good"
	QualityFair      = "fair"
	QualityWeak      = "weak"
)

// Options controls a batch match pass over a catalog.
type Options struct {
	MinScore   int `json:"minScore"`
	MaxResults int `json:"maxResults"`
}

// DefaultOptions returns the conventional marketplace settings.
func DefaultOptions() Options {
	return Options{MinScore: 40, MaxResults: 10}
}
