// internal/pricing/types.go
package pricing

import "errors"

// Input describes one credit stream to price.
type Input struct {
	Program       Program `json:"program"`
	EligibleBasis float64 `json:"eligibleBasis"`
	CreditPrice   float64 `json:"creditPrice"` // price per dollar of credit, e.g. 0.80

	// IsDDA applies the difficult-development-area basis boost on the
	// programs that allow it.
	IsDDA bool `json:"isDDA,omitempty"`

	// QEI overrides the eligible basis for NMTC when non-zero.
	QEI float64 `json:"qei,omitempty"`
}

// YearCredit is one entry of a program's year-indexed delivery schedule.
type YearCredit struct {
	Year    int     `json:"year"`
	Percent float64 `json:"percent"`
	Amount  float64 `json:"amount"`
}

// Result is the priced credit stream.
type Result struct {
	Program            Program      `json:"program"`
	DisplayName        string       `json:"displayName"`
	CreditBasis        float64      `json:"creditBasis"`
	BasisBoost         float64      `json:"basisBoost,omitempty"`
	TotalCreditPercent float64      `json:"totalCreditPercent"`
	TotalCredits       float64      `json:"totalCredits"`
	InvestmentAmount   float64      `json:"investmentAmount"`
	CashOnCash         float64      `json:"cashOnCash"`
	CreditSchedule     []YearCredit `json:"creditSchedule"`
	TablesVersion      string       `json:"tablesVersion"`
}

// IndicativeResult prices one stream at the low, mid, and high desk marks.
type IndicativeResult struct {
	Low  Result `json:"low"`
	Mid  Result `json:"mid"`
	High Result `json:"high"`
}

// StackResult aggregates independently priced streams. The blended return is
// investment-weighted, never a mean of the per-stream returns.
type StackResult struct {
	Streams           []Result `json:"streams"`
	TotalCredits      float64  `json:"totalCredits"`
	TotalInvestment   float64  `json:"totalInvestment"`
	BlendedCashOnCash float64  `json:"blendedCashOnCash"`
	TablesVersion     string   `json:"tablesVersion"`
}

// Pricing is configuration-driven; these errors signal caller bugs, not data
// quality problems, and are never recovered by defaulting.
var (
	ErrUnknownProgram = errors.New("unknown credit program")
	ErrInvalidPrice   = errors.New("credit price must be greater than zero")
	ErrEmptyStack     = errors.New("credit stack has no streams")
)
