// internal/pricing/engine.go
package pricing

import "fmt"

// Engine prices credit streams against a fixed program table set.
type Engine struct {
	tables Tables
}

// NewEngine binds an engine to its program tables.
func NewEngine(tables Tables) *Engine {
	return &Engine{tables: tables}
}

// Tables returns the bound tables.
func (e *Engine) Tables() Tables {
	return e.tables
}

// Price computes the credit economics for one stream.
//
// Total credit = credit basis x program percentage. Investment = credits x
// price. Cash-on-cash = percentage / price, an algebraic identity rather than
// a simulation.
func (e *Engine) Price(in Input) (Result, error) {
	t := e.tables

	totalCreditPercent, ok := t.TotalCredit[in.Program]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownProgram, in.Program)
	}
	if in.CreditPrice <= 0 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidPrice, in.CreditPrice)
	}

	basis := in.EligibleBasis
	basisBoost := 0.0
	if in.IsDDA && t.BoostEligible[in.Program] {
		basisBoost = in.EligibleBasis * t.BasisBoostPct
		basis = in.EligibleBasis * (1 + t.BasisBoostPct)
	}

	// NMTC credits run off the qualified equity investment when one is given.
	creditBasis := basis
	if in.Program == ProgramNMTC && in.QEI > 0 {
		creditBasis = in.QEI
	}

	totalCredits := creditBasis * totalCreditPercent
	investmentAmount := totalCredits * in.CreditPrice
	cashOnCash := totalCreditPercent / in.CreditPrice

	schedule := t.Schedules[in.Program]
	creditSchedule := make([]YearCredit, len(schedule))
	for i, pct := range schedule {
		creditSchedule[i] = YearCredit{
			Year:    i + 1,
			Percent: pct,
			Amount:  creditBasis * pct,
		}
	}

	return Result{
		Program:            in.Program,
		DisplayName:        t.DisplayNames[in.Program],
		CreditBasis:        creditBasis,
		BasisBoost:         basisBoost,
		TotalCreditPercent: totalCreditPercent,
		TotalCredits:       totalCredits,
		InvestmentAmount:   investmentAmount,
		CashOnCash:         cashOnCash,
		CreditSchedule:     creditSchedule,
		TablesVersion:      t.Version,
	}, nil
}

// Indicative prices a stream at the program's low, mid, and high desk marks.
func (e *Engine) Indicative(program Program, eligibleBasis float64, isDDA bool) (IndicativeResult, error) {
	priceRange, ok := e.tables.PriceRanges[program]
	if !ok {
		return IndicativeResult{}, fmt.Errorf("%w: %q", ErrUnknownProgram, program)
	}

	var out IndicativeResult
	var err error
	if out.Low, err = e.Price(Input{Program: program, EligibleBasis: eligibleBasis, CreditPrice: priceRange.Low, IsDDA: isDDA}); err != nil {
		return IndicativeResult{}, err
	}
	if out.Mid, err = e.Price(Input{Program: program, EligibleBasis: eligibleBasis, CreditPrice: priceRange.Mid, IsDDA: isDDA}); err != nil {
		return IndicativeResult{}, err
	}
	if out.High, err = e.Price(Input{Program: program, EligibleBasis: eligibleBasis, CreditPrice: priceRange.High, IsDDA: isDDA}); err != nil {
		return IndicativeResult{}, err
	}
	return out, nil
}

// Stack prices each stream independently and blends the returns by
// investment weight.
func (e *Engine) Stack(inputs []Input) (StackResult, error) {
	if len(inputs) == 0 {
		return StackResult{}, ErrEmptyStack
	}

	out := StackResult{
		Streams:       make([]Result, 0, len(inputs)),
		TablesVersion: e.tables.Version,
	}
	for _, in := range inputs {
		result, err := e.Price(in)
		if err != nil {
			return StackResult{}, err
		}
		out.Streams = append(out.Streams, result)
		out.TotalCredits += result.TotalCredits
		out.TotalInvestment += result.InvestmentAmount
	}

	if out.TotalInvestment > 0 {
		out.BlendedCashOnCash = out.TotalCredits / out.TotalInvestment
	}
	return out, nil
}

// PriceRange returns the program's indicative market range.
func (e *Engine) PriceRange(program Program) (PriceRange, error) {
	priceRange, ok := e.tables.PriceRanges[program]
	if !ok {
		return PriceRange{}, fmt.Errorf("%w: %q", ErrUnknownProgram, program)
	}
	return priceRange, nil
}

// DisplayName returns the human label for a program, or the raw enum when the
// program is unknown (display never fails).
func (e *Engine) DisplayName(program Program) string {
	if name, ok := e.tables.DisplayNames[program]; ok {
		return name
	}
	return string(program)
}
