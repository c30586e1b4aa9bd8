// internal/workers/pricing/price-credit-stream/models.go
package pricecreditstream

import "dealflow-workers/internal/pricing"

type Input struct {
	DealID string        `json:"dealId"`
	Stream pricing.Input `json:"stream"`

	// Indicative prices the stream at the program's low/mid/high desk marks
	// instead of a negotiated credit price.
	Indicative bool `json:"indicative,omitempty"`
}

type Output struct {
	DealID string `json:"dealId"`

	Result     *pricing.Result           `json:"result,omitempty"`
	Indicative *pricing.IndicativeResult `json:"indicative,omitempty"`

	// PriceRange is the program's current market range, returned on every
	// pricing pass for context.
	PriceRange pricing.PriceRange `json:"priceRange"`
}
