// internal/workers/pricing/stack-credit-streams/models.go
package stackcreditstreams

import "dealflow-workers/internal/pricing"

type Input struct {
	DealID  string          `json:"dealId"`
	Streams []pricing.Input `json:"streams"`
}

type Output struct {
	DealID string              `json:"dealId"`
	Stack  pricing.StackResult `json:"stack"`
}
