// internal/workers/matching/apply-relevance-ranking/models.go
package applyrelevanceranking

import "dealflow-workers/internal/matching"

type Input struct {
	Project matching.Project `json:"project"`

	// Optional overrides for the configured marketplace defaults.
	MinScore   int `json:"minScore,omitempty"`
	MaxResults int `json:"maxResults,omitempty"`
}

type Output struct {
	DealID         string            `json:"dealId"`
	Matches        []matching.Result `json:"matches"`
	TotalEvaluated int               `json:"totalEvaluated"`
	Returned       int               `json:"returned"`

	// BestQuality drives the notification gateway downstream.
	BestQuality string `json:"bestQuality"`
}
