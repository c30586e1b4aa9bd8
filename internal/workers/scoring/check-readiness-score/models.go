// internal/workers/scoring/check-readiness-score/models.go
package checkreadinessscore

import (
	"dealflow-workers/internal/models"
	"dealflow-workers/internal/readiness"
)

type Input struct {
	Deal models.DealRecord `json:"deal"`

	// Threshold overrides the configured readiness cutoff when positive.
	Threshold int `json:"threshold,omitempty"`
}

type Output struct {
	DealID         string                     `json:"dealId"`
	ReadinessScore int                        `json:"readinessScore"`
	Percentage     int                        `json:"percentage"`
	Tier           string                     `json:"tier"`
	MeetsThreshold bool                       `json:"meetsThreshold"`
	Breakdown      []readiness.DimensionScore `json:"breakdown"`
	Gaps           []string                   `json:"gaps"`
	WeightsVersion string                     `json:"weightsVersion"`
}
