// internal/workers/scoring/score-deal/models.go
package scoredeal

import (
	"dealflow-workers/internal/models"
	"dealflow-workers/internal/scoring"
)

type Input struct {
	Deal        models.DealRecord    `json:"deal"`
	CDECriteria *scoring.CDECriteria `json:"cdeCriteria,omitempty"`
}

type Output struct {
	DealID           string                   `json:"dealId"`
	MeritScore       int                      `json:"meritScore"`
	Tier             int                      `json:"tier"`
	TierLabel        string                   `json:"tierLabel"`
	ModelVersion     string                   `json:"modelVersion"`
	Breakdown        scoring.Breakdown        `json:"breakdown"`
	EligibilityFlags scoring.EligibilityFlags `json:"eligibilityFlags"`
	ReasonCodes      []string                 `json:"reasonCodes"`
}
