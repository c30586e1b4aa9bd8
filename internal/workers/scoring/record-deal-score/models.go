// internal/workers/scoring/record-deal-score/models.go
package recorddealscore

import "encoding/json"

type Input struct {
	DealID         string          `json:"dealId"`
	ModelVersion   string          `json:"modelVersion"`
	MeritScore     int             `json:"meritScore"`
	Tier           int             `json:"tier"`
	ReadinessScore int             `json:"readinessScore"`
	ReadinessTier  string          `json:"readinessTier"`
	Breakdown      json.RawMessage `json:"breakdown,omitempty"`
}

type Output struct {
	ScoreID  string `json:"scoreId"`
	DealID   string `json:"dealId"`
	Recorded bool   `json:"recorded"`
	ScoredAt string `json:"scoredAt"`
}
