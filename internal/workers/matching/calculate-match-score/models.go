// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import "dealflow-workers/internal/matching"

type Input struct {
	Project matching.Project `json:"project"`

	// Either an inline profile or a CDE id to resolve through cache/storage.
	CDEProfile *matching.Profile `json:"cdeProfile,omitempty"`
	CDEID      string            `json:"cdeId,omitempty"`
}

type Output struct {
	DealID     string              `json:"dealId"`
	CDEID      string              `json:"cdeId"`
	CDEName    string              `json:"cdeName"`
	MatchScore int                 `json:"matchScore"`
	Quality    string              `json:"quality"`
	Components matching.Components `json:"components"`
	Reasons    []string            `json:"reasons"`
}
