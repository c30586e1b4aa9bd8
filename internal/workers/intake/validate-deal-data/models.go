// internal/workers/intake/validate-deal-data/models.go
package validatedealdata

import (
	"encoding/json"

	"dealflow-workers/internal/models"
)

type Input struct {
	// Deal is kept raw so the schema sees the payload exactly as submitted.
	Deal json.RawMessage `json:"deal"`
}

type Output struct {
	Valid bool               `json:"valid"`
	Deal  *models.DealRecord `json:"deal"`

	// Warnings flag optional fields the intake adapter will default; they do
	// not fail validation.
	Warnings []string `json:"warnings,omitempty"`

	SchemaVersion string `json:"schemaVersion"`
}
