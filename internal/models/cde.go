// internal/models/cde.go
package models

import "time"

// CDEProfile is an allocation holder's published marketplace profile,
// including the criteria the matching engine evaluates and the contact
// channels match notifications go to.
type CDEProfile struct {
	ID               string  `json:"id"`
	OrganizationName string  `json:"organizationName"`
	Mission          string  `json:"mission,omitempty"`
	Status           string  `json:"status"`

	RemainingAllocation float64    `json:"remainingAllocation"`
	AllocationDeadline  *time.Time `json:"allocationDeadline,omitempty"`

	// Matching criteria. An empty PrimaryStates list means the CDE deploys
	// nationwide.
	PrimaryStates             []string `json:"primaryStates"`
	TargetSectors             []string `json:"targetSectors"`
	ImpactPriorities          []string `json:"impactPriorities,omitempty"`
	MinDealSize               float64  `json:"minDealSize"`
	MaxDealSize               float64  `json:"maxDealSize"`
	SmallDealFund             bool     `json:"smallDealFund"`
	RuralFocus                bool     `json:"ruralFocus"`
	UrbanFocus                bool     `json:"urbanFocus"`
	RequireSeverelyDistressed bool     `json:"requireSeverelyDistressed"`
	HTCExperience             bool     `json:"htcExperience"`

	// Notification channels
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// Active reports whether the CDE should appear in matching passes.
func (c *CDEProfile) Active() bool {
	return c.Status == "active"
}
