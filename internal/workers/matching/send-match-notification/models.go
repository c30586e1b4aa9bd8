// internal/workers/matching/send-match-notification/models.go
package sendmatchnotification

import (
	"time"

	"dealflow-workers/internal/matching"
)

type Input struct {
	DealID         string            `json:"dealId"`
	DealName       string            `json:"dealName,omitempty"`
	RecipientEmail string            `json:"recipientEmail"`
	BestQuality    string            `json:"bestQuality"`
	Matches        []matching.Result `json:"matches"`
}

type Output struct {
	DealID   string `json:"dealId"`
	Notified bool   `json:"notified"`

	// SkipReason is set when the match quality did not warrant an email.
	SkipReason string `json:"skipReason,omitempty"`

	EmailMessageID string    `json:"emailMessageId,omitempty"`
	EventPublished bool      `json:"eventPublished"`
	SentAt         time.Time `json:"sentAt,omitempty"`
}
