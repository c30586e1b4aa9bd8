// internal/workers/matching/send-match-notification/config.go
package sendmatchnotification

import "time"

type Config struct {
	Timeout time.Duration

	// FromEmail is the verified SES sender identity.
	FromEmail string

	// TopicARN receives a match event for downstream subscribers; empty disables publishing.
	TopicARN string

	// NotifyQuality is the minimum match quality worth an email.
	NotifyQuality string

	// MaxMatchesInEmail caps how many matches the email body lists.
	MaxMatchesInEmail int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		FromEmail:         "deals@dealflow.example.com",
		NotifyQuality:     "good",
		MaxMatchesInEmail: 5,
	}
}
