// internal/workers/matching/apply-relevance-ranking/config.go
package applyrelevanceranking

import "time"

type Config struct {
	Timeout time.Duration

	// CacheTTL bounds how long the active CDE catalog stays cached.
	CacheTTL time.Duration

	// Marketplace defaults; process variables can override per pass.
	MinScore   int
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		CacheTTL:   5 * time.Minute,
		MinScore:   40,
		MaxResults: 10,
	}
}
