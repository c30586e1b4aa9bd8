// internal/workers/matching/calculate-match-score/config.go
package calculatematchscore

import "time"

type Config struct {
	Timeout time.Duration

	// CacheTTL bounds how long a CDE profile stays cached between matching
	// passes.
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}
