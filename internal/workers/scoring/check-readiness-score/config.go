// internal/workers/scoring/check-readiness-score/config.go
package checkreadinessscore

import "time"

type Config struct {
	Timeout time.Duration

	// Threshold is the minimum-readiness cutoff reported to the process.
	Threshold int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   30 * time.Second,
		Threshold: 40,
	}
}
