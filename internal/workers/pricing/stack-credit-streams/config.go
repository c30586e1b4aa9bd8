// internal/workers/pricing/stack-credit-streams/config.go
package stackcreditstreams

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
