// internal/workers/pricing/price-credit-stream/config.go
package pricecreditstream

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
