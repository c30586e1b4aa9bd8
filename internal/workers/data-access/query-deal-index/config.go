// internal/workers/data-access/query-deal-index/config.go
package querydealindex

import "time"

type Config struct {
	Timeout time.Duration

	// DefaultIndex is searched when the process does not name one.
	DefaultIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		DefaultIndex: "deals",
	}
}
