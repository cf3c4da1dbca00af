package redis

import "time"

// Config holds Redis connection settings and entry lifetimes
type Config struct {
	// URL is a redis:// connection URL
	URL string

	PoolSize     int
	MinIdleConns int

	// StateTTL bounds how long lobbies, games, and boards live without
	// being touched. Every save refreshes it, so only dead state expires.
	StateTTL time.Duration

	// GuestPlayerTTL bounds how long an unregistered player record lives
	GuestPlayerTTL time.Duration
}

// DefaultConfig returns the defaults used when no overrides are given
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		StateTTL:       48 * time.Hour,
		GuestPlayerTTL: 7 * 24 * time.Hour,
	}
}
