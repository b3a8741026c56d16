package config

import "time"

// RateLimitConfig controls the Redis token bucket applied to the register and
// login endpoints.  Capacity is the burst size; one token is refilled every
// RefillInterval.  TTL bounds how long idle buckets stay in Redis.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillInterval time.Duration
    TTL            time.Duration
    Prefix         string
}

// LoadRateLimitConfig reads the rate limit settings from the environment,
// falling back to defaults that allow short bursts of auth attempts.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       atoi(getenv("RATE_LIMIT_CAPACITY", "10")),
        RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "3s")),
        TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    if min := 5 * cfg.RefillInterval; cfg.TTL < min {
        cfg.TTL = min
    }
    return cfg
}
