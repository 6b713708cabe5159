package config

import "time"

// SessionConfig controls how long editing sessions live in the store.
// Every request that touches a session extends its lifetime by TTL.
type SessionConfig struct {
	TTL    time.Duration
	Prefix string
}

// LoadSessionConfig reads SESSION_TTL and SESSION_PREFIX.
func LoadSessionConfig() SessionConfig {
	cfg := SessionConfig{
		TTL:    envDur("SESSION_TTL", 2*time.Hour),
		Prefix: envStr("SESSION_PREFIX", "editor"),
	}
	if cfg.TTL < time.Minute {
		cfg.TTL = time.Minute
	}
	return cfg
}

// LayoutCacheConfig controls the public layout cache.  When Enabled is
// false or no Redis client is available the cache is bypassed.
type LayoutCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadLayoutCacheConfig reads the LAYOUT_CACHE_* variables.
func LoadLayoutCacheConfig() LayoutCacheConfig {
	return LayoutCacheConfig{
		Enabled: envBool("LAYOUT_CACHE_ENABLED", true),
		TTL:     envDur("LAYOUT_CACHE_TTL", 10*time.Minute),
		Prefix:  envStr("LAYOUT_CACHE_PREFIX", "layout"),
	}
}

// RateLimitConfig limits how many editor mutations a client may send per
// window.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   envInt("RATE_LIMIT_LIMIT", 120),
		Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

// ResponseCacheConfig controls the whole-response cache used on public
// GET endpoints such as the movie catalog.
type ResponseCacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int // 0 means unlimited
}

// LoadResponseCacheConfig reads the RESPONSE_CACHE_* variables.
func LoadResponseCacheConfig() ResponseCacheConfig {
	cfg := ResponseCacheConfig{
		Enabled:      envBool("RESPONSE_CACHE_ENABLED", true),
		TTL:          envDur("RESPONSE_CACHE_TTL", 2*time.Minute),
		Prefix:       envStr("RESPONSE_CACHE_PREFIX", "resp"),
		MaxBodyBytes: envInt("RESPONSE_CACHE_MAX_BODY", 1<<20),
	}
	if cfg.MaxBodyBytes < 0 {
		cfg.MaxBodyBytes = 0
	}
	return cfg
}
