package config

import (
	"strings"
	"time"
)

// CacheConfig tunes the Redis response cache wrapped around the public
// room directory.  Entries are keyed by route and query string; only
// the listed methods are ever cached, and bodies above MaxBodyBytes are
// truncated before storage so an oversized listing cannot blow up
// Redis memory.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* variables.  The defaults cache GET
// responses for 30 seconds, which keeps anonymous room browsing off
// MySQL without letting stale availability linger.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "coworking:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToUpper(p)); p != "" {
			m[p] = true
		}
	}
	return m
}
