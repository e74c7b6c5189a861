package jsonpath

import "time"

// Config controls an Engine's caching, metrics and logging behavior.
// Compilation and evaluation semantics themselves are not configurable —
// only the ambient concerns around them are.
type Config struct {
	// EnableCache turns on the compiled-expression cache. Disabled, every
	// Compile call parses from scratch.
	EnableCache bool
	// MaxCacheSize is the maximum number of compiled expressions cached.
	MaxCacheSize int
	// CacheTTL is how long a cached compiled expression stays valid.
	CacheTTL time.Duration

	// EnableMetrics is reported through IsMetricsEnabled. An Engine
	// records its operation/cache/timing metrics whether or not it is set.
	EnableMetrics bool
	// EnableHealthCheck is reported through IsHealthCheckEnabled. An
	// Engine creates its health checker whether or not it is set.
	EnableHealthCheck bool

	// SlowOperationThreshold is the duration above which a Search/Update
	// call is logged at Warn instead of Debug.
	SlowOperationThreshold time.Duration
}

// DefaultConfig returns a Config with production-reasonable defaults:
// caching and metrics on, health checking on, a bounded cache.
func DefaultConfig() *Config {
	return &Config{
		EnableCache:            true,
		MaxCacheSize:           DefaultMaxCacheSize,
		CacheTTL:               DefaultCacheTTL,
		EnableMetrics:          true,
		EnableHealthCheck:      true,
		SlowOperationThreshold: SlowOperationThreshold,
	}
}

// ValidateConfig normalizes out-of-range values to their defaults rather
// than rejecting the config outright, matching the teacher's permissive
// validation style.
func ValidateConfig(config *Config) error {
	if config == nil {
		return nil
	}
	if config.MaxCacheSize <= 0 {
		config.MaxCacheSize = DefaultMaxCacheSize
	}
	if config.CacheTTL < 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	if config.SlowOperationThreshold <= 0 {
		config.SlowOperationThreshold = SlowOperationThreshold
	}
	return nil
}

// the following methods satisfy internal.ConfigInterface, letting the
// ambient cache/health infrastructure depend on Config without internal
// importing the root package.

func (c *Config) IsCacheEnabled() bool        { return c != nil && c.EnableCache }
func (c *Config) GetMaxCacheSize() int        { return c.MaxCacheSize }
func (c *Config) GetCacheTTL() time.Duration  { return c.CacheTTL }
func (c *Config) IsMetricsEnabled() bool      { return c != nil && c.EnableMetrics }
func (c *Config) IsHealthCheckEnabled() bool  { return c != nil && c.EnableHealthCheck }
