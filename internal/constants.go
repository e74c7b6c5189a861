package internal

// Unified constants shared across the ambient stack (cache, metrics, health).
// Domain constants (expression length, segment depth, filter recursion) live
// in the root package's constants.go alongside Config.

const (
	// MaxCacheKeyLength is a cache key length limit. CacheManager does not
	// check keys against it; its keys are fixed-length SecureHash digests.
	MaxCacheKeyLength = 1024
)
