package jsonpath

import "time"

// Named limits, following the teacher's convention of grouping
// operation-limit constants together rather than scattering magic
// numbers through the implementation.
const (
	// MaxExpressionLength bounds the length of a compiled expression.
	MaxExpressionLength = 4096
	// MaxSegmentDepth bounds how many steps a single expression may
	// contain, guarding against pathological expressions.
	MaxSegmentDepth = 64
	// MaxFilterRecursion is a nesting limit for a filter predicate's
	// and/or/not tree. The filter parser does not consult it, so
	// predicate nesting is not limited.
	MaxFilterRecursion = 32

	// DefaultMaxCacheSize is the default number of compiled expressions
	// an Engine's cache holds before evicting.
	DefaultMaxCacheSize = 512
	// DefaultCacheTTL is the default time a cached compiled expression
	// stays valid.
	DefaultCacheTTL = 30 * time.Minute
	// SlowOperationThreshold is the duration above which a Search/Update
	// call is logged at Warn instead of Debug.
	SlowOperationThreshold = 100 * time.Millisecond
)
