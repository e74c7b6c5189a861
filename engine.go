package jsonpath

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cybergodev/jsonpath/internal"
	"github.com/cybergodev/jsonpath/internal/updater"
)

// Engine owns a compiled-expression cache, metrics and a logger, for
// callers that evaluate many expressions against many documents and want
// compilation reused across calls. The package-level Search/SearchPaths/
// SearchAll/Update/UpdateFunc functions use a default Engine created at
// package initialization; the package-level Compile, MustCompile, Parse
// and Validate compile directly, without a cache.
type Engine struct {
	id     uuid.UUID
	config *Config
	cache  *internal.CacheManager
	metrics *internal.MetricsCollector
	health *internal.HealthChecker
	logger *slog.Logger

	closeOnce sync.Once
	closed    bool
	mu        sync.RWMutex
}

// New creates an Engine. Passing no config uses DefaultConfig.
func New(config ...*Config) *Engine {
	cfg := DefaultConfig()
	if len(config) > 0 && config[0] != nil {
		cfg = config[0]
	}
	_ = ValidateConfig(cfg)

	metrics := internal.NewMetricsCollector()
	e := &Engine{
		id:      uuid.New(),
		config:  cfg,
		cache:   internal.NewCacheManager(cfg),
		metrics: metrics,
		health:  internal.NewHealthChecker(metrics, nil),
		logger:  slog.Default().With("component", "jsonpath", "engine", uuid.New().String()),
	}
	return e
}

var defaultEngine = New()

// Compile compiles expr using the engine's cache: an expression compiled
// once is reused by every later call with the same source text.
func (e *Engine) Compile(expr string) (*CompiledExpression, error) {
	if e.isClosed() {
		return nil, newError("compile", expr, 0, ErrClosed, "engine is closed")
	}

	key := e.cache.SecureHash(expr)
	if cached, ok := e.cache.Get(key); ok {
		e.metrics.RecordCacheHit()
		return cached.(*CompiledExpression), nil
	}
	e.metrics.RecordCacheMiss()

	start := time.Now()
	compiled, err := Compile(expr)
	e.metrics.RecordOperation(time.Since(start), err == nil, 0)
	if err != nil {
		e.logger.Error("compile failed", "expr", expr, "error", err)
		return nil, err
	}
	e.cache.Set(key, compiled)
	e.logCompletion("compile", expr, start)
	return compiled, nil
}

// MustCompile is like Compile but panics on error.
func (e *Engine) MustCompile(expr string) *CompiledExpression {
	c, err := e.Compile(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate reports whether expr parses, without evaluating it.
func (e *Engine) Validate(expr string) error {
	_, err := e.Compile(expr)
	return err
}

// Search evaluates expr against doc and returns the matched values, in
// the order the evaluator produced them.
func (e *Engine) Search(ctx context.Context, expr string, doc Value) ([]Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	compiled, err := e.Compile(expr)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	matches, err := compiled.evaluate(doc)
	e.metrics.RecordOperation(time.Since(start), err == nil, 0)
	if err != nil {
		e.logger.Error("search failed", "expr", expr, "error", err)
		return nil, err
	}
	out := make([]Value, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	e.logCompletion("search", expr, start)
	return out, nil
}

// SearchPaths evaluates expr against doc and returns the canonical path
// of every match, instead of its value.
func (e *Engine) SearchPaths(ctx context.Context, expr string, doc Value) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	compiled, err := e.Compile(expr)
	if err != nil {
		return nil, err
	}
	matches, err := compiled.evaluate(doc)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = FormatPath(m.Path)
	}
	return out, nil
}

// SearchAll evaluates every compiled expression against doc, preserving
// the caller's ordering, so compilation is done once per expression
// rather than once per (expression, document) pair.
func (e *Engine) SearchAll(ctx context.Context, compiled []*CompiledExpression, doc Value) ([][]Value, error) {
	results := make([][]Value, len(compiled))
	for i, c := range compiled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches, err := c.evaluate(doc)
		if err != nil {
			return nil, err
		}
		values := make([]Value, len(matches))
		for j, m := range matches {
			values[j] = m.Value
		}
		results[i] = values
	}
	return results, nil
}

// Update replaces every location expr matches in doc with value, mutating
// doc in place, and returns the number of locations updated. A match
// whose path no longer resolves (e.g. an earlier update in the same call
// removed a container) is silently skipped, never an error.
func (e *Engine) Update(ctx context.Context, expr string, doc Value, value Value) (int, error) {
	return e.UpdateFunc(ctx, expr, doc, func(Value) Value { return value })
}

// UpdateFunc replaces every location expr matches in doc with fn applied
// to the value currently there, mutating doc in place.
func (e *Engine) UpdateFunc(ctx context.Context, expr string, doc Value, fn func(Value) Value) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	compiled, err := e.Compile(expr)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	matches, err := compiled.evaluate(doc)
	if err != nil {
		return 0, err
	}
	n := updater.Apply(doc, matches, Value{}, fn)
	e.metrics.RecordOperation(time.Since(start), true, 0)
	e.logCompletion("update", expr, start)
	return n, nil
}

// Close releases the engine's cache and stops accepting new operations.
// It is safe to call more than once.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()
		e.cache.ClearCache()
	})
	return nil
}

func (e *Engine) isClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed
}

func (e *Engine) logCompletion(op, expr string, start time.Time) {
	elapsed := time.Since(start)
	if elapsed > e.config.SlowOperationThreshold {
		e.logger.Warn("slow operation", "op", op, "expr", expr, "elapsed", elapsed)
		return
	}
	e.logger.Debug("operation completed", "op", op, "expr", expr, "elapsed", elapsed)
}
