// Package engine runs algorithms for the CLI and the HTTP server.
//
// A [Runner] validates the request, resolves the algorithm, and serves the
// execution from its cache when an identical run was recorded before.
// Because every algorithm is deterministic, the cache is invisible to callers:
// a hit returns the same steps a fresh run would.
//
//	runner := engine.NewRunner(c, nil, logger)
//	res, err := runner.Run(ctx, data, engine.Options{
//	    Algorithm: "dijkstra",
//	    Params:    algorithms.Params{Start: "A"},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(res.Execution.Steps))
//
// The Runner holds no per-run state. Multiple goroutines can share one.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/algotrace/pkg/algorithms"
	"github.com/matzehuels/algotrace/pkg/cache"
	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/observability"
	"github.com/matzehuels/algotrace/pkg/trace"
)

// keyType labels cache hooks fired by the runner.
const keyType = "trace"

// Options selects what to run.
type Options struct {
	Algorithm string
	Params    algorithms.Params

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool
}

// Result is a finished run.
type Result struct {
	Execution *trace.Execution
	Key       string        // cache key of the run
	CacheHit  bool          // served from the cache
	Duration  time.Duration // time spent, including cache I/O
}

// Runner executes algorithms with memoization.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log output is discarded.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Run executes opts.Algorithm over d.
//
// Errors carry the codes of package errors: ALGORITHM_NOT_IMPLEMENTED for an
// unknown algorithm, INVALID_GRAPH for a malformed graph, and NODE_NOT_FOUND
// or INVALID_INPUT for bad parameters. Cache failures are logged and never
// fail the run.
func (r *Runner) Run(ctx context.Context, d graph.Data, opts Options) (*Result, error) {
	start := time.Now()

	info, err := algorithms.Describe(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	key, err := r.Key(info.Name, d, opts.Params)
	if err != nil {
		return nil, err
	}
	logger := r.Logger.With("algorithm", info.Name)

	if !opts.Refresh {
		if exec, ok := r.lookup(ctx, logger, key); ok {
			return &Result{Execution: exec, Key: key, CacheHit: true, Duration: time.Since(start)}, nil
		}
	}

	fn, err := algorithms.Lookup(info.Name)
	if err != nil {
		return nil, err
	}
	hooks := observability.Run()
	hooks.OnRunStart(ctx, info.Name, len(d.Nodes), len(d.Edges))
	runStart := time.Now()
	exec, err := fn(d, opts.Params)
	if err != nil {
		hooks.OnRunComplete(ctx, info.Name, 0, time.Since(runStart), err)
		return nil, err
	}
	hooks.OnRunComplete(ctx, info.Name, len(exec.Steps), time.Since(runStart), nil)
	exec.ID = ExecutionID(key)

	logger.Debug("ran algorithm",
		"nodes", len(d.Nodes),
		"edges", len(d.Edges),
		"steps", len(exec.Steps),
		"duration", time.Since(runStart))

	r.store(ctx, logger, key, exec)
	return &Result{Execution: exec, Key: key, Duration: time.Since(start)}, nil
}

// Execute is a convenience wrapper that calls Run and discards the cache info.
func (r *Runner) Execute(ctx context.Context, d graph.Data, opts Options) (*trace.Execution, error) {
	res, err := r.Run(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	return res.Execution, nil
}

// Key returns the cache key of running algorithm over d with p.
func (r *Runner) Key(algorithm string, d graph.Data, p algorithms.Params) (string, error) {
	data, err := graph.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("serialize graph for cache key: %w", err)
	}
	return r.Keyer.TraceKey(algorithm, cache.Hash(data), cache.TraceKeyOpts{
		Start:    p.Start,
		End:      p.End,
		Directed: p.Directed,
	}), nil
}

// ExecutionID derives the stable execution id for a cache key.
func ExecutionID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup decodes a cached execution into a fresh value. Undecodable entries
// count as misses and are recomputed.
func (r *Runner) lookup(ctx context.Context, logger *log.Logger, key string) (*trace.Execution, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	var exec trace.Execution
	if err := json.Unmarshal(data, &exec); err != nil {
		logger.Warn("discarding corrupt cache entry", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	logger.Debug("cache hit", "steps", len(exec.Steps))
	return &exec, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, key string, exec *trace.Execution) {
	data, err := json.Marshal(exec)
	if err != nil {
		logger.Warn("serialize execution", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
