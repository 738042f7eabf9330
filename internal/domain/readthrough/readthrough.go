// Package readthrough wraps an upstream computation with a short-lived cache.
// Concurrent misses on one key may both compute; the last write wins.
package readthrough

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Austionian/gathering-surf/pkg/metrics"
)

// Store is the cache contract consumed by the domain services.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Options describe one cached payload kind.
type Options struct {
	Kind    string
	TTL     time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Fetch returns the cached value under key, or computes, stores and returns it.
// Cache failures are logged and never fail the call. A nil store disables caching.
func Fetch[T any](ctx context.Context, store Store, key string, opts Options, compute func(context.Context) (T, error)) (T, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil || opts.TTL <= 0 {
		return compute(ctx)
	}

	payload, ok, err := store.Get(ctx, key)
	switch {
	case err != nil:
		opts.Metrics.ObserveCache(opts.Kind, "error")
		logger.Warn("cache read failed", "key", key, "error", err)
	case ok:
		var cached T
		if err := json.Unmarshal([]byte(payload), &cached); err == nil {
			opts.Metrics.ObserveCache(opts.Kind, "hit")
			logger.Debug("cache hit", "key", key)
			return cached, nil
		}
		logger.Warn("cache entry undecodable, recomputing", "key", key)
	default:
		opts.Metrics.ObserveCache(opts.Kind, "miss")
	}

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache encode failed", "key", key, "error", err)
		return value, nil
	}
	if err := store.Set(ctx, key, string(encoded), opts.TTL); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
	}
	return value, nil
}
