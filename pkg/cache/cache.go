// Package cache implements the timed result cache that lets repeated camd
// invocations within a short window skip provider API calls entirely. Each
// query key holds a single slot, overwritten on refresh; the only staleness
// policy is the time window.
package cache

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cheapamd/camd/pkg/offering"
)

// Entry is one cached aggregation result.
type Entry struct {
	Payload   []offering.Offering `json:"payload"`
	FetchedAt time.Time           `json:"fetchedAt"`
}

// Fresh reports whether the entry is still valid for the given window at
// time now.
func (e Entry) Fresh(window time.Duration, now time.Time) bool {
	return now.Sub(e.FetchedAt) < window
}

// Store persists cache entries keyed by query.
type Store interface {
	Load(key string) (Entry, bool)
	Save(key string, entry Entry) error
}

// FetchFunc produces a fresh aggregation result on a cache miss.
type FetchFunc func(ctx context.Context) ([]offering.Offering, error)

// Key builds the cache key for a query. It incorporates the provider set
// and the filter so differently scoped queries never share a slot.
func Key(providers []string, filter offering.Filter) string {
	names := make([]string, len(providers))
	copy(names, providers)
	sort.Strings(names)
	return strings.Join(names, ",") + "|" + filter.Key()
}

// GetOrFetch returns the cached payload when the entry for key is within
// the window, otherwise calls fetch exactly once, stores the result with
// the current timestamp, and returns it. Empty fetch results are returned
// but not stored, so the next invocation re-queries the providers.
func GetOrFetch(ctx context.Context, store Store, key string, window time.Duration, fetch FetchFunc) ([]offering.Offering, error) {
	if entry, ok := store.Load(key); ok && entry.Fresh(window, time.Now()) {
		slog.Debug("cache hit", slog.String("key", key), slog.Time("fetched_at", entry.FetchedAt))
		return entry.Payload, nil
	}

	slog.Debug("cache miss, fetching from providers", slog.String("key", key))
	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if len(payload) > 0 {
		if err := store.Save(key, Entry{Payload: payload, FetchedAt: time.Now()}); err != nil {
			// A broken cache must not fail the query.
			slog.Warn("failed to store cache entry", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return payload, nil
}
