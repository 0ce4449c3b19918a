// Package aggregator fans out to all configured provider adapters, merges
// their offerings into one collection, and contains individual adapter
// failures. A failing adapter costs its offerings, never the whole run.
package aggregator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/provider"
)

// DefaultFetchTimeout bounds each adapter's network calls. An adapter that
// exceeds it is treated as a failed adapter.
const DefaultFetchTimeout = 15 * time.Second

// Aggregator runs provider adapters in parallel and merges their results.
type Aggregator struct {
	// Providers are the adapters to query.
	Providers []provider.Provider

	// FetchTimeout bounds each adapter call. Zero means DefaultFetchTimeout.
	FetchTimeout time.Duration
}

// New creates an Aggregator over the given adapters.
func New(providers []provider.Provider) *Aggregator {
	return &Aggregator{Providers: providers}
}

// Collect queries every adapter and returns the merged, filtered, sorted
// offerings. Adapter failures are logged and swallowed; when every adapter
// fails the result is simply empty. The final ordering is deterministic
// regardless of fetch completion order because sorting happens after all
// fetches join.
func (a *Aggregator) Collect(ctx context.Context, filter offering.Filter) []offering.Offering {
	timeout := a.FetchTimeout
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}

	slog.Debug("starting aggregation", slog.Int("providers", len(a.Providers)))

	var (
		mu       sync.Mutex
		merged   []offering.Offering
		failures int
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range a.Providers {
		g.Go(func() error {
			fetchStart := time.Now()
			defer func() {
				fetchDuration.WithLabelValues(p.Name()).Observe(time.Since(fetchStart).Seconds())
			}()

			fetchCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			slog.Debug("fetching offerings", slog.String("provider", p.Name()))
			offerings, err := p.Fetch(fetchCtx)
			if err != nil {
				// Partial-failure policy: log, count, move on.
				slog.Warn("provider fetch failed",
					slog.String("provider", p.Name()),
					slog.String("error", err.Error()),
				)
				fetchTotal.WithLabelValues(p.Name(), "error").Inc()
				mu.Lock()
				failures++
				mu.Unlock()
				return nil
			}
			fetchTotal.WithLabelValues(p.Name(), "success").Inc()

			kept := make([]offering.Offering, 0, len(offerings))
			for _, o := range offerings {
				// Tag before validating so adapters may omit the field.
				if o.Provider == "" {
					o.Provider = p.Name()
				}
				if err := o.Validate(); err != nil {
					slog.Warn("dropping invalid offering", slog.String("provider", p.Name()), slog.String("error", err.Error()))
					continue
				}
				if filter.Matches(o) {
					kept = append(kept, o)
				}
			}

			mu.Lock()
			merged = append(merged, kept...)
			mu.Unlock()
			return nil
		})
	}

	// Adapter errors are contained above, so Wait cannot fail.
	_ = g.Wait()

	offering.Sort(merged)

	status := "success"
	switch {
	case len(merged) == 0 && failures == len(a.Providers) && failures > 0:
		status = "empty"
	case failures > 0:
		status = "partial"
	}
	collectionTotal.WithLabelValues(status).Inc()
	offeringCount.Set(float64(len(merged)))

	slog.Debug("aggregation complete",
		slog.Int("offerings", len(merged)),
		slog.Int("failed_providers", failures),
	)
	return merged
}
