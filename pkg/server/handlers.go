package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cheapamd/camd/pkg/aggregator"
	"github.com/cheapamd/camd/pkg/cache"
	camderrors "github.com/cheapamd/camd/pkg/errors"
	"github.com/cheapamd/camd/pkg/offering"
	"github.com/cheapamd/camd/pkg/provider"
	"github.com/cheapamd/camd/pkg/serializer"
)

// handleOfferings handles GET /v1/offerings.
//
// Query parameters:
//
//	class     - gpu or cpu; empty means both
//	providers - comma-separated provider names to restrict the query
//	model     - restrict to a hardware model
//	available - "true" drops out-of-stock offerings
//	no_cache  - "true" bypasses the result cache
func (s *Server) handleOfferings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteErrorFromCode(w, r, camderrors.ErrCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed", r.Method), nil)
		return
	}

	q := r.URL.Query()

	var filter offering.Filter
	if classParam := q.Get("class"); classParam != "" {
		class, err := offering.ParseClass(classParam)
		if err != nil {
			WriteErrorFromCode(w, r, camderrors.ErrCodeInvalidRequest, err.Error(),
				map[string]any{"class": classParam})
			return
		}
		filter.Class = class
	}
	filter.Model = q.Get("model")
	filter.AvailableOnly = q.Get("available") == "true"

	agg, err := s.scopedAggregator(q.Get("providers"))
	if err != nil {
		WriteErrorFromCode(w, r, camderrors.ErrCodeInvalidRequest, err.Error(), nil)
		return
	}

	names := make([]string, 0, len(agg.Providers))
	for _, p := range agg.Providers {
		names = append(names, p.Name())
	}

	var offerings []offering.Offering
	cached := false
	if q.Get("no_cache") == "true" {
		offerings = agg.Collect(r.Context(), filter)
	} else {
		fetched := false
		key := cache.Key(names, filter)
		offerings, _ = cache.GetOrFetch(r.Context(), s.store, key, s.cacheWindow,
			func(ctx context.Context) ([]offering.Offering, error) {
				fetched = true
				return agg.Collect(ctx, filter), nil
			})
		cached = !fetched
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", s.cfg.CacheMaxAge))
	serializer.RespondJSON(w, http.StatusOK, OfferingsResponse{
		Offerings: offerings,
		Count:     len(offerings),
		Cached:    cached,
		Timestamp: time.Now().UTC(),
	})
}

// scopedAggregator narrows the configured providers to the requested
// subset. An empty spec returns the full aggregator.
func (s *Server) scopedAggregator(spec string) (*aggregator.Aggregator, error) {
	if strings.TrimSpace(spec) == "" {
		return s.agg, nil
	}

	byName := make(map[string]provider.Provider, len(s.agg.Providers))
	for _, p := range s.agg.Providers {
		byName[p.Name()] = p
	}

	var selected []provider.Provider
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown provider: %s", name)
		}
		selected = append(selected, p)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no providers selected")
	}

	scoped := aggregator.New(selected)
	scoped.FetchTimeout = s.agg.FetchTimeout
	return scoped, nil
}
