// Package search implements the aggregation core: fan-out to the configured
// providers, merge, dedupe, sort, paginate, and cache.
package search

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"newssearch/internal/common/pagination"
	"newssearch/internal/domain/entity"
	"newssearch/internal/infra/cache"
	"newssearch/internal/infra/provider"
	"newssearch/internal/observability/metrics"
	"newssearch/internal/observability/tracing"
	"newssearch/internal/pkg/canonical"
)

// Input carries one resolve request. Page and PageSize are clamped on entry,
// so callers may pass raw request values.
type Input struct {
	Query    string
	Page     int
	PageSize int
	Offline  bool
}

// Service aggregates search results from an ordered set of providers.
//
// Provider order is part of the contract: merged results keep provider order
// before sorting, so when two items share a publication date the earlier
// provider's item sorts first, and on duplicate URLs the earlier provider's
// item wins.
type Service struct {
	providers []provider.Provider
	cache     *cache.ResultCache
}

// NewService creates an aggregation service over the given providers.
// The cache may be nil to disable result caching.
func NewService(providers []provider.Provider, resultCache *cache.ResultCache) *Service {
	return &Service{providers: providers, cache: resultCache}
}

// Resolve executes one aggregated search.
//
// The full pipeline runs on a cache miss: concurrent provider fan-out,
// per-provider failure exclusion, merge in provider order, dedupe by
// canonical URL, stable sort by publication date descending, page slice, and
// page-count estimation from the providers' reported totals. The computed
// page is cached before returning.
//
// ErrAllProvidersFailed is returned only when every provider errored; a
// partial failure degrades to the surviving providers' results.
func (s *Service) Resolve(ctx context.Context, in Input) (*entity.AggregateResult, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "search.resolve")
	defer span.End()

	params := pagination.ClampParams(in.Page, in.PageSize)
	span.SetAttributes(
		attribute.String("search.query", in.Query),
		attribute.Int("search.page", params.Page),
		attribute.Int("search.page_size", params.PageSize),
		attribute.Bool("search.offline", in.Offline),
	)

	start := time.Now()
	key := cache.Key(in.Query, params.Page, params.PageSize, in.Offline)
	if s.cache != nil {
		if cached := s.cache.Get(ctx, key); cached != nil {
			metrics.RecordCacheHit()
			metrics.RecordSearch("ok", time.Since(start))
			return cached, nil
		}
		metrics.RecordCacheMiss()
	}

	results := s.fanOut(ctx, provider.FetchInput{
		Query:    in.Query,
		Page:     params.Page,
		PageSize: params.PageSize,
		Offline:  in.Offline,
	})

	merged, totalReported, included := s.merge(results)
	if included == 0 {
		metrics.RecordSearch("error", time.Since(start))
		return nil, ErrAllProvidersFailed
	}

	deduped := dedupe(merged)
	sortByPublishedAt(deduped)

	if totalReported <= 0 {
		totalReported = len(deduped)
	}
	result := &entity.AggregateResult{
		Items:               slicePage(deduped, params.Page, params.PageSize),
		TotalEstimatedPages: pagination.CalculateTotalPages(totalReported, params.PageSize),
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}
	metrics.RecordSearch("ok", time.Since(start))
	return result, nil
}

// fanOut queries every provider concurrently and collects results into a
// slice indexed by provider position, preserving the configured order
// regardless of completion order. A provider error leaves a nil slot.
func (s *Service) fanOut(ctx context.Context, in provider.FetchInput) []*entity.ProviderResult {
	results := make([]*entity.ProviderResult, len(s.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range s.providers {
		g.Go(func() error {
			fetchCtx, span := tracing.GetTracer().Start(gctx, "provider.fetch."+p.Name())
			defer span.End()

			res, err := p.Fetch(fetchCtx, in)
			if err != nil {
				slog.Error("provider excluded from aggregation",
					slog.String("provider", p.Name()),
					slog.Any("error", err))
				metrics.RecordProviderFetch(p.Name(), "excluded")
				return nil
			}
			results[i] = res
			return nil
		})
	}
	// Goroutines always return nil; the group is used for its ctx plumbing
	// and completion barrier.
	_ = g.Wait()
	return results
}

// merge concatenates the surviving provider results in provider order and
// sums their self-reported totals.
func (s *Service) merge(results []*entity.ProviderResult) (items []entity.NewsItem, total, included int) {
	for _, res := range results {
		if res == nil {
			continue
		}
		included++
		total += res.Total
		items = append(items, res.Items...)
	}
	return items, total, included
}

// dedupe removes later occurrences of items sharing a canonical URL. Items
// with an empty URL carry no identity and are always kept.
func dedupe(items []entity.NewsItem) []entity.NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if item.URL != "" {
			key := canonical.URL(item.URL)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}

// sortByPublishedAt orders items newest first. Dates are compared
// lexicographically, which is correct for the providers' ISO-8601 timestamps;
// items without a date sort last. The sort is stable so provider order breaks
// ties.
func sortByPublishedAt(items []entity.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a > b
	})
}

// slicePage extracts the requested 1-based page from the merged item list.
// A page beyond the end yields an empty, non-nil slice.
func slicePage(items []entity.NewsItem, page, pageSize int) []entity.NewsItem {
	start := pagination.CalculateOffset(page, pageSize)
	if start >= len(items) {
		return []entity.NewsItem{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
