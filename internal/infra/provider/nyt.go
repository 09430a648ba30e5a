package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"newssearch/internal/domain/entity"
	"newssearch/internal/observability/metrics"
	"newssearch/internal/resilience/circuitbreaker"
	"newssearch/internal/resilience/retry"
	"newssearch/pkg/ratelimit"
)

const (
	nytName    = "nytimes"
	nytBaseURL = "https://api.nytimes.com/svc/search/v2/articlesearch.json"
	nytWebsite = "The New York Times"
)

// NYT is the resilient client for the New York Times article search API.
type NYT struct {
	apiKey     string
	baseURL    string
	offlineDir string
	client     *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	egress     *ratelimit.Limiter
	retryCfg   retry.Config
}

// NewNYT creates an NYT client from the given config.
func NewNYT(cfg Config) *NYT {
	return &NYT{
		apiKey:     cfg.APIKey,
		baseURL:    resolveBaseURL(cfg.BaseURL, nytBaseURL),
		offlineDir: cfg.OfflineDir,
		client:     cfg.httpClient(),
		breaker:    circuitbreaker.New(cfg.breakerConfig(circuitbreaker.NYTConfig())),
		egress:     cfg.Egress,
		retryCfg:   cfg.retryConfig(retry.NYTConfig()),
	}
}

// Name returns the provider identifier.
func (n *NYT) Name() string {
	return nytName
}

// Fetch resolves a query against the NYT API, degrading to the offline
// dataset on any failure.
func (n *NYT) Fetch(ctx context.Context, in FetchInput) (*entity.ProviderResult, error) {
	logger := slog.Default().With(slog.String("provider", nytName))
	logger.Info("fetch start",
		slog.String("query", in.Query),
		slog.Int("page", in.Page),
		slog.Int("page_size", in.PageSize),
		slog.Bool("offline", in.Offline))

	if in.Offline || n.apiKey == "" {
		metrics.RecordProviderFetch(nytName, "offline")
		return n.offline(in.PageSize), nil
	}

	raw, err := n.callUpstream(ctx, in)
	if err != nil {
		logger.Error("upstream failed, falling back to offline dataset",
			slog.Any("error", err))
		metrics.RecordProviderFetch(nytName, "fallback")
		return n.offline(in.PageSize), nil
	}

	metrics.RecordProviderFetch(nytName, "live")
	return normalizeNYT(raw, in.PageSize), nil
}

// callUpstream issues the live API call. As for Guardian, the egress check
// runs inside the breaker-wrapped function and a breaker rejection aborts
// the retry loop; the retry policy differs (three immediate attempts, no
// inter-attempt delay).
func (n *NYT) callUpstream(ctx context.Context, in FetchInput) (*nytPayload, error) {
	reqURL := n.buildURL(in)

	var payload *nytPayload
	err := retry.WithFixedDelay(ctx, n.retryCfg, func() error {
		out, cbErr := n.breaker.Execute(func() (interface{}, error) {
			if n.egress != nil {
				allowed := n.egress.Allow(ctx, nytName)
				metrics.RecordRateLimitDecision(n.egress.Scope(), allowed)
				if !allowed {
					return nil, fmt.Errorf("nyt: %w", ErrEgressLimited)
				}
			}
			body, getErr := getJSON(ctx, n.client, reqURL)
			if getErr != nil {
				return nil, getErr
			}
			var p nytPayload
			if decErr := json.Unmarshal(body, &p); decErr != nil {
				return nil, fmt.Errorf("decode nyt payload: %w", decErr)
			}
			return &p, nil
		})
		metrics.RecordBreakerState(nytName, n.breaker.State())
		if cbErr != nil {
			if circuitbreaker.IsRejection(cbErr) {
				return retry.Abort(cbErr)
			}
			return cbErr
		}
		payload = out.(*nytPayload)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// buildURL constructs the provider-native request URL. The NYT API pages
// from zero, so the 1-based page number is shifted down.
func (n *NYT) buildURL(in FetchInput) string {
	page := in.Page - 1
	if page < 0 {
		page = 0
	}
	params := url.Values{}
	params.Set("q", in.Query)
	params.Set("page", strconv.Itoa(page))
	params.Set("api-key", n.apiKey)
	return n.baseURL + "?" + params.Encode()
}

// offline serves the canned dataset, degrading to an empty result when the
// dataset is missing or undecodable.
func (n *NYT) offline(pageSize int) *entity.ProviderResult {
	raw, err := loadOfflineDataset(nytName, n.offlineDir)
	if err != nil {
		slog.Error("offline dataset unavailable, serving empty result",
			slog.String("provider", nytName),
			slog.Any("error", err))
		return &entity.ProviderResult{Items: []entity.NewsItem{}}
	}
	var p nytPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		slog.Error("offline dataset undecodable, serving empty result",
			slog.String("provider", nytName),
			slog.Any("error", err))
		return &entity.ProviderResult{Items: []entity.NewsItem{}}
	}
	return normalizeNYT(&p, pageSize)
}

// nytPayload mirrors the NYT article search API's native response shape.
type nytPayload struct {
	Response struct {
		Docs []struct {
			Headline struct {
				Main string `json:"main"`
			} `json:"headline"`
			Abstract string `json:"abstract"`
			WebURL   string `json:"web_url"`
			PubDate  string `json:"pub_date"`
		} `json:"docs"`
		Meta struct {
			Hits int `json:"hits"`
		} `json:"meta"`
	} `json:"response"`
}

// normalizeNYT maps the native payload into the canonical item shape. The
// NYT API serves fixed-size pages, so the doc list is truncated to the
// requested page size; abstracts are clamped to the description limit. An
// absent or malformed hit count defaults to the item count.
func normalizeNYT(p *nytPayload, pageSize int) *entity.ProviderResult {
	docs := p.Response.Docs
	if pageSize > 0 && len(docs) > pageSize {
		docs = docs[:pageSize]
	}
	items := make([]entity.NewsItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, entity.NewsItem{
			Source:      entity.SourceNYT,
			Title:       d.Headline.Main,
			Description: entity.TruncateDescription(d.Abstract),
			URL:         d.WebURL,
			PublishedAt: d.PubDate,
			Website:     nytWebsite,
		})
	}
	total := p.Response.Meta.Hits
	if total <= 0 {
		total = len(items)
	}
	return &entity.ProviderResult{Items: items, Total: total}
}
