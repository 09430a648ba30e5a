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
	guardianName    = "guardian"
	guardianBaseURL = "https://content.guardianapis.com/search"
	guardianWebsite = "The Guardian"
)

// Guardian is the resilient client for the Guardian content API.
type Guardian struct {
	apiKey     string
	baseURL    string
	offlineDir string
	client     *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	egress     *ratelimit.Limiter
	retryCfg   retry.Config
}

// NewGuardian creates a Guardian client from the given config.
func NewGuardian(cfg Config) *Guardian {
	return &Guardian{
		apiKey:     cfg.APIKey,
		baseURL:    resolveBaseURL(cfg.BaseURL, guardianBaseURL),
		offlineDir: cfg.OfflineDir,
		client:     cfg.httpClient(),
		breaker:    circuitbreaker.New(cfg.breakerConfig(circuitbreaker.GuardianConfig())),
		egress:     cfg.Egress,
		retryCfg:   cfg.retryConfig(retry.GuardianConfig()),
	}
}

// Name returns the provider identifier.
func (g *Guardian) Name() string {
	return guardianName
}

// Fetch resolves a query against the Guardian API, degrading to the offline
// dataset on any failure.
func (g *Guardian) Fetch(ctx context.Context, in FetchInput) (*entity.ProviderResult, error) {
	logger := slog.Default().With(slog.String("provider", guardianName))
	logger.Info("fetch start",
		slog.String("query", in.Query),
		slog.Int("page", in.Page),
		slog.Int("page_size", in.PageSize),
		slog.Bool("offline", in.Offline))

	if in.Offline || g.apiKey == "" {
		metrics.RecordProviderFetch(guardianName, "offline")
		return g.offline(), nil
	}

	raw, err := g.callUpstream(ctx, in)
	if err != nil {
		logger.Error("upstream failed, falling back to offline dataset",
			slog.Any("error", err))
		metrics.RecordProviderFetch(guardianName, "fallback")
		return g.offline(), nil
	}

	metrics.RecordProviderFetch(guardianName, "live")
	return normalizeGuardian(raw), nil
}

// callUpstream issues the live API call through the breaker and the
// provider's retry policy. The egress check runs inside the breaker-wrapped
// function, so a denial is indistinguishable from a transport failure and
// counts toward the trip threshold. A breaker rejection aborts the retry
// loop so an open circuit fails fast instead of waiting out the delays.
func (g *Guardian) callUpstream(ctx context.Context, in FetchInput) (*guardianPayload, error) {
	reqURL := g.buildURL(in)

	var payload *guardianPayload
	err := retry.WithFixedDelay(ctx, g.retryCfg, func() error {
		out, cbErr := g.breaker.Execute(func() (interface{}, error) {
			if g.egress != nil {
				allowed := g.egress.Allow(ctx, guardianName)
				metrics.RecordRateLimitDecision(g.egress.Scope(), allowed)
				if !allowed {
					return nil, fmt.Errorf("guardian: %w", ErrEgressLimited)
				}
			}
			body, getErr := getJSON(ctx, g.client, reqURL)
			if getErr != nil {
				return nil, getErr
			}
			var p guardianPayload
			if decErr := json.Unmarshal(body, &p); decErr != nil {
				return nil, fmt.Errorf("decode guardian payload: %w", decErr)
			}
			return &p, nil
		})
		metrics.RecordBreakerState(guardianName, g.breaker.State())
		if cbErr != nil {
			if circuitbreaker.IsRejection(cbErr) {
				return retry.Abort(cbErr)
			}
			return cbErr
		}
		payload = out.(*guardianPayload)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// buildURL constructs the provider-native request URL.
func (g *Guardian) buildURL(in FetchInput) string {
	params := url.Values{}
	params.Set("api-key", g.apiKey)
	params.Set("q", in.Query)
	params.Set("page", strconv.Itoa(in.Page))
	params.Set("page-size", strconv.Itoa(in.PageSize))
	params.Set("show-fields", "trailText")
	return g.baseURL + "?" + params.Encode()
}

// offline serves the canned dataset. A missing or unreadable dataset
// degrades to an empty result so the fallback always succeeds structurally.
func (g *Guardian) offline() *entity.ProviderResult {
	raw, err := loadOfflineDataset(guardianName, g.offlineDir)
	if err != nil {
		slog.Error("offline dataset unavailable, serving empty result",
			slog.String("provider", guardianName),
			slog.Any("error", err))
		return &entity.ProviderResult{Items: []entity.NewsItem{}}
	}
	var p guardianPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		slog.Error("offline dataset undecodable, serving empty result",
			slog.String("provider", guardianName),
			slog.Any("error", err))
		return &entity.ProviderResult{Items: []entity.NewsItem{}}
	}
	return normalizeGuardian(&p)
}

// guardianPayload mirrors the Guardian API's native response shape.
type guardianPayload struct {
	Response struct {
		Total   int `json:"total"`
		Results []struct {
			WebTitle           string `json:"webTitle"`
			WebURL             string `json:"webUrl"`
			WebPublicationDate string `json:"webPublicationDate"`
			Fields             struct {
				TrailText string `json:"trailText"`
			} `json:"fields"`
		} `json:"results"`
	} `json:"response"`
}

// normalizeGuardian maps the native payload into the canonical item shape.
// An absent or malformed total defaults to the item count.
func normalizeGuardian(p *guardianPayload) *entity.ProviderResult {
	items := make([]entity.NewsItem, 0, len(p.Response.Results))
	for _, r := range p.Response.Results {
		items = append(items, entity.NewsItem{
			Source:      entity.SourceGuardian,
			Title:       r.WebTitle,
			Description: r.Fields.TrailText,
			URL:         r.WebURL,
			PublishedAt: r.WebPublicationDate,
			Website:     guardianWebsite,
		})
	}
	total := p.Response.Total
	if total <= 0 {
		total = len(items)
	}
	return &entity.ProviderResult{Items: items, Total: total}
}
