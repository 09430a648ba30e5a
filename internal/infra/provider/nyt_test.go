package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newssearch/internal/domain/entity"
	"newssearch/internal/resilience/circuitbreaker"
	"newssearch/internal/resilience/retry"
)

func nytFixture(docCount, hits int) string {
	docs := make([]map[string]any, 0, docCount)
	for i := 0; i < docCount; i++ {
		docs = append(docs, map[string]any{
			"headline": map[string]any{"main": fmt.Sprintf("Headline %d", i)},
			"abstract": fmt.Sprintf("Abstract %d", i),
			"web_url":  fmt.Sprintf("https://www.nytimes.com/2025/06/01/world/story-%d.html", i),
			"pub_date": fmt.Sprintf("2025-06-%02dT10:00:00+0000", i+1),
		})
	}
	raw, _ := json.Marshal(map[string]any{
		"response": map[string]any{
			"docs": docs,
			"meta": map[string]any{"hits": hits},
		},
	})
	return string(raw)
}

func TestNYTFetchLiveNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api-key"))
		// The upstream pages from zero, so logical page 3 maps to page=2.
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(nytFixture(2, 4321)))
	}))
	defer srv.Close()

	n := NewNYT(Config{APIKey: "test-key", BaseURL: srv.URL})

	res, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 3, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, 4321, res.Total)
	first := res.Items[0]
	assert.Equal(t, entity.SourceNYT, first.Source)
	assert.Equal(t, "Headline 0", first.Title)
	assert.Equal(t, "Abstract 0", first.Description)
	assert.Equal(t, "https://www.nytimes.com/2025/06/01/world/story-0.html", first.URL)
	assert.Equal(t, "2025-06-01T10:00:00+0000", first.PublishedAt)
	assert.Equal(t, "The New York Times", first.Website)
}

func TestNYTFetchFirstPageMapsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(nytFixture(1, 1)))
	}))
	defer srv.Close()

	n := NewNYT(Config{APIKey: "test-key", BaseURL: srv.URL})

	_, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 1, PageSize: 10})
	require.NoError(t, err)
}

func TestNYTFetchTruncatesDocsToPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(nytFixture(10, 100)))
	}))
	defer srv.Close()

	n := NewNYT(Config{APIKey: "test-key", BaseURL: srv.URL})

	res, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 1, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, 100, res.Total, "hit count is preserved even when docs are truncated")
}

func TestNYTFetchTruncatesLongAbstracts(t *testing.T) {
	long := strings.Repeat("a", entity.MaxDescriptionLen+50)
	body, _ := json.Marshal(map[string]any{
		"response": map[string]any{
			"docs": []map[string]any{{
				"headline": map[string]any{"main": "Long"},
				"abstract": long,
				"web_url":  "https://www.nytimes.com/long",
				"pub_date": "2025-06-01T10:00:00+0000",
			}},
			"meta": map[string]any{"hits": 1},
		},
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	n := NewNYT(Config{APIKey: "test-key", BaseURL: srv.URL})

	res, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Len(t, res.Items[0].Description, entity.MaxDescriptionLen)
}

func TestNYTFetchUpstreamFailureFallsBack(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := NewNYT(Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		OfflineDir: writeOfflineFixture(t, nytName, nytFixture(2, 99)),
	})

	res, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 1, PageSize: 10})
	require.NoError(t, err)
	// The NYT retry policy makes three immediate attempts before falling back.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 99, res.Total)
}

func TestNYTOpenBreakerFailsFast(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNYT(Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		OfflineDir: writeOfflineFixture(t, nytName, nytFixture(2, 99)),
		Retry:      retry.Config{MaxAttempts: 3, Delay: time.Second},
		Breaker: circuitbreaker.Config{
			Name:                nytName,
			MaxRequests:         1,
			Timeout:             time.Minute,
			ConsecutiveFailures: 1,
		},
	})

	_, _ = n.breaker.Execute(func() (interface{}, error) {
		return nil, errors.New("upstream down")
	})
	require.True(t, n.breaker.IsOpen())

	start := time.Now()
	res, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "open breaker must not admit upstream calls")
	assert.Less(t, time.Since(start), 500*time.Millisecond,
		"open-breaker fetches must fail fast instead of waiting out retry delays")
	assert.Len(t, res.Items, 2, "rejected call serves the offline dataset")
}

func TestNYTFetchMissingCredentialServesOffline(t *testing.T) {
	n := NewNYT(Config{
		OfflineDir: writeOfflineFixture(t, nytName, nytFixture(3, 3)),
	})

	res, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
}

func TestNYTOfflineDatasetRespectsPageSize(t *testing.T) {
	n := NewNYT(Config{
		OfflineDir: writeOfflineFixture(t, nytName, nytFixture(8, 8)),
	})

	res, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 1, PageSize: 2, Offline: true})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}

func TestNYTFetchMissingDatasetServesEmpty(t *testing.T) {
	n := NewNYT(Config{OfflineDir: t.TempDir()})

	res, err := n.Fetch(context.Background(), FetchInput{Query: "golang", Page: 1, PageSize: 10, Offline: true})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Items)
}
