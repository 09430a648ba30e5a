// Package entity defines the core domain types for news search aggregation.
// These are plain value types shared by providers, the aggregator, and the
// HTTP layer; they carry no behavior beyond construction-time normalization.
package entity

// Source identifies the upstream provider an item came from.
type Source string

// Known provider sources.
const (
	SourceGuardian Source = "guardian"
	SourceNYT      Source = "nytimes"
)

// MaxDescriptionLen is the maximum length of an item description.
// Longer upstream abstracts are truncated at this boundary.
const MaxDescriptionLen = 280

// NewsItem is a single normalized search result.
// It is immutable once constructed; identity for dedupe purposes is the
// canonicalized URL. Items with an empty URL are never considered duplicates.
type NewsItem struct {
	Source      Source `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Website     string `json:"website"`
}

// ProviderResult is the normalized output of a single provider fetch.
// Total is the provider's self-reported match count, which may exceed
// len(Items); it defaults to len(Items) when the upstream omits it.
type ProviderResult struct {
	Items []NewsItem `json:"items"`
	Total int        `json:"total"`
}

// AggregateResult is the merged, deduplicated, page-sliced result of a
// multi-provider search. TotalEstimatedPages is always >= 1 and is derived
// from the providers' reported totals, not the deduplicated item count.
type AggregateResult struct {
	Items               []NewsItem `json:"items"`
	TotalEstimatedPages int        `json:"total_estimated_pages"`
}

// TruncateDescription clamps a description to MaxDescriptionLen bytes.
// Upstream abstracts are plain text, so a byte slice is sufficient here;
// the original payloads are ASCII-safe at this boundary.
func TruncateDescription(s string) string {
	if len(s) > MaxDescriptionLen {
		return s[:MaxDescriptionLen]
	}
	return s
}
