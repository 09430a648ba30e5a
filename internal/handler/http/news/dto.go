package news

import (
	"fmt"
	"net/url"

	"newssearch/internal/domain/entity"
)

// SearchResponse is the public shape of a search result page.
type SearchResponse struct {
	Keyword             string            `json:"keyword"`
	City                string            `json:"city,omitempty"`
	Page                int               `json:"page"`
	PageSize            int               `json:"page_size"`
	TotalEstimatedPages int               `json:"total_estimated_pages"`
	TimeTakenMs         int64             `json:"time_taken_ms"`
	Offline             bool              `json:"offline,omitempty"`
	Links               Links             `json:"links"`
	Items               []entity.NewsItem `json:"items"`
}

// Links carries pagination navigation URLs. Next is omitted on the last
// estimated page and Prev on the first.
type Links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// buildLinks constructs the navigation links for a result page.
func buildLinks(path, keyword string, page, pageSize, totalPages int) Links {
	link := func(p int) string {
		q := url.Values{}
		q.Set("query", keyword)
		q.Set("page", fmt.Sprintf("%d", p))
		q.Set("page_size", fmt.Sprintf("%d", pageSize))
		return path + "?" + q.Encode()
	}

	links := Links{Self: link(page)}
	if page < totalPages {
		links.Next = link(page + 1)
	}
	if page > 1 {
		links.Prev = link(page - 1)
	}
	return links
}
