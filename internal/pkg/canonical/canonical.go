// Package canonical normalizes result URLs into stable comparison keys for
// cross-provider deduplication.
package canonical

import "strings"

// URL normalizes a URL string into a dedupe key: trims whitespace, lowercases,
// strips a leading http:// or https:// scheme, an optional www. prefix, and a
// single trailing slash. Query strings and fragments are preserved as part of
// the key. The function is idempotent: URL(URL(s)) == URL(s).
func URL(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return s
}
