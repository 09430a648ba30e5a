package search

import "errors"

// ErrAllProvidersFailed indicates that every configured provider returned an
// error for a resolve, leaving nothing to aggregate. Callers typically retry
// once in offline mode before surfacing a failure.
var ErrAllProvidersFailed = errors.New("all providers failed")
