package news

import (
	"errors"
	"regexp"
)

// queryPattern constrains search keywords to a conservative character set
// before they reach the aggregation core or any upstream API.
var queryPattern = regexp.MustCompile(`^[A-Za-z0-9_\s-]{1,100}$`)

// maxCityLen bounds the optional city passthrough parameter.
const maxCityLen = 100

var errInvalidQuery = errors.New("query must be 1-100 characters of letters, digits, spaces, underscores, or hyphens")

// validateQuery checks the mandatory query parameter.
func validateQuery(q string) error {
	if !queryPattern.MatchString(q) {
		return errInvalidQuery
	}
	return nil
}

// clampCity truncates the optional city parameter to its maximum length.
func clampCity(city string) string {
	if len(city) > maxCityLen {
		return city[:maxCityLen]
	}
	return city
}
