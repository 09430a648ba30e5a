package canonical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newssearch/internal/pkg/canonical"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"http scheme stripped", "http://example.com/a", "example.com/a"},
		{"https scheme stripped", "https://example.com/a", "example.com/a"},
		{"www stripped", "https://www.example.com/a", "example.com/a"},
		{"uppercase lowered", "HTTP://EXAMPLE.com/A", "example.com/a"},
		{"trailing slash stripped", "http://example.com/a/", "example.com/a"},
		{"whitespace trimmed", "  http://example.com/a  ", "example.com/a"},
		{"query preserved", "https://example.com/a?b=1&c=2", "example.com/a?b=1&c=2"},
		{"fragment preserved", "https://example.com/a#sec", "example.com/a#sec"},
		{"empty input", "", ""},
		{"bare host", "example.com", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonical.URL(tt.in))
		})
	}
}

func TestURLIdempotent(t *testing.T) {
	inputs := []string{
		"HTTP://WWW.Example.com/Path/",
		"https://example.com/a?q=1",
		"example.com",
		"",
	}
	for _, in := range inputs {
		once := canonical.URL(in)
		assert.Equal(t, once, canonical.URL(once), "canon must be idempotent for %q", in)
	}
}

func TestURLEquivalence(t *testing.T) {
	// Scheme and case differences must collapse to the same key.
	assert.Equal(t,
		canonical.URL("HTTP://EXAMPLE.com/a"),
		canonical.URL("http://example.com/a"))
	assert.Equal(t,
		canonical.URL("https://www.example.com/a/"),
		canonical.URL("http://example.com/a"))
}
