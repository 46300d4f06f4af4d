package pull

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		host     string
		want     string
	}{
		{"owner/repo shorthand", "alice/dots", "", "https://github.com/alice/dots.git"},
		{"custom default host", "alice/dots", "gitlab.com", "https://gitlab.com/alice/dots.git"},
		{"host without scheme", "codeberg.org/alice/dots", "", "https://codeberg.org/alice/dots.git"},
		{"full url", "https://example.com/alice/dots", "", "https://example.com/alice/dots.git"},
		{"already normalized", "https://github.com/alice/dots.git", "", "https://github.com/alice/dots.git"},
		{"trailing slash", "alice/dots/", "", "https://github.com/alice/dots.git"},
		{"scp style", "git@github.com:alice/dots", "", "git@github.com:alice/dots.git"},
		{"local path", "/srv/git/dots", "", "/srv/git/dots"},
		{"file url", "file:///srv/git/dots", "", "file:///srv/git/dots"},
		{"empty", "  ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLocation(tt.location, tt.host))
		})
	}
}

func TestCheckoutDir(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"https", "https://github.com/alice/dots.git", "/p/github.com/alice/dots"},
		{"host case folded", "https://GitHub.com/alice/dots.git", "/p/github.com/alice/dots"},
		{"scp style", "git@gitlab.com:alice/dots.git", "/p/gitlab.com/alice/dots"},
		{"local path", "/srv/git/dots", "/p/local/srv/git/dots"},
		{"file url", "file:///srv/git/dots", "/p/local/srv/git/dots"},
		{"dot segments dropped", "https://evil.com/../../etc.git", "/p/evil.com/etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckoutDir("/p", tt.url))
		})
	}
}

func TestCanonicalKey(t *testing.T) {
	a := canonicalKey(NormalizeLocation("alice/dots", ""))
	b := canonicalKey(NormalizeLocation("https://GITHUB.com/alice/dots.git", ""))
	c := canonicalKey(NormalizeLocation("bob/dots", ""))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
