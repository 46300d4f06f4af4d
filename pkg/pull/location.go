package pull

import (
	"net/url"
	"path/filepath"
	"strings"
)

// DefaultHost is the forge owner/repo shorthands are resolved against
const DefaultHost = "github.com"

// NormalizeLocation turns a user supplied location into a clonable URL.
//
//	alice/dots                 -> https://github.com/alice/dots.git
//	gitlab.com/alice/dots      -> https://gitlab.com/alice/dots.git
//	https://host/alice/dots    -> https://host/alice/dots.git
//	git@host:alice/dots        -> git@host:alice/dots.git
//
// Local paths and file:// URLs are returned unchanged.
func NormalizeLocation(location, defaultHost string) string {
	loc := strings.TrimSuffix(strings.TrimSpace(location), "/")
	if loc == "" {
		return ""
	}
	if filepath.IsAbs(loc) || strings.HasPrefix(loc, "file://") {
		return loc
	}
	if defaultHost == "" {
		defaultHost = DefaultHost
	}

	if !strings.Contains(loc, "://") && !isSCPLike(loc) {
		if strings.Count(loc, "/") == 1 {
			loc = strings.TrimSuffix(defaultHost, "/") + "/" + loc
		}
		loc = "https://" + loc
	}
	if !strings.HasSuffix(loc, ".git") {
		loc += ".git"
	}
	return loc
}

func isSCPLike(loc string) bool {
	at := strings.Index(loc, "@")
	colon := strings.Index(loc, ":")
	return at > 0 && colon > at && !strings.Contains(loc[:colon], "/")
}

// canonicalKey identifies a normalized location for cycle detection. Scheme
// and host compare case-insensitively; a trailing .git is ignored.
func canonicalKey(normalized string) string {
	host, path := splitLocation(normalized)
	return strings.ToLower(host) + "/" + strings.Join(path, "/")
}

// CheckoutDir returns where a normalized location is cloned to:
// <pulled>/<host>/<owner>/<repo>. Local repositories live under "local".
func CheckoutDir(pulledDir, normalized string) string {
	host, path := splitLocation(normalized)
	parts := append([]string{pulledDir, host}, path...)
	return filepath.Join(parts...)
}

func splitLocation(normalized string) (string, []string) {
	loc := strings.TrimSuffix(normalized, ".git")

	var host, rest string
	switch {
	case filepath.IsAbs(loc):
		host, rest = "local", loc
	case isSCPLike(loc):
		colon := strings.Index(loc, ":")
		host = loc[strings.Index(loc, "@")+1 : colon]
		rest = loc[colon+1:]
	default:
		u, err := url.Parse(loc)
		if err != nil {
			host, rest = "unknown", loc
			break
		}
		host, rest = u.Host, u.Path
		if host == "" {
			host = "local"
		}
	}
	return strings.ToLower(host), cleanComponents(rest)
}

// cleanComponents splits p on '/' and drops components that would escape
// the checkout root.
func cleanComponents(p string) []string {
	var out []string
	for _, c := range strings.Split(filepath.ToSlash(p), "/") {
		switch c {
		case "", ".", "..":
			continue
		}
		out = append(out, c)
	}
	return out
}
