/*
	urlutil package provides URL canonicalization and crawl-scope checks.
	Canonical URLs serve as the unique page keys for the frontier, the link
	graph and the text index, so every component that stores or compares
	URLs is expected to run them through Normalize first.
*/

package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ErrInvalidURL is returned when a raw URL cannot be parsed or does not
// carry an http(s) scheme and a host.
var ErrInvalidURL = errors.New("invalid URL")

// Normalize converts a raw URL into its canonical form:
//   - scheme and host are lowercased.
//   - default ports (80 for http, 443 for https) are stripped.
//   - the fragment is dropped.
//   - dot segments are resolved and duplicate slashes collapsed.
//   - an empty path becomes "/" and non-root trailing slashes are removed.
//
// Normalize is idempotent: applying it to its own output returns the same
// string.
func Normalize(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("normalize %q: %w", raw, err)
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("normalize %q: %w", raw, ErrInvalidURL)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("normalize %q: %w", raw, ErrInvalidURL)
	}

	// Re-attach the port only when it differs from the scheme default.
	if port := parsed.Port(); port != "" && !isDefaultPort(parsed.Scheme, port) {
		host = host + ":" + port
	}
	parsed.Host = host

	parsed.Path = normalizePath(parsed.Path)
	parsed.Fragment = ""

	return parsed.String(), nil
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") ||
		(scheme == "https" && port == "443")
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}

	cleaned := path.Clean(p)
	if cleaned == "." {
		return "/"
	}

	return cleaned
}

// ScopeFilter restricts a crawl to a single host and an optional path
// prefix. The zero value matches nothing; use NewScopeFilter.
type ScopeFilter struct {
	host       string
	pathPrefix string
}

// NewScopeFilter builds a ScopeFilter from the seed host (optionally with a
// non-default port) and a path prefix. An empty prefix scopes the crawl to
// the entire host.
func NewScopeFilter(host, pathPrefix string) ScopeFilter {
	return ScopeFilter{
		host:       strings.ToLower(host),
		pathPrefix: pathPrefix,
	}
}

// ScopeFromSeed derives a ScopeFilter from a normalized seed URL: the seed's
// host plus the directory portion of the seed's path.
func ScopeFromSeed(seedURL string) (ScopeFilter, error) {
	normalized, err := Normalize(seedURL)
	if err != nil {
		return ScopeFilter{}, err
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return ScopeFilter{}, fmt.Errorf("scope from seed %q: %w", seedURL, err)
	}

	prefix := parsed.Path
	if idx := strings.LastIndexByte(prefix, '/'); idx >= 0 {
		prefix = prefix[:idx+1]
	}

	return NewScopeFilter(parsed.Host, prefix), nil
}

// InScope reports whether a normalized URL belongs to the configured
// host/prefix. Out-of-scope URLs may still be recorded as link graph
// destinations but must never be fetched.
func (f ScopeFilter) InScope(normalizedURL string) bool {
	parsed, err := url.Parse(normalizedURL)
	if err != nil {
		return false
	}

	if !strings.EqualFold(parsed.Host, f.host) {
		return false
	}

	if f.pathPrefix == "" || f.pathPrefix == "/" {
		return true
	}

	return strings.HasPrefix(parsed.Path, f.pathPrefix)
}

// Host returns the host this filter is scoped to.
func (f ScopeFilter) Host() string { return f.host }
