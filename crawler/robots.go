package crawler

import (
	"bufio"
	"io"
	"net/url"
	"strings"
	"sync"
)

// Static and compile-time check to ensure RobotsCache implements the
// RobotsPolicy interface.
var _ RobotsPolicy = (*RobotsCache)(nil)

// RobotsCache fetches and caches per-host robots.txt rules. Only
// `Disallow` directives in `User-agent: *` groups are honored. Hosts
// whose robots.txt cannot be retrieved or parsed allow everything.
type RobotsCache struct {
	getter URLGetter

	mu sync.Mutex
	// host -> disallowed path prefixes.
	rules map[string][]string
}

// NewRobotsCache returns a RobotsCache that retrieves robots.txt files
// with the provided getter.
func NewRobotsCache(getter URLGetter) *RobotsCache {
	return &RobotsCache{
		getter: getter,
		rules:  make(map[string][]string),
	}
}

// Allowed reports whether the URL may be fetched under its host's
// robots.txt rules.
func (c *RobotsCache) Allowed(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	urlPath := parsed.Path
	if urlPath == "" {
		urlPath = "/"
	}

	for _, prefix := range c.rulesForHost(parsed.Scheme, parsed.Host) {
		if strings.HasPrefix(urlPath, prefix) {
			return false
		}
	}

	return true
}

func (c *RobotsCache) rulesForHost(scheme, host string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, exists := c.rules[host]; exists {
		return cached
	}

	// Failed lookups cache an empty rule set so the host's robots.txt
	// is requested once per crawl run.
	var prefixes []string

	resp, err := c.getter.Get(scheme + "://" + host + "/robots.txt")
	if err == nil {
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			prefixes = parseRobotsRules(resp.Body)
		}
		_ = resp.Body.Close()
	}

	c.rules[host] = prefixes

	return prefixes
}

// parseRobotsRules extracts the Disallow prefixes that apply to all
// user-agents.
func parseRobotsRules(r io.Reader) []string {
	var (
		prefixes       []string
		appliesToAll   bool
		inAgentSection bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "user-agent":
			// Consecutive User-agent lines open a shared group; any
			// other directive closes it.
			if !inAgentSection {
				appliesToAll = false
			}
			inAgentSection = true
			if value == "*" {
				appliesToAll = true
			}
		case "disallow":
			inAgentSection = false
			if appliesToAll && value != "" {
				prefixes = append(prefixes, value)
			}
		default:
			inAgentSection = false
		}
	}

	return prefixes
}
