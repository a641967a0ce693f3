package crawler

import (
	"context"
	"net/url"
	"regexp"

	"unisearch/pipeline"
	"unisearch/urlutil"
)

// Static and compile-time check to ensure linkExtractor implements the
// pipeline.Processor interface.
var _ pipeline.Processor = (*linkExtractor)(nil)

var (
	// Locates the <base href="xxx"> tag and captures the href value.
	baseHrefRegex = regexp.MustCompile(`(?i)<base.*?href\s*?=\s*?"(.*?)\s*?"`)
	// Locates <a href="xxx"> tags and captures the href value.
	findLinkRegex = regexp.MustCompile(`(?i)<a.*?href\s*?=\s*?"\s*?(.*?)\s*?".*?>`)
	// Matches a rel="nofollow" attribute inside an anchor tag. Links
	// carrying it are recorded but never feed the rank computation.
	noFollowRegex = regexp.MustCompile(`(?i)rel\s*?=\s*?"?nofollow"?`)
)

// linkExtractor scans fetched HTML content for anchor tags, resolves
// their targets against the page (or <base>) URL and stores the
// canonical forms on the payload.
type linkExtractor struct {
	netDetector PrivateNetworkDetector
}

func newLinkExtractor(netDetector PrivateNetworkDetector) *linkExtractor {
	return &linkExtractor{netDetector}
}

func (p *linkExtractor) Process(
	ctx context.Context, payload pipeline.Payload,
) (pipeline.Payload, error) {
	cPayload, ok := payload.(*crawlerPayload)
	if !ok {
		return nil, nil
	}

	relativeTo, err := url.Parse(cPayload.URL)
	if err != nil {
		return nil, err
	}

	content := cPayload.RawContent.String()

	// A <base href> tag overrides the page URL as the base for relative
	// targets.
	if baseMatch := baseHrefRegex.FindStringSubmatch(content); len(baseMatch) == 2 {
		if baseURL := resolveURL(relativeTo, ensureTrailingSlash(baseMatch[1])); baseURL != nil {
			relativeTo = baseURL
		}
	}

	seen := make(map[string]struct{})
	for _, match := range findLinkRegex.FindAllStringSubmatch(content, -1) {
		resolved := resolveURL(relativeTo, match[1])
		if resolved == nil {
			continue
		}

		// Canonicalization drops fragments and rejects non-http(s)
		// schemes.
		normalized, err := urlutil.Normalize(resolved.String())
		if err != nil {
			continue
		}

		if exclusionRegex.MatchString(normalized) {
			continue
		}

		if !p.shouldRetainURL(relativeTo.Hostname(), resolved) {
			continue
		}

		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}

		if noFollowRegex.MatchString(match[0]) {
			cPayload.NoFollowLinks = append(cPayload.NoFollowLinks, normalized)
		} else {
			cPayload.Links = append(cPayload.Links, normalized)
		}
	}

	return cPayload, nil
}

func (p *linkExtractor) shouldRetainURL(srcHost string, url *url.URL) bool {
	// Same-host links already passed the private network check during
	// the fetch stage.
	if srcHost == url.Hostname() {
		return true
	}

	isPrivate, err := p.netDetector.IsPrivate(url.Hostname())
	if err != nil || isPrivate {
		return false
	}

	return true
}

func ensureTrailingSlash(s string) string {
	if s == "" || s[len(s)-1] != '/' {
		return s + "/"
	}

	return s
}

// resolveURL expands target into an absolute URL relative to relativeTo.
// Targets starting with "//" inherit the scheme of the containing page.
// Unparsable or empty targets resolve to nil.
func resolveURL(relativeTo *url.URL, target string) *url.URL {
	if target == "" {
		return nil
	}

	if len(target) >= 2 && target[0] == '/' && target[1] == '/' {
		target = relativeTo.Scheme + ":" + target
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return nil
	}

	return relativeTo.ResolveReference(parsed)
}
