package crawler

import (
	"context"
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"unisearch/pipeline"
)

// Static and compile-time check to ensure textExtractor implements the
// pipeline.Processor interface.
var _ pipeline.Processor = (*textExtractor)(nil)

var (
	titleRegex         = regexp.MustCompile(`(?i)<title.*?>(.*?)</title>`)
	repeatedSpaceRegex = regexp.MustCompile(`\s+`)
)

// textExtractor strips the fetched HTML down to its title and visible
// text. Malformed HTML degrades to whatever text survives sanitization,
// it never fails the payload.
type textExtractor struct {
	policyPool sync.Pool
}

func newTextExtractor() *textExtractor {
	return &textExtractor{
		policyPool: sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
}

func (p *textExtractor) Process(
	ctx context.Context, payload pipeline.Payload,
) (pipeline.Payload, error) {
	cPayload, ok := payload.(*crawlerPayload)
	if !ok {
		return nil, nil
	}

	policy := p.policyPool.Get().(*bluemonday.Policy)
	defer p.policyPool.Put(policy)

	if titleMatch := titleRegex.FindStringSubmatch(cPayload.RawContent.String()); len(titleMatch) == 2 {
		cleanTitle := repeatedSpaceRegex.ReplaceAllString(
			policy.Sanitize(titleMatch[1]), " ",
		)
		cPayload.Title = strings.TrimSpace(html.UnescapeString(cleanTitle))
	}

	cleanContent := repeatedSpaceRegex.ReplaceAllString(
		policy.SanitizeReader(&cPayload.RawContent).String(), " ",
	)
	cPayload.TextContent = strings.TrimSpace(html.UnescapeString(cleanContent))

	return cPayload, nil
}
