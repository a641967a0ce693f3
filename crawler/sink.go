package crawler

import (
	"context"

	"unisearch/pipeline"
)

// Static and compile-time check to ensure frontierFeedingSink implements
// the pipeline.Sink interface.
var _ pipeline.Sink = (*frontierFeedingSink)(nil)

// frontierFeedingSink counts completed payloads and enqueues the links
// discovered on each crawled page so the next round can fetch them. The
// frontier drops out-of-scope and already seen URLs, so re-offering the
// same link from both broadcast branches is harmless.
type frontierFeedingSink struct {
	frontier Enqueuer
	count    int
}

func (s *frontierFeedingSink) Consume(_ context.Context, p pipeline.Payload) error {
	s.count++

	cPayload, ok := p.(*crawlerPayload)
	if !ok {
		return nil
	}

	if s.frontier != nil {
		for _, url := range cPayload.Links {
			s.frontier.Enqueue(url)
		}
	}

	return nil
}

// getCount returns the number of pages fully processed by the run. The
// broadcast stage emits two payloads per crawled page, one from each
// branch.
func (s *frontierFeedingSink) getCount() int {
	return s.count / 2
}
