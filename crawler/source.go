package crawler

import (
	"context"

	"unisearch/linkgraph/graph"
	"unisearch/pipeline"
)

// Static and compile-time check to ensure linkSource implements the
// pipeline.Source interface.
var _ pipeline.Source = (*linkSource)(nil)

// linkSource feeds one crawl round's batch of links into the pipeline.
type linkSource struct {
	links []graph.Link
	index int
}

func (s *linkSource) Next(_ context.Context) bool {
	if s.index >= len(s.links) {
		return false
	}

	s.index++

	return true
}

func (s *linkSource) Payload() pipeline.Payload {
	link := s.links[s.index-1]

	// The remaining payload fields are populated by the pipeline stages.
	payload := payloadPool.Get().(*crawlerPayload)
	payload.LinkID = link.ID
	payload.URL = link.URL
	payload.RetrievedAt = link.RetrievedAt

	return payload
}

func (s *linkSource) Error() error { return nil }
