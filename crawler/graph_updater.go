package crawler

import (
	"context"
	"time"

	"unisearch/linkgraph/graph"
	"unisearch/pipeline"
)

// Static and compile-time check to ensure graphUpdater implements the
// pipeline.Processor interface.
var _ pipeline.Processor = (*graphUpdater)(nil)

// graphUpdater records the crawled page and its outgoing links in the
// link graph. The graph is append-only for the duration of a crawl run:
// re-discovered links and edges dedup through the store's upsert
// semantics.
type graphUpdater struct {
	graph MiniGraph
}

func newGraphUpdater(graph MiniGraph) *graphUpdater {
	return &graphUpdater{graph}
}

func (p *graphUpdater) Process(
	ctx context.Context, payload pipeline.Payload,
) (pipeline.Payload, error) {
	cPayload, ok := payload.(*crawlerPayload)
	if !ok {
		return nil, nil
	}

	srcLink := &graph.Link{
		ID:          cPayload.LinkID,
		URL:         cPayload.URL,
		RetrievedAt: time.Now(),
	}
	if err := p.graph.UpsertLink(srcLink); err != nil {
		return nil, err
	}

	// nofollow targets become graph links without an edge so they never
	// receive rank mass from this page.
	for _, url := range cPayload.NoFollowLinks {
		if err := p.graph.UpsertLink(&graph.Link{URL: url}); err != nil {
			return nil, err
		}
	}

	for _, url := range cPayload.Links {
		link := &graph.Link{URL: url}
		if err := p.graph.UpsertLink(link); err != nil {
			return nil, err
		}

		if err := p.graph.UpsertEdge(&graph.Edge{
			Src:  srcLink.ID,
			Dest: link.ID,
		}); err != nil {
			return nil, err
		}
	}

	return cPayload, nil
}
