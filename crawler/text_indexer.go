package crawler

import (
	"context"

	"unisearch/pipeline"
	"unisearch/textindexer/index"
)

// Static and compile-time check to ensure textIndexer implements the
// pipeline.Processor interface.
var _ pipeline.Processor = (*textIndexer)(nil)

// textIndexer adds the extracted page text to the text index. Each URL
// is indexed at most once per crawl run; the frontier's at-most-once
// dequeue guarantee makes a duplicate here a genuine failure.
type textIndexer struct {
	indexer MiniIndexer
}

func newTextIndexer(indexer MiniIndexer) *textIndexer {
	return &textIndexer{indexer}
}

func (p *textIndexer) Process(
	ctx context.Context, payload pipeline.Payload,
) (pipeline.Payload, error) {
	cPayload, ok := payload.(*crawlerPayload)
	if !ok {
		return nil, nil
	}

	doc := &index.Document{
		LinkID:  cPayload.LinkID,
		URL:     cPayload.URL,
		Title:   cPayload.Title,
		Content: cPayload.TextContent,
	}

	if err := p.indexer.AddDocument(doc); err != nil {
		return nil, err
	}

	return cPayload, nil
}
