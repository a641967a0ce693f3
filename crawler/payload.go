package crawler

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"unisearch/pipeline"
)

var (
	// Static and compile-time check to ensure crawlerPayload implements
	// the pipeline.Payload interface.
	_ pipeline.Payload = (*crawlerPayload)(nil)

	payloadPool = sync.Pool{
		New: func() interface{} {
			return new(crawlerPayload)
		},
	}
)

type crawlerPayload struct {
	LinkID      uuid.UUID // populated by the source.
	URL         string    // populated by the source.
	RetrievedAt time.Time // populated by the source.

	RawContent bytes.Buffer // populated by the link fetcher.

	Links         []string // populated by the link extractor.
	NoFollowLinks []string // populated by the link extractor.

	Title       string // populated by the text extractor.
	TextContent string // populated by the text extractor.
}

// Clone returns a deep-copy of the original payload.
func (p *crawlerPayload) Clone() pipeline.Payload {
	payloadClone := payloadPool.Get().(*crawlerPayload)

	payloadClone.LinkID = p.LinkID
	payloadClone.URL = p.URL
	payloadClone.RetrievedAt = p.RetrievedAt
	payloadClone.Links = append([]string(nil), p.Links...)
	payloadClone.NoFollowLinks = append([]string(nil), p.NoFollowLinks...)
	payloadClone.Title = p.Title
	payloadClone.TextContent = p.TextContent

	if _, err := io.Copy(&payloadClone.RawContent, bytes.NewReader(p.RawContent.Bytes())); err != nil {
		panic(fmt.Sprintf("[BUG] cloning payload raw content: %v", err))
	}

	return payloadClone
}

// MarkAsProcessed resets the payload and returns it to the pool for
// re-use.
func (p *crawlerPayload) MarkAsProcessed() {
	p.LinkID = uuid.Nil
	p.URL = ""
	p.RetrievedAt = time.Time{}
	p.RawContent.Reset()
	p.Links = p.Links[:0]
	p.NoFollowLinks = p.NoFollowLinks[:0]
	p.Title = ""
	p.TextContent = ""

	payloadPool.Put(p)
}
