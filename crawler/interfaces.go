package crawler

import (
	"net/http"

	"unisearch/linkgraph/graph"
	"unisearch/textindexer/index"
)

// URLGetter should be implemented by objects that perform HTTP GET
// requests to fetch page content.
type URLGetter interface {
	Get(url string) (*http.Response, error)
}

// PrivateNetworkDetector should be implemented by objects that can detect
// whether a host resolves to a private network address.
type PrivateNetworkDetector interface {
	IsPrivate(address string) (bool, error)
}

// RobotsPolicy should be implemented by objects that decide whether a
// URL may be fetched according to the host's robots.txt rules.
type RobotsPolicy interface {
	Allowed(url string) bool
}

// MiniGraph is the subset of the link graph API the crawler stages need.
type MiniGraph interface {
	// UpsertLink creates a new link or updates an existing one.
	UpsertLink(link *graph.Link) error

	// UpsertEdge creates a new edge or refreshes an existing one.
	UpsertEdge(edge *graph.Edge) error
}

// MiniIndexer is the subset of the text index API the crawler stages
// need.
type MiniIndexer interface {
	// AddDocument adds a crawled document to the text index.
	AddDocument(doc *index.Document) error
}

// Enqueuer should be implemented by objects that accept the in-scope
// links discovered during a crawl round (the crawl frontier).
type Enqueuer interface {
	Enqueue(normalizedURL string) bool
}
