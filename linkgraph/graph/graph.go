/*
	graph package defines the models and behavior of the link graph data
	stores used by the crawler and the PageRank calculator.

	The graph is append-only for the duration of a crawl run: links and
	edges are only ever inserted or refreshed, never removed. Edges are
	deduplicated per ordered (src, dest) pair by the store's upsert
	semantics. The PageRank calculator reads the graph only after the
	crawl frontier has drained, so iteration never observes a partially
	built run.
*/

package graph

import (
	"time"

	"github.com/google/uuid"
)

// Graph should be implemented by link graph data stores.
type Graph interface {
	// UpsertLink creates a new or updates an existing link.
	UpsertLink(link *Link) error

	// FindLink performs a link lookup by id.
	FindLink(id uuid.UUID) (*Link, error)

	// FindLinkByURL performs a link lookup by its canonical URL.
	FindLinkByURL(url string) (*Link, error)

	// Links returns an iterator over every link in the graph.
	Links() (LinkIterator, error)

	// UpsertEdge creates a new or refreshes an existing edge. Both edge
	// endpoints must already exist as links.
	UpsertEdge(edge *Edge) error

	// Edges returns an iterator over every edge in the graph.
	Edges() (EdgeIterator, error)
}

// LinkIterator is implemented by types that iterate graph links.
type LinkIterator interface {
	Iterator

	// Link returns the currently fetched link object.
	Link() *Link
}

// EdgeIterator is implemented by types that iterate graph edges.
type EdgeIterator interface {
	Iterator

	// Edge returns the currently fetched Edge object.
	Edge() *Edge
}

// Iterator should be embedded / implemented by types that require
// iteration functionality.
type Iterator interface {
	// Next loads the next item, returns false when no more items
	// are available or when an error occurs.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error
}

// Link represents a crawled or discovered page. The URL field holds the
// canonical form produced by urlutil.Normalize and serves as the unique
// page key.
type Link struct {
	ID  uuid.UUID // Link unique identifier.
	URL string    // Canonical page URL.

	// Last successful fetch timestamp. Zero for pages that were
	// discovered through an anchor but never fetched, which includes
	// every out-of-scope destination.
	RetrievedAt time.Time
}

// Edge represents a directed graph edge that originates from Src and
// terminates at Dest.
type Edge struct {
	ID        uuid.UUID // Edge unique identifier.
	Src       uuid.UUID // Source link ID.
	Dest      uuid.UUID // Destination link ID.
	UpdatedAt time.Time // Last upsert timestamp.
}
