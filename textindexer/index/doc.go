package index

import (
	"time"

	"github.com/google/uuid"
)

// Document defines a web page whose content has been successfully fetched
// and parsed.
type Document struct {
	// ID of the link graph entry that points to this document.
	LinkID uuid.UUID

	// Canonical URL of the document. Serves as the unique index key.
	URL string

	// Title of the document. Falls back to the URL when the page
	// carries no title element.
	Title string

	// Visible text content of the document.
	Content string

	// PageRank score assigned to this document after the crawl
	// completed.
	PageRank float64

	// Time the document was indexed.
	IndexedAt time.Time
}
