package index

import "errors"

var (
	// ErrNotFound is returned when a document lookup does not match any
	// indexed document.
	ErrNotFound = errors.New("not found")

	// ErrMissingURL is returned when indexing a document with an empty
	// URL.
	ErrMissingURL = errors.New("document has missing / invalid URL")

	// ErrDuplicateDocument is returned when AddDocument is invoked a
	// second time for an already-indexed URL. The index is built in a
	// single pass; a duplicate indicates the crawl frontier allowed a
	// re-visit.
	ErrDuplicateDocument = errors.New("document already indexed")
)
