/*
	index package defines the contract between the crawler, the ranking
	engine and the text index backends.

	The core of the contract is postings-level: a backend maps each
	normalized term to the set of documents containing it together with the
	exact in-document term frequency. Any backend honoring this contract
	(including a third-party full-text engine) can substitute the built-in
	inverted index without touching the ranker or the PageRank engine.
*/

package index

import "math"

// Indexer should be implemented by text index backends that store and
// serve documents discovered by the crawler.
type Indexer interface {
	// AddDocument tokenizes the document content and records its
	// postings exactly once. Indexing the same URL twice returns
	// ErrDuplicateDocument: term frequencies are computed in a single
	// pass and never incrementally updated, so a re-visit indicates a
	// frontier bug. Documents whose content yields zero indexed terms
	// are retained for metadata lookups but excluded from
	// DocumentCount.
	AddDocument(doc *Document) error

	// Lookup returns one posting per document containing the normalized
	// term. A term with no postings yields an empty slice, not an
	// error. Postings are ordered by document URL for determinism.
	Lookup(term string) ([]Posting, error)

	// DocumentCount returns the number of indexed documents that
	// contain at least one indexed term.
	DocumentCount() int

	// FindByURL looks up a document's metadata by its canonical URL.
	FindByURL(url string) (*Document, error)

	// UpdateScore sets the PageRank score for the document with the
	// specified URL. If no such document exists, a placeholder document
	// holding only the score is created.
	UpdateScore(url string, score float64) error
}

// Posting records one document occurrence of a term.
type Posting struct {
	// Canonical URL of the containing document.
	URL string

	// Number of occurrences of the term in the document.
	Frequency int

	// Total number of indexed terms in the document. Carried on the
	// posting so TF can be computed without a second backend round-trip.
	DocLength int
}

// TF returns the term frequency of the posting's term in its document:
// occurrences divided by total terms.
func (p Posting) TF() float64 {
	if p.DocLength == 0 {
		return 0
	}

	return float64(p.Frequency) / float64(p.DocLength)
}

// IDF returns the inverse document frequency for a term present in
// docsContaining out of totalDocs documents. A term present in every
// document scores zero.
func IDF(totalDocs, docsContaining int) float64 {
	if totalDocs == 0 || docsContaining == 0 {
		return 0
	}

	return math.Log(float64(totalDocs) / float64(docsContaining))
}
