/*
	memory package implements the built-in inverted index: a postings map
	from normalized term to per-document occurrence counts, guarded by a
	read-write mutex so crawl workers can index concurrently while queries
	read concurrently after the crawl completes.
*/

package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"unisearch/textindexer/index"
)

// Static and compile-time check to ensure InMemoryIndex implements the
// Indexer interface.
var _ index.Indexer = (*InMemoryIndex)(nil)

// InMemoryIndex is an Indexer implementation that keeps postings, document
// metadata and per-document term totals in process memory.
type InMemoryIndex struct {
	mu        sync.RWMutex
	tokenizer index.Tokenizer

	// term -> document URL -> occurrence count.
	postings map[string]map[string]int
	// document URL -> total indexed terms.
	docLengths map[string]int
	docs       map[string]*index.Document
	// Number of documents with at least one indexed term. Documents
	// that tokenize to nothing are excluded so they never skew IDF.
	countedDocs int
}

// NewInMemoryIndex creates an in-memory inverted index using the provided
// tokenizer.
func NewInMemoryIndex(tokenizer index.Tokenizer) *InMemoryIndex {
	return &InMemoryIndex{
		tokenizer:  tokenizer,
		postings:   make(map[string]map[string]int),
		docLengths: make(map[string]int),
		docs:       make(map[string]*index.Document),
	}
}

// AddDocument tokenizes the document content and records its postings
// exactly once per URL.
func (s *InMemoryIndex) AddDocument(doc *index.Document) error {
	if doc.URL == "" {
		return fmt.Errorf("add document: %w", index.ErrMissingURL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.docs[doc.URL]; exists && !existing.IndexedAt.IsZero() {
		return fmt.Errorf("add document %q: %w", doc.URL, index.ErrDuplicateDocument)
	}

	dCopy := new(index.Document)
	*dCopy = *doc
	dCopy.IndexedAt = time.Now()

	// Keep a previously assigned placeholder score.
	if existing, exists := s.docs[doc.URL]; exists {
		dCopy.PageRank = existing.PageRank
	}

	counts, total := s.tokenizer.TermCounts(doc.Content)
	for term, count := range counts {
		if s.postings[term] == nil {
			s.postings[term] = make(map[string]int)
		}
		s.postings[term][doc.URL] = count
	}

	s.docs[doc.URL] = dCopy
	s.docLengths[doc.URL] = total
	if total > 0 {
		s.countedDocs++
	}

	return nil
}

// Lookup returns the postings for a normalized term ordered by document
// URL.
func (s *InMemoryIndex) Lookup(term string) ([]index.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byURL := s.postings[term]
	list := make([]index.Posting, 0, len(byURL))
	for url, freq := range byURL {
		list = append(list, index.Posting{
			URL:       url,
			Frequency: freq,
			DocLength: s.docLengths[url],
		})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].URL < list[j].URL })

	return list, nil
}

// DocumentCount returns the number of indexed documents containing at
// least one indexed term.
func (s *InMemoryIndex) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.countedDocs
}

// FindByURL looks up a document's metadata by its canonical URL.
func (s *InMemoryIndex) FindByURL(url string) (*index.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[url]
	if !exists {
		return nil, fmt.Errorf("find by URL: %w", index.ErrNotFound)
	}

	dCopy := new(index.Document)
	*dCopy = *doc

	return dCopy, nil
}

// UpdateScore sets the PageRank score for the document with the specified
// URL, creating a placeholder when the URL was never indexed.
func (s *InMemoryIndex) UpdateScore(url string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[url]
	if !exists {
		doc = &index.Document{URL: url}
		s.docs[url] = doc
	}

	doc.PageRank = score

	return nil
}
