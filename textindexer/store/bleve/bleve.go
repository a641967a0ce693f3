/*
	bleve package implements the index.Indexer contract on top of a bleve
	full-text index, demonstrating that a third-party engine can substitute
	the built-in inverted index without changes to the ranker or the
	PageRank engine.

	Documents are analyzed by the shared index.Tokenizer before they reach
	bleve, and the bleve field uses a whitespace+lowercase analyzer, so the
	term vocabulary matches the built-in backend exactly. Postings are
	served through bleve's term field readers, which expose per-document
	term frequencies.
*/

package bleve

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/analysis/token/lowercase"
	"github.com/blevesearch/bleve/analysis/tokenizer/whitespace"
	bleveindex "github.com/blevesearch/bleve/index"

	"unisearch/textindexer/index"
)

const termsAnalyzer = "terms"

// Static and compile-time check to ensure BleveIndex implements the
// Indexer interface.
var _ index.Indexer = (*BleveIndex)(nil)

// bleveDoc is the shape handed to bleve for analysis.
type bleveDoc struct {
	Terms string
}

// BleveIndex is an Indexer implementation that delegates postings storage
// to an in-memory bleve index. Document metadata and term totals are kept
// alongside, as bleve does not surface them through its public API.
type BleveIndex struct {
	mu        sync.RWMutex
	idx       bleve.Index
	tokenizer index.Tokenizer

	docs       map[string]*index.Document
	docLengths map[string]int
	countedDocs int
}

// NewBleveIndex creates a memory-only bleve-backed index using the
// provided tokenizer.
func NewBleveIndex(tokenizer index.Tokenizer) (*BleveIndex, error) {
	mapping := bleve.NewIndexMapping()

	// Content is pre-tokenized by index.Tokenizer; bleve only needs to
	// split on whitespace and lowercase, never re-analyze.
	err := mapping.AddCustomAnalyzer(termsAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     whitespace.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("bleve index: analyzer: %w", err)
	}

	termsField := bleve.NewTextFieldMapping()
	termsField.Analyzer = termsAnalyzer

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("Terms", termsField)
	mapping.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("bleve index: %w", err)
	}

	return &BleveIndex{
		idx:        idx,
		tokenizer:  tokenizer,
		docs:       make(map[string]*index.Document),
		docLengths: make(map[string]int),
	}, nil
}

// Close releases the bleve index resources.
func (s *BleveIndex) Close() error {
	return s.idx.Close()
}

// AddDocument tokenizes the document content and records its postings
// exactly once per URL.
func (s *BleveIndex) AddDocument(doc *index.Document) error {
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

	if existing, exists := s.docs[doc.URL]; exists {
		dCopy.PageRank = existing.PageRank
	}

	terms := s.tokenizer.Tokenize(doc.Content)
	if err := s.idx.Index(doc.URL, bleveDoc{Terms: strings.Join(terms, " ")}); err != nil {
		return fmt.Errorf("add document %q: %w", doc.URL, err)
	}

	s.docs[doc.URL] = dCopy
	s.docLengths[doc.URL] = len(terms)
	if len(terms) > 0 {
		s.countedDocs++
	}

	return nil
}

// Lookup serves postings straight from bleve's term dictionary for the
// Terms field.
func (s *BleveIndex) Lookup(term string) ([]index.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	internalIdx, _, err := s.idx.Advanced()
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", term, err)
	}

	reader, err := internalIdx.Reader()
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", term, err)
	}
	defer func() { _ = reader.Close() }()

	fieldReader, err := reader.TermFieldReader([]byte(term), "Terms", true, false, false)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", term, err)
	}
	defer func() { _ = fieldReader.Close() }()

	var list []index.Posting
	tfd := new(bleveindex.TermFieldDoc)
	for {
		next, err := fieldReader.Next(tfd)
		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", term, err)
		}
		if next == nil {
			break
		}

		url, err := reader.ExternalID(next.ID)
		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", term, err)
		}

		list = append(list, index.Posting{
			URL:       url,
			Frequency: int(next.Freq),
			DocLength: s.docLengths[url],
		})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].URL < list[j].URL })

	if list == nil {
		list = []index.Posting{}
	}

	return list, nil
}

// DocumentCount returns the number of indexed documents containing at
// least one indexed term.
func (s *BleveIndex) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.countedDocs
}

// FindByURL looks up a document's metadata by its canonical URL.
func (s *BleveIndex) FindByURL(url string) (*index.Document, error) {
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
func (s *BleveIndex) UpdateScore(url string, score float64) error {
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
