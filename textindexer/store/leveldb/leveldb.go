/*
	leveldb package implements an index.Indexer persisted in a LevelDB
	database, so the inverted index built during the crawl phase survives
	into the serving phase without a re-crawl.

	Layout: one "doc:<url>" entry per document carrying its metadata and
	term total, one "postings:<term>" entry per term carrying the full
	posting list, and a "meta:doc_count" counter of documents with at
	least one indexed term. Writes for one document go through a single
	batch.
*/

package leveldb

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"unisearch/textindexer/index"
)

// Overridden in tests.
var nowFn = time.Now

const (
	docKeyPrefix     = "doc:"
	postingKeyPrefix = "postings:"
	docCountKey      = "meta:doc_count"
)

// Static and compile-time check to ensure LevelDBIndex implements the
// Indexer interface.
var _ index.Indexer = (*LevelDBIndex)(nil)

// LevelDBIndex is an Indexer implementation backed by a LevelDB database.
type LevelDBIndex struct {
	// Serializes read-modify-write cycles on posting lists; LevelDB
	// batches alone do not make them atomic.
	mu        sync.RWMutex
	db        *leveldb.DB
	tokenizer index.Tokenizer
}

// NewLevelDBIndex opens (or creates) a LevelDB database at path and
// returns an index instance using the provided tokenizer.
func NewLevelDBIndex(path string, tokenizer index.Tokenizer) (*LevelDBIndex, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("leveldb index: open %q: %w", path, err)
	}

	return &LevelDBIndex{db: db, tokenizer: tokenizer}, nil
}

// Close releases the database handle.
func (s *LevelDBIndex) Close() error {
	return s.db.Close()
}

// AddDocument tokenizes the document content and records its postings
// exactly once per URL.
func (s *LevelDBIndex) AddDocument(doc *index.Document) error {
	if doc.URL == "" {
		return fmt.Errorf("add document: %w", index.ErrMissingURL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.getDoc(doc.URL)
	if err != nil {
		return err
	}
	if existing != nil && !existing.Document.IndexedAt.IsZero() {
		return fmt.Errorf("add document %q: %w", doc.URL, index.ErrDuplicateDocument)
	}

	record := docRecord{Document: *doc}
	if existing != nil {
		record.Document.PageRank = existing.Document.PageRank
	}

	counts, total := s.tokenizer.TermCounts(doc.Content)
	record.DocLength = total
	record.Document.IndexedAt = nowFn()

	batch := new(leveldb.Batch)

	for term, count := range counts {
		postings, err := s.getPostings(term)
		if err != nil {
			return err
		}

		postings = insertPosting(postings, index.Posting{
			URL:       doc.URL,
			Frequency: count,
			DocLength: total,
		})

		encoded, err := json.Marshal(postings)
		if err != nil {
			return fmt.Errorf("add document %q: %w", doc.URL, err)
		}
		batch.Put([]byte(postingKeyPrefix+term), encoded)
	}

	encodedDoc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("add document %q: %w", doc.URL, err)
	}
	batch.Put([]byte(docKeyPrefix+doc.URL), encodedDoc)

	if total > 0 {
		count, err := s.docCount()
		if err != nil {
			return err
		}
		batch.Put([]byte(docCountKey), []byte(strconv.Itoa(count+1)))
	}

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("add document %q: %w", doc.URL, err)
	}

	return nil
}

// Lookup returns the postings for a normalized term ordered by document
// URL.
func (s *LevelDBIndex) Lookup(term string) ([]index.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getPostings(term)
}

// DocumentCount returns the number of indexed documents containing at
// least one indexed term.
func (s *LevelDBIndex) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count, err := s.docCount()
	if err != nil {
		return 0
	}

	return count
}

// FindByURL looks up a document's metadata by its canonical URL.
func (s *LevelDBIndex) FindByURL(url string) (*index.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, err := s.getDoc(url)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("find by URL: %w", index.ErrNotFound)
	}

	doc := record.Document

	return &doc, nil
}

// UpdateScore sets the PageRank score for the document with the specified
// URL, creating a placeholder when the URL was never indexed.
func (s *LevelDBIndex) UpdateScore(url string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getDoc(url)
	if err != nil {
		return err
	}
	if record == nil {
		record = &docRecord{Document: index.Document{URL: url}}
	}

	record.Document.PageRank = score

	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("update score %q: %w", url, err)
	}

	if err := s.db.Put([]byte(docKeyPrefix+url), encoded, nil); err != nil {
		return fmt.Errorf("update score %q: %w", url, err)
	}

	return nil
}

// docRecord is the on-disk representation of an indexed document.
type docRecord struct {
	Document  index.Document
	DocLength int
}

func (s *LevelDBIndex) getDoc(url string) (*docRecord, error) {
	raw, err := s.db.Get([]byte(docKeyPrefix+url), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document %q: %w", url, err)
	}

	record := new(docRecord)
	if err := json.Unmarshal(raw, record); err != nil {
		return nil, fmt.Errorf("get document %q: %w", url, err)
	}

	return record, nil
}

func (s *LevelDBIndex) getPostings(term string) ([]index.Posting, error) {
	raw, err := s.db.Get([]byte(postingKeyPrefix+term), nil)
	if err == leveldb.ErrNotFound {
		return []index.Posting{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get postings %q: %w", term, err)
	}

	var postings []index.Posting
	if err := json.Unmarshal(raw, &postings); err != nil {
		return nil, fmt.Errorf("get postings %q: %w", term, err)
	}

	return postings, nil
}

func (s *LevelDBIndex) docCount() (int, error) {
	raw, err := s.db.Get([]byte(docCountKey), nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("document count: %w", err)
	}

	count, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("document count: %w", err)
	}

	return count, nil
}

// insertPosting inserts p into the URL-ordered posting list, keeping the
// order invariant the Lookup contract promises.
func insertPosting(postings []index.Posting, p index.Posting) []index.Posting {
	at := sort.Search(len(postings), func(i int) bool {
		return postings[i].URL >= p.URL
	})

	postings = append(postings, index.Posting{})
	copy(postings[at+1:], postings[at:])
	postings[at] = p

	return postings
}
