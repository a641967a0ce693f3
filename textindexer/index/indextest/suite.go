/*
	indextest package provides a re-usable set of behavior tests that every
	index.Indexer implementation is expected to pass. Backend-specific test
	suites embed BaseSuite and install their implementation with SetIndexer.
*/

package indextest

import (
	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"unisearch/textindexer/index"
)

// BaseSuite defines a set of re-usable index backend behavior tests.
type BaseSuite struct {
	idx index.Indexer
}

// SetIndexer configures the test suite to run all tests against an
// instance of a specific index.Indexer implementation.
func (s *BaseSuite) SetIndexer(idx index.Indexer) {
	s.idx = idx
}

// TestAddDocumentAndLookup verifies the single-pass indexing contract and
// the postings returned for indexed terms.
func (s *BaseSuite) TestAddDocumentAndLookup(c *check.C) {
	doc := &index.Document{
		LinkID:  uuid.New(),
		URL:     "https://uni.example.edu/crawl/physics.html",
		Title:   "Physics department",
		Content: "physics physics lectures schedule",
	}

	c.Assert(s.idx.AddDocument(doc), check.IsNil)

	postings, err := s.idx.Lookup("physics")
	c.Assert(err, check.IsNil)
	c.Assert(postings, check.HasLen, 1)
	c.Assert(postings[0].URL, check.Equals, doc.URL)
	c.Assert(postings[0].Frequency, check.Equals, 2)
	c.Assert(postings[0].DocLength, check.Equals, 4)

	c.Assert(s.idx.DocumentCount(), check.Equals, 1)
}

// TestDuplicateDocument verifies that re-indexing a URL is rejected.
func (s *BaseSuite) TestDuplicateDocument(c *check.C) {
	doc := &index.Document{
		LinkID:  uuid.New(),
		URL:     "https://uni.example.edu/crawl/a.html",
		Content: "alpha beta",
	}

	c.Assert(s.idx.AddDocument(doc), check.IsNil)

	err := s.idx.AddDocument(&index.Document{
		LinkID:  uuid.New(),
		URL:     doc.URL,
		Content: "alpha beta gamma",
	})
	c.Assert(err, check.ErrorMatches, ".*already indexed.*")

	// The original postings must remain untouched.
	postings, err := s.idx.Lookup("gamma")
	c.Assert(err, check.IsNil)
	c.Assert(postings, check.HasLen, 0)
}

// TestLookupUnknownTerm verifies that a missing term yields an empty
// posting list, not an error.
func (s *BaseSuite) TestLookupUnknownTerm(c *check.C) {
	postings, err := s.idx.Lookup("nonexistent")
	c.Assert(err, check.IsNil)
	c.Assert(postings, check.HasLen, 0)
}

// TestLookupOrderedByURL verifies deterministic posting order.
func (s *BaseSuite) TestLookupOrderedByURL(c *check.C) {
	// Insert out of lexical order on purpose.
	for _, url := range []string{
		"https://uni.example.edu/crawl/c.html",
		"https://uni.example.edu/crawl/a.html",
		"https://uni.example.edu/crawl/b.html",
	} {
		c.Assert(s.idx.AddDocument(&index.Document{
			LinkID:  uuid.New(),
			URL:     url,
			Content: "shared term",
		}), check.IsNil)
	}

	postings, err := s.idx.Lookup("shared")
	c.Assert(err, check.IsNil)
	c.Assert(postings, check.HasLen, 3)
	for i := 1; i < len(postings); i++ {
		c.Assert(postings[i-1].URL < postings[i].URL, check.Equals, true)
	}
}

// TestEmptyDocumentExcludedFromCount verifies that documents with zero
// indexed terms do not inflate the corpus size used for IDF.
func (s *BaseSuite) TestEmptyDocumentExcludedFromCount(c *check.C) {
	c.Assert(s.idx.AddDocument(&index.Document{
		LinkID:  uuid.New(),
		URL:     "https://uni.example.edu/crawl/words.html",
		Content: "actual words here",
	}), check.IsNil)

	c.Assert(s.idx.AddDocument(&index.Document{
		LinkID:  uuid.New(),
		URL:     "https://uni.example.edu/crawl/empty.html",
		Title:   "Empty",
		Content: "",
	}), check.IsNil)

	c.Assert(s.idx.DocumentCount(), check.Equals, 1)

	// The empty document is still retrievable by URL.
	doc, err := s.idx.FindByURL("https://uni.example.edu/crawl/empty.html")
	c.Assert(err, check.IsNil)
	c.Assert(doc.Title, check.Equals, "Empty")
}

// TestStopwordsNotIndexed verifies that the fixed stopword list never
// produces postings.
func (s *BaseSuite) TestStopwordsNotIndexed(c *check.C) {
	c.Assert(s.idx.AddDocument(&index.Document{
		LinkID:  uuid.New(),
		URL:     "https://uni.example.edu/crawl/stopful.html",
		Content: "the library is open",
	}), check.IsNil)

	postings, err := s.idx.Lookup("the")
	c.Assert(err, check.IsNil)
	c.Assert(postings, check.HasLen, 0)

	postings, err = s.idx.Lookup("library")
	c.Assert(err, check.IsNil)
	c.Assert(postings, check.HasLen, 1)
}

// TestFindByURL verifies metadata lookups.
func (s *BaseSuite) TestFindByURL(c *check.C) {
	doc := &index.Document{
		LinkID:  uuid.New(),
		URL:     "https://uni.example.edu/crawl/meta.html",
		Title:   "Metadata",
		Content: "some content",
	}
	c.Assert(s.idx.AddDocument(doc), check.IsNil)

	stored, err := s.idx.FindByURL(doc.URL)
	c.Assert(err, check.IsNil)
	c.Assert(stored.Title, check.Equals, "Metadata")
	c.Assert(stored.LinkID, check.Equals, doc.LinkID)

	_, err = s.idx.FindByURL("https://uni.example.edu/unknown.html")
	c.Assert(err, check.ErrorMatches, ".*not found.*")
}

// TestUpdateScore verifies PageRank score persistence, including the
// placeholder path for unknown URLs.
func (s *BaseSuite) TestUpdateScore(c *check.C) {
	doc := &index.Document{
		LinkID:  uuid.New(),
		URL:     "https://uni.example.edu/crawl/ranked.html",
		Content: "ranked page",
	}
	c.Assert(s.idx.AddDocument(doc), check.IsNil)

	c.Assert(s.idx.UpdateScore(doc.URL, 0.5), check.IsNil)

	stored, err := s.idx.FindByURL(doc.URL)
	c.Assert(err, check.IsNil)
	c.Assert(stored.PageRank, check.Equals, 0.5)

	// Unknown URL creates a placeholder carrying only the score.
	c.Assert(s.idx.UpdateScore("https://uni.example.edu/crawl/ghost.html", 0.25), check.IsNil)

	ghost, err := s.idx.FindByURL("https://uni.example.edu/crawl/ghost.html")
	c.Assert(err, check.IsNil)
	c.Assert(ghost.PageRank, check.Equals, 0.25)
}
