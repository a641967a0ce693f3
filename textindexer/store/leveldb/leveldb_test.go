package leveldb

import (
	"testing"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"unisearch/textindexer/index"
	"unisearch/textindexer/index/indextest"
)

// Initialize and register an instance of the levelDBIndexTestSuite to be
// executed by check testing package.
var _ = check.Suite(new(levelDBIndexTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// levelDBIndexTestSuite embeds and runs the BaseSuite test methods against
// a throwaway on-disk database.
type levelDBIndexTestSuite struct {
	idx *LevelDBIndex
	indextest.BaseSuite
}

// SetUpTest opens a fresh database under a per-test temp dir.
func (s *levelDBIndexTestSuite) SetUpTest(c *check.C) {
	idx, err := NewLevelDBIndex(c.MkDir(), index.Tokenizer{})
	c.Assert(err, check.IsNil)

	s.idx = idx
	s.SetIndexer(idx)
}

func (s *levelDBIndexTestSuite) TearDownTest(c *check.C) {
	if s.idx != nil {
		c.Assert(s.idx.Close(), check.IsNil)
	}
}

// TestReopenedIndexServesPersistedPostings verifies that postings and
// scores survive a close/reopen cycle.
func (s *levelDBIndexTestSuite) TestReopenedIndexServesPersistedPostings(c *check.C) {
	dir := c.MkDir()

	idx, err := NewLevelDBIndex(dir, index.Tokenizer{})
	c.Assert(err, check.IsNil)

	url := "https://uni.example.edu/crawl/persisted.html"
	c.Assert(idx.AddDocument(&index.Document{
		LinkID:  uuid.New(),
		URL:     url,
		Title:   "Persisted",
		Content: "durable postings here",
	}), check.IsNil)
	c.Assert(idx.UpdateScore(url, 0.4), check.IsNil)
	c.Assert(idx.Close(), check.IsNil)

	reopened, err := NewLevelDBIndex(dir, index.Tokenizer{})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(reopened.Close(), check.IsNil) }()

	postings, err := reopened.Lookup("durable")
	c.Assert(err, check.IsNil)
	c.Assert(postings, check.HasLen, 1)
	c.Assert(postings[0].Frequency, check.Equals, 1)
	c.Assert(postings[0].DocLength, check.Equals, 3)

	doc, err := reopened.FindByURL(url)
	c.Assert(err, check.IsNil)
	c.Assert(doc.PageRank, check.Equals, 0.4)
	c.Assert(reopened.DocumentCount(), check.Equals, 1)
}
