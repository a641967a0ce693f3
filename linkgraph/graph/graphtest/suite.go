/*
	graphtest package provides a re-usable set of behavior tests that every
	graph.Graph implementation is expected to pass. Store-specific test
	suites embed BaseSuite and install their implementation with SetGraph.
*/

package graphtest

import (
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"unisearch/linkgraph/graph"
)

// BaseSuite defines a set of re-usable graph store behavior tests.
type BaseSuite struct {
	g graph.Graph
}

// SetGraph configures the test suite to run all tests against an instance
// of a specific graph.Graph implementation.
func (s *BaseSuite) SetGraph(g graph.Graph) {
	s.g = g
}

// TestUpsertLink verifies link upsert behavior: inserts assign IDs, a second
// upsert with the same URL becomes an update and never loses the most
// recent retrieval timestamp.
func (s *BaseSuite) TestUpsertLink(c *check.C) {
	original := &graph.Link{
		URL:         "https://uni.example.edu/crawl/index.html",
		RetrievedAt: time.Now().Add(-10 * time.Hour),
	}

	err := s.g.UpsertLink(original)
	c.Assert(err, check.IsNil)
	c.Assert(original.ID, check.Not(check.Equals), uuid.Nil)

	// Update the link with a more recent retrieval time. The store must
	// detect the duplicate URL and reuse the assigned ID.
	accessedAt := time.Now().Truncate(time.Second).UTC()
	updated := &graph.Link{
		URL:         original.URL,
		RetrievedAt: accessedAt,
	}
	err = s.g.UpsertLink(updated)
	c.Assert(err, check.IsNil)
	c.Assert(updated.ID, check.Equals, original.ID)

	stored, err := s.g.FindLink(original.ID)
	c.Assert(err, check.IsNil)
	c.Assert(stored.RetrievedAt.UTC(), check.Equals, accessedAt)

	// An upsert carrying an older retrieval time must not roll the
	// stored timestamp back.
	stale := &graph.Link{
		URL:         original.URL,
		RetrievedAt: accessedAt.Add(-time.Hour),
	}
	err = s.g.UpsertLink(stale)
	c.Assert(err, check.IsNil)

	stored, err = s.g.FindLink(original.ID)
	c.Assert(err, check.IsNil)
	c.Assert(stored.RetrievedAt.UTC(), check.Equals, accessedAt)
}

// TestFindLink verifies lookups by ID and by canonical URL.
func (s *BaseSuite) TestFindLink(c *check.C) {
	link := &graph.Link{URL: "https://uni.example.edu/crawl/a.html"}
	c.Assert(s.g.UpsertLink(link), check.IsNil)

	byID, err := s.g.FindLink(link.ID)
	c.Assert(err, check.IsNil)
	c.Assert(byID.URL, check.Equals, link.URL)

	byURL, err := s.g.FindLinkByURL(link.URL)
	c.Assert(err, check.IsNil)
	c.Assert(byURL.ID, check.Equals, link.ID)

	_, err = s.g.FindLink(uuid.New())
	c.Assert(err, check.ErrorMatches, ".*not found.*")

	_, err = s.g.FindLinkByURL("https://uni.example.edu/unknown.html")
	c.Assert(err, check.ErrorMatches, ".*not found.*")
}

// TestLinkIteration verifies that every upserted link is visited exactly
// once.
func (s *BaseSuite) TestLinkIteration(c *check.C) {
	urls := []string{
		"https://uni.example.edu/crawl/p1.html",
		"https://uni.example.edu/crawl/p2.html",
		"https://uni.example.edu/crawl/p3.html",
	}
	for _, u := range urls {
		c.Assert(s.g.UpsertLink(&graph.Link{URL: u}), check.IsNil)
	}

	seen := make(map[string]int)
	it, err := s.g.Links()
	c.Assert(err, check.IsNil)
	for it.Next() {
		seen[it.Link().URL]++
	}
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	c.Assert(seen, check.HasLen, len(urls))
	for _, u := range urls {
		c.Assert(seen[u], check.Equals, 1, check.Commentf("url: %s", u))
	}
}

// TestUpsertEdge verifies edge insertion, per-(src, dest) deduplication and
// the unknown endpoint error.
func (s *BaseSuite) TestUpsertEdge(c *check.C) {
	src := &graph.Link{URL: "https://uni.example.edu/crawl/src.html"}
	dest := &graph.Link{URL: "https://uni.example.edu/crawl/dest.html"}
	c.Assert(s.g.UpsertLink(src), check.IsNil)
	c.Assert(s.g.UpsertLink(dest), check.IsNil)

	edge := &graph.Edge{Src: src.ID, Dest: dest.ID}
	c.Assert(s.g.UpsertEdge(edge), check.IsNil)
	c.Assert(edge.ID, check.Not(check.Equals), uuid.Nil)
	c.Assert(edge.UpdatedAt.IsZero(), check.Equals, false)

	// Upserting the same ordered pair refreshes the existing edge
	// instead of creating a duplicate.
	dup := &graph.Edge{Src: src.ID, Dest: dest.ID}
	c.Assert(s.g.UpsertEdge(dup), check.IsNil)
	c.Assert(dup.ID, check.Equals, edge.ID)

	c.Assert(s.countEdges(c), check.Equals, 1)

	// Edges with unknown endpoints are rejected.
	bogus := &graph.Edge{Src: src.ID, Dest: uuid.New()}
	err := s.g.UpsertEdge(bogus)
	c.Assert(err, check.ErrorMatches, ".*unknown source and / or destination for edge.*")
}

// TestSelfLoopEdge verifies that a page linking to itself is stored as
// valid graph data.
func (s *BaseSuite) TestSelfLoopEdge(c *check.C) {
	link := &graph.Link{URL: "https://uni.example.edu/crawl/self.html"}
	c.Assert(s.g.UpsertLink(link), check.IsNil)

	edge := &graph.Edge{Src: link.ID, Dest: link.ID}
	c.Assert(s.g.UpsertEdge(edge), check.IsNil)
	c.Assert(s.countEdges(c), check.Equals, 1)
}

// TestEdgeIteration verifies that every distinct edge is visited exactly
// once.
func (s *BaseSuite) TestEdgeIteration(c *check.C) {
	links := make([]*graph.Link, 3)
	for i, u := range []string{
		"https://uni.example.edu/crawl/e1.html",
		"https://uni.example.edu/crawl/e2.html",
		"https://uni.example.edu/crawl/e3.html",
	} {
		links[i] = &graph.Link{URL: u}
		c.Assert(s.g.UpsertLink(links[i]), check.IsNil)
	}

	// Ring: e1 -> e2 -> e3 -> e1.
	for i := range links {
		edge := &graph.Edge{
			Src:  links[i].ID,
			Dest: links[(i+1)%len(links)].ID,
		}
		c.Assert(s.g.UpsertEdge(edge), check.IsNil)
	}

	seen := make(map[uuid.UUID]int)
	it, err := s.g.Edges()
	c.Assert(err, check.IsNil)
	for it.Next() {
		seen[it.Edge().ID]++
	}
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	c.Assert(seen, check.HasLen, 3)
	for id, count := range seen {
		c.Assert(count, check.Equals, 1, check.Commentf("edge: %s", id))
	}
}

func (s *BaseSuite) countEdges(c *check.C) int {
	it, err := s.g.Edges()
	c.Assert(err, check.IsNil)

	var count int
	for it.Next() {
		count++
	}
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return count
}
