package search

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"unisearch/textindexer/index"
	memindex "unisearch/textindexer/store/memory"
)

var _ = check.Suite(new(searchServiceTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type searchServiceTestSuite struct {
	idx *memindex.InMemoryIndex
}

func (s *searchServiceTestSuite) SetUpTest(c *check.C) {
	s.idx = memindex.NewInMemoryIndex(index.Tokenizer{})
}

func (s *searchServiceTestSuite) TestInvalidConfig(c *check.C) {
	_, err := New(Config{})
	c.Assert(err, check.ErrorMatches, "(?s).*index API not provided.*")

	_, err = New(Config{IndexAPI: s.idx, WeightTFIDF: -1})
	c.Assert(err, check.NotNil)
}

func (s *searchServiceTestSuite) TestEmptyQueryYieldsNoResults(c *check.C) {
	s.addDoc(c, "http://www.example.edu/a", "A", "gravity lectures")

	svc := s.newService(c, nil)

	results, err := svc.Search("  \t ")
	c.Assert(err, check.IsNil)
	c.Assert(results, check.HasLen, 0)
}

func (s *searchServiceTestSuite) TestUnknownTermYieldsNoResults(c *check.C) {
	s.addDoc(c, "http://www.example.edu/a", "A", "gravity lectures")

	svc := s.newService(c, nil)

	results, err := svc.Search("thermodynamics")
	c.Assert(err, check.IsNil)
	c.Assert(results, check.HasLen, 0)
}

func (s *searchServiceTestSuite) TestResultsOrderedByScore(c *check.C) {
	s.addDoc(c, "http://www.example.edu/dense", "Dense",
		"gravity gravity gravity waves",
	)
	s.addDoc(c, "http://www.example.edu/sparse", "Sparse",
		"gravity lectures from the physics department archive series",
	)
	s.addDoc(c, "http://www.example.edu/other", "Other",
		"campus parking regulations",
	)

	svc := s.newService(c, staticScores{
		"http://www.example.edu/dense":  0.5,
		"http://www.example.edu/sparse": 0.5,
	})

	results, err := svc.Search("gravity")
	c.Assert(err, check.IsNil)
	c.Assert(results, check.HasLen, 2)
	c.Assert(results[0].URL, check.Equals, "http://www.example.edu/dense")
	c.Assert(results[0].Title, check.Equals, "Dense")
	c.Assert(results[1].URL, check.Equals, "http://www.example.edu/sparse")
	c.Assert(results[0].Score > results[1].Score, check.Equals, true)
}

func (s *searchServiceTestSuite) TestMissingTitleFallsBackToURL(c *check.C) {
	s.addDoc(c, "http://www.example.edu/bare", "", "gravity notes")

	svc := s.newService(c, nil)

	results, err := svc.Search("gravity")
	c.Assert(err, check.IsNil)
	c.Assert(results, check.HasLen, 1)
	c.Assert(results[0].Title, check.Equals, "http://www.example.edu/bare")
}

func (s *searchServiceTestSuite) TestQueryLoop(c *check.C) {
	s.addDoc(c, "http://www.example.edu/a", "Gravity Intro", "gravity lectures")

	var out bytes.Buffer
	svc, err := New(Config{
		IndexAPI: s.idx,
		Input:    strings.NewReader("gravity\nthermodynamics\n"),
		Output:   &out,
	})
	c.Assert(err, check.IsNil)

	err = svc.Run(context.TODO())
	c.Assert(err, check.IsNil)

	c.Assert(strings.Count(out.String(), "search> "), check.Equals, 3)
	c.Assert(strings.Contains(out.String(), "Gravity Intro"), check.Equals, true)
	c.Assert(strings.Contains(out.String(), "http://www.example.edu/a"), check.Equals, true)
	c.Assert(strings.Contains(out.String(), "no results"), check.Equals, true)
}

func (s *searchServiceTestSuite) TestQueryLoopStopsOnCancelledContext(c *check.C) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc, err := New(Config{
		IndexAPI: s.idx,
		Input:    strings.NewReader("gravity\n"),
		Output:   new(bytes.Buffer),
	})
	c.Assert(err, check.IsNil)

	err = svc.Run(ctx)
	c.Assert(err, check.Equals, context.Canceled)
}

func (s *searchServiceTestSuite) newService(c *check.C, scores ScoreSource) *Service {
	svc, err := New(Config{
		IndexAPI:    s.idx,
		ScoreSource: scores,
		Input:       strings.NewReader(""),
		Output:      new(bytes.Buffer),
	})
	c.Assert(err, check.IsNil)

	return svc
}

func (s *searchServiceTestSuite) addDoc(c *check.C, url, title, content string) {
	err := s.idx.AddDocument(&index.Document{
		LinkID:  uuid.New(),
		URL:     url,
		Title:   title,
		Content: content,
	})
	c.Assert(err, check.IsNil)
}

type staticScores map[string]float64

func (s staticScores) Scores() map[string]float64 { return s }
