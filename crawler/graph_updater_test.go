package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	mock_crawler "unisearch/crawler/mocks"
	"unisearch/linkgraph/graph"
)

var _ = check.Suite(new(graphUpdateTestSuite))

type graphUpdateTestSuite struct {
	graph *mock_crawler.MockMiniGraph
}

func (s *graphUpdateTestSuite) TestSuccessfulGraphUpdate(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	s.graph = mock_crawler.NewMockMiniGraph(ctrl)

	payload := &crawlerPayload{
		LinkID: uuid.New(),
		URL:    "http://example.edu/",
		NoFollowLinks: []string{
			"http://example.edu/sponsored",
		},
		Links: []string{
			"http://example.edu/courses",
			"http://example.edu/research",
		},
	}

	expect := s.graph.EXPECT()

	// The crawled page itself is upserted with a fresh retrieval
	// timestamp.
	expect.UpsertLink(linkMatcher{
		id:        payload.LinkID,
		url:       payload.URL,
		notBefore: time.Now(),
	}).Return(nil)

	// nofollow targets become links without edges.
	id0, id1, id2 := uuid.New(), uuid.New(), uuid.New()
	expect.UpsertLink(linkMatcher{
		url: "http://example.edu/sponsored",
	}).DoAndReturn(setLinkID(id0))

	expect.UpsertLink(linkMatcher{
		url: "http://example.edu/courses",
	}).DoAndReturn(setLinkID(id1))
	expect.UpsertLink(linkMatcher{
		url: "http://example.edu/research",
	}).DoAndReturn(setLinkID(id2))

	expect.UpsertEdge(edgeMatcher{src: payload.LinkID, dest: id1}).Return(nil)
	expect.UpsertEdge(edgeMatcher{src: payload.LinkID, dest: id2}).Return(nil)

	output, err := newGraphUpdater(s.graph).Process(context.TODO(), payload)
	c.Assert(err, check.IsNil)
	c.Assert(output, check.NotNil)
}

func (s *graphUpdateTestSuite) TestUpsertErrorSurfaces(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	s.graph = mock_crawler.NewMockMiniGraph(ctrl)
	s.graph.EXPECT().UpsertLink(gomock.Any()).Return(fmt.Errorf("store offline"))

	payload := &crawlerPayload{
		LinkID: uuid.New(),
		URL:    "http://example.edu/",
	}

	_, err := newGraphUpdater(s.graph).Process(context.TODO(), payload)
	c.Assert(err, check.ErrorMatches, "store offline")
}

func setLinkID(id uuid.UUID) func(*graph.Link) error {
	return func(l *graph.Link) error {
		l.ID = id

		return nil
	}
}

// linkMatcher is a gomock matcher for *graph.Link values.
type linkMatcher struct {
	id        uuid.UUID
	url       string
	notBefore time.Time
}

func (m linkMatcher) Matches(x interface{}) bool {
	link, ok := x.(*graph.Link)
	if !ok {
		return false
	}

	return m.id == link.ID && m.url == link.URL &&
		!link.RetrievedAt.Before(m.notBefore)
}

func (m linkMatcher) String() string {
	return fmt.Sprintf(
		"has ID=%q, URL=%q and RetrievedAt not before %v",
		m.id, m.url, m.notBefore,
	)
}

// edgeMatcher is a gomock matcher for *graph.Edge values.
type edgeMatcher struct {
	src  uuid.UUID
	dest uuid.UUID
}

func (m edgeMatcher) Matches(x interface{}) bool {
	edge, ok := x.(*graph.Edge)
	if !ok {
		return false
	}

	return m.src == edge.Src && m.dest == edge.Dest
}

func (m edgeMatcher) String() string {
	return fmt.Sprintf("has src=%q and dest=%q", m.src, m.dest)
}
