package crawler

import (
	"context"
	"fmt"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	mock_crawler "unisearch/crawler/mocks"
	"unisearch/textindexer/index"
)

var _ = check.Suite(new(textIndexingTestSuite))

type textIndexingTestSuite struct{}

func (s *textIndexingTestSuite) TestSuccessfulIndexing(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	indexer := mock_crawler.NewMockMiniIndexer(ctrl)

	payload := &crawlerPayload{
		LinkID:      uuid.New(),
		URL:         "http://example.edu/",
		Title:       "Example University",
		TextContent: "course catalog",
	}

	indexer.EXPECT().AddDocument(docMatcher{
		linkID:  payload.LinkID,
		url:     payload.URL,
		title:   payload.Title,
		content: payload.TextContent,
	}).Return(nil)

	output, err := newTextIndexer(indexer).Process(context.TODO(), payload)
	c.Assert(err, check.IsNil)
	c.Assert(output, check.NotNil)
}

func (s *textIndexingTestSuite) TestIndexerErrorSurfaces(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	indexer := mock_crawler.NewMockMiniIndexer(ctrl)
	indexer.EXPECT().AddDocument(gomock.Any()).Return(fmt.Errorf("index full"))

	_, err := newTextIndexer(indexer).Process(context.TODO(), &crawlerPayload{
		LinkID: uuid.New(),
		URL:    "http://example.edu/",
	})
	c.Assert(err, check.ErrorMatches, "index full")
}

// docMatcher is a gomock matcher for *index.Document values.
type docMatcher struct {
	linkID  uuid.UUID
	url     string
	title   string
	content string
}

func (m docMatcher) Matches(x interface{}) bool {
	doc, ok := x.(*index.Document)
	if !ok {
		return false
	}

	return m.linkID == doc.LinkID && m.url == doc.URL &&
		m.title == doc.Title && m.content == doc.Content
}

func (m docMatcher) String() string {
	return fmt.Sprintf(
		"has LinkID=%q, URL=%q, Title=%q and Content=%q",
		m.linkID, m.url, m.title, m.content,
	)
}
