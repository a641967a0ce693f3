package crawler

import (
	"context"

	"github.com/golang/mock/gomock"
	check "gopkg.in/check.v1"

	mock_crawler "unisearch/crawler/mocks"
)

var _ = check.Suite(new(sinkTestSuite))

type sinkTestSuite struct{}

func (s *sinkTestSuite) TestDiscoveredLinksFeedFrontier(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	frontier := mock_crawler.NewMockEnqueuer(ctrl)
	frontier.EXPECT().Enqueue("http://example.edu/a").Return(true)
	frontier.EXPECT().Enqueue("http://example.edu/b").Return(false)

	sink := &frontierFeedingSink{frontier: frontier}

	err := sink.Consume(context.TODO(), &crawlerPayload{
		URL:   "http://example.edu/",
		Links: []string{"http://example.edu/a", "http://example.edu/b"},
	})
	c.Assert(err, check.IsNil)
}

func (s *sinkTestSuite) TestCountHalvesBroadcastOutput(c *check.C) {
	sink := new(frontierFeedingSink)

	// The broadcast stage emits one payload per branch for every
	// crawled page.
	for i := 0; i < 6; i++ {
		c.Assert(sink.Consume(context.TODO(), new(crawlerPayload)), check.IsNil)
	}

	c.Assert(sink.getCount(), check.Equals, 3)
}
