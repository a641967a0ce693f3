package crawler

import (
	"strings"

	"github.com/golang/mock/gomock"
	check "gopkg.in/check.v1"

	mock_crawler "unisearch/crawler/mocks"
)

var _ = check.Suite(new(robotsTestSuite))

type robotsTestSuite struct{}

func (s *robotsTestSuite) TestParseRules(c *check.C) {
	content := `
# site robots
User-agent: googlebot
Disallow: /only-for-google/

User-agent: *
Disallow: /admin/
Disallow: /cgi-bin/  # legacy
Disallow:

User-agent: bingbot
Disallow: /only-for-bing/
`
	prefixes := parseRobotsRules(strings.NewReader(content))
	c.Assert(prefixes, check.DeepEquals, []string{"/admin/", "/cgi-bin/"})
}

func (s *robotsTestSuite) TestAllowed(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	getter := mock_crawler.NewMockURLGetter(ctrl)

	// One robots.txt fetch per host regardless of how many URLs are
	// checked.
	getter.EXPECT().Get("http://example.edu/robots.txt").Return(makeResponse(
		200, "text/plain", "User-agent: *\nDisallow: /private/\n",
	), nil)

	cache := NewRobotsCache(getter)
	c.Assert(cache.Allowed("http://example.edu/courses"), check.Equals, true)
	c.Assert(cache.Allowed("http://example.edu/private/grades"), check.Equals, false)
	c.Assert(cache.Allowed("http://example.edu/"), check.Equals, true)
}

func (s *robotsTestSuite) TestMissingRobotsAllowsAll(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	getter := mock_crawler.NewMockURLGetter(ctrl)
	getter.EXPECT().Get("http://example.edu/robots.txt").Return(makeResponse(
		404, "text/html", "not found",
	), nil)

	cache := NewRobotsCache(getter)
	c.Assert(cache.Allowed("http://example.edu/anything"), check.Equals, true)
}
