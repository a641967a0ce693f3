package crawler

import (
	"context"
	"net/url"
	"sort"

	"github.com/golang/mock/gomock"
	check "gopkg.in/check.v1"

	mock_crawler "unisearch/crawler/mocks"
)

var (
	_ = check.Suite(new(linkExtractionTestSuite))
	_ = check.Suite(new(resolveURLTestSuite))
)

type resolveURLTestSuite struct{}

func (s *resolveURLTestSuite) TestNetworkPathReference(c *check.C) {
	assertResolvedURL(
		c,
		"https://www.example.edu/users",
		"//www.other.edu/users",
		"https://www.other.edu/users",
	)

	assertResolvedURL(
		c,
		"http://www.example.edu/users",
		"//www.other.edu/users",
		"http://www.other.edu/users",
	)
}

func (s *resolveURLTestSuite) TestAbsoluteTarget(c *check.C) {
	assertResolvedURL(
		c,
		"https://www.example.edu/users",
		"https://www.other.edu/catalog",
		"https://www.other.edu/catalog",
	)
}

func (s *resolveURLTestSuite) TestRelativeTarget(c *check.C) {
	assertResolvedURL(
		c,
		"http://example.edu/foo/",
		"bar/baz",
		"http://example.edu/foo/bar/baz",
	)

	assertResolvedURL(
		c,
		"http://example.edu/foo/",
		"/bar/baz",
		"http://example.edu/bar/baz",
	)

	// Without a trailing slash the last path segment is a file and
	// relative targets resolve against its parent.
	assertResolvedURL(
		c,
		"http://example.edu/foo/page.html",
		"./bar/baz",
		"http://example.edu/foo/bar/baz",
	)
}

func assertResolvedURL(c *check.C, base, target, expected string) {
	baseURL, err := url.Parse(base)
	c.Assert(err, check.IsNil)

	var resolved string
	if res := resolveURL(baseURL, target); res != nil {
		resolved = res.String()
	}

	c.Assert(resolved, check.Equals, expected)
}

type linkExtractionTestSuite struct {
	netDetector *mock_crawler.MockPrivateNetworkDetector
}

func (s *linkExtractionTestSuite) SetUpTest(c *check.C) {
	s.netDetector = mock_crawler.NewMockPrivateNetworkDetector(gomock.NewController(c))
}

func (s *linkExtractionTestSuite) TestNonHTTPSchemesSkipped(c *check.C) {
	content := `
<html>
<body>
	<a href="ftp://example.edu/archive">an FTP archive</a>
	<a href="mailto:admissions@example.edu">contact</a>
</body>
</html>
`
	s.assertExtractedLinks(c, "http://test.edu/", content, nil, nil)
}

func (s *linkExtractionTestSuite) TestRelativeLinksResolved(c *check.C) {
	content := `
<html>
<body>
	<a href="./foo.html">link to foo</a>
	<a href="../private/data.html">login required</a>
</body>
</html>
`
	s.assertExtractedLinks(c, "http://test.edu/content/intro.html", content, []string{
		"http://test.edu/content/foo.html",
		"http://test.edu/private/data.html",
	}, nil)
}

func (s *linkExtractionTestSuite) TestBaseTagOverridesPageURL(c *check.C) {
	content := `
<html>
<head><base href="https://test.edu/base/"/></head>
<body>
	<a href="./foo.html">link to foo</a>
</body>
</html>
`
	s.assertExtractedLinks(c, "http://test.edu/content/", content, []string{
		"https://test.edu/base/foo.html",
	}, nil)
}

func (s *linkExtractionTestSuite) TestFragmentsStripped(c *check.C) {
	content := `
<html>
<body>
	<a href="/syllabus.html#week-2">week two</a>
	<a href="/syllabus.html#week-3">week three</a>
</body>
</html>
`
	// Both anchors canonicalize to the same URL and dedup to one link.
	s.assertExtractedLinks(c, "http://test.edu/", content, []string{
		"http://test.edu/syllabus.html",
	}, nil)
}

func (s *linkExtractionTestSuite) TestExcludedExtensionsSkipped(c *check.C) {
	content := `
<html>
<body>
	<a href="/logo.png">logo</a>
	<a href="/styles.css">styles</a>
	<a href="/about.html">about</a>
</body>
</html>
`
	s.assertExtractedLinks(c, "http://test.edu/", content, []string{
		"http://test.edu/about.html",
	}, nil)
}

func (s *linkExtractionTestSuite) TestNoFollowLinksSeparated(c *check.C) {
	content := `
<html>
<body>
	<a href="/courses.html">courses</a>
	<a href="/sponsored.html" rel="nofollow">sponsored</a>
</body>
</html>
`
	s.assertExtractedLinks(c, "http://test.edu/", content,
		[]string{"http://test.edu/courses.html"},
		[]string{"http://test.edu/sponsored.html"},
	)
}

func (s *linkExtractionTestSuite) TestPrivateNetworkLinksSkipped(c *check.C) {
	exp := s.netDetector.EXPECT()
	exp.IsPrivate("example.edu").Return(false, nil)
	exp.IsPrivate("169.254.169.254").Return(true, nil)

	content := `
<html>
<body>
	<a href="http://example.edu/public">public</a>
	<a href="http://169.254.169.254/secrets">private</a>
</body>
</html>
`
	s.assertExtractedLinks(c, "http://test.edu/", content, []string{
		"http://example.edu/public",
	}, nil)
}

func (s *linkExtractionTestSuite) assertExtractedLinks(
	c *check.C, pageURL, content string,
	expLinks, expNoFollow []string,
) {
	payload := &crawlerPayload{URL: pageURL}
	_, err := payload.RawContent.WriteString(content)
	c.Assert(err, check.IsNil)

	output, err := newLinkExtractor(s.netDetector).Process(context.TODO(), payload)
	c.Assert(err, check.IsNil)
	c.Assert(output, check.FitsTypeOf, payload)

	processed := output.(*crawlerPayload)
	sort.Strings(processed.Links)
	sort.Strings(expLinks)
	c.Assert(processed.Links, check.DeepEquals, expLinks)

	sort.Strings(processed.NoFollowLinks)
	sort.Strings(expNoFollow)
	c.Assert(processed.NoFollowLinks, check.DeepEquals, expNoFollow)
}
