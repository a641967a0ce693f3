package urlutil

import (
	"testing"

	check "gopkg.in/check.v1"
)

// Initialize and register a pointer instance of the urlutilTestSuite to be
// executed by check testing package.
var _ = check.Suite(new(urlutilTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type urlutilTestSuite struct{}

func (s *urlutilTestSuite) TestNormalize(c *check.C) {
	specs := []struct {
		descr string
		in    string
		exp   string
	}{
		{
			descr: "scheme and host are lowercased",
			in:    "HTTP://Example.COM/Index.html",
			exp:   "http://example.com/Index.html",
		},
		{
			descr: "default http port is stripped",
			in:    "http://example.com:80/a",
			exp:   "http://example.com/a",
		},
		{
			descr: "default https port is stripped",
			in:    "https://example.com:443/a",
			exp:   "https://example.com/a",
		},
		{
			descr: "non-default port is retained",
			in:    "http://example.com:8080/a",
			exp:   "http://example.com:8080/a",
		},
		{
			descr: "fragment is dropped",
			in:    "http://example.com/a#section-2",
			exp:   "http://example.com/a",
		},
		{
			descr: "empty path becomes root",
			in:    "http://example.com",
			exp:   "http://example.com/",
		},
		{
			descr: "trailing slash is removed from non-root paths",
			in:    "http://example.com/a/b/",
			exp:   "http://example.com/a/b",
		},
		{
			descr: "dot segments are resolved",
			in:    "http://example.com/a/../b/./c",
			exp:   "http://example.com/b/c",
		},
		{
			descr: "query strings are preserved",
			in:    "http://example.com/search?q=go",
			exp:   "http://example.com/search?q=go",
		},
	}

	for _, spec := range specs {
		c.Logf(spec.descr)

		got, err := Normalize(spec.in)
		c.Assert(err, check.IsNil)
		c.Assert(got, check.Equals, spec.exp)
	}
}

func (s *urlutilTestSuite) TestNormalizeIsIdempotent(c *check.C) {
	inputs := []string{
		"HTTP://Example.COM:80/a/../b/#frag",
		"https://uni.example.edu/crawl/index.html",
		"http://example.com",
		"http://example.com/a/b/?x=1",
	}

	for _, in := range inputs {
		once, err := Normalize(in)
		c.Assert(err, check.IsNil)

		twice, err := Normalize(once)
		c.Assert(err, check.IsNil)
		c.Assert(twice, check.Equals, once)
	}
}

func (s *urlutilTestSuite) TestNormalizeRejectsInvalidURLs(c *check.C) {
	for _, in := range []string{
		"",
		"mailto:someone@example.com",
		"ftp://example.com/file",
		"/relative/only",
		"http://",
	} {
		_, err := Normalize(in)
		c.Assert(err, check.NotNil, check.Commentf("input: %q", in))
	}
}

func (s *urlutilTestSuite) TestScopeFilter(c *check.C) {
	filter := NewScopeFilter("uni.example.edu", "/crawl/")

	c.Assert(filter.InScope("https://uni.example.edu/crawl/index.html"), check.Equals, true)
	c.Assert(filter.InScope("https://uni.example.edu/crawl/sub/page.html"), check.Equals, true)
	c.Assert(filter.InScope("https://uni.example.edu/other/page.html"), check.Equals, false)
	c.Assert(filter.InScope("https://elsewhere.example.com/crawl/index.html"), check.Equals, false)
}

func (s *urlutilTestSuite) TestScopeFromSeed(c *check.C) {
	filter, err := ScopeFromSeed("https://uni.example.edu/crawl/index.html")
	c.Assert(err, check.IsNil)

	c.Assert(filter.Host(), check.Equals, "uni.example.edu")
	c.Assert(filter.InScope("https://uni.example.edu/crawl/page2.html"), check.Equals, true)
	c.Assert(filter.InScope("https://uni.example.edu/admin/login.html"), check.Equals, false)
}

func (s *urlutilTestSuite) TestScopeFilterWithHostOnlyPrefix(c *check.C) {
	filter := NewScopeFilter("example.com", "")

	c.Assert(filter.InScope("http://example.com/anything"), check.Equals, true)
	c.Assert(filter.InScope("http://other.com/anything"), check.Equals, false)
}
