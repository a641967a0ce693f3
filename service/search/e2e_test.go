package search

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"

	check "gopkg.in/check.v1"

	memgraph "unisearch/linkgraph/store/memory"
	"unisearch/service/crawl"
	"unisearch/service/rank"
	"unisearch/textindexer/index"
	memindex "unisearch/textindexer/store/memory"
	"unisearch/urlutil"
)

var _ = check.Suite(new(fullRunTestSuite))

// fullRunTestSuite drives crawl, rank and search back to back against a
// local test site, the way the services run in production.
type fullRunTestSuite struct{}

func (s *fullRunTestSuite) TestCrawlRankSearch(c *check.C) {
	pageBody := `<html><head><title>%s</title></head>` +
		`<body>physics alpha beta gamma delta epsilon zeta eta theta iota ` +
		`<a href="%s">next</a></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch r.URL.Path {
		case "/p1":
			fmt.Fprintf(w, pageBody, "Page One", "/p2")
		case "/p2":
			fmt.Fprintf(w, pageBody, "Page Two", "/p3")
		case "/p3":
			fmt.Fprintf(w, pageBody, "Page Three", "/p1")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	linkGraph := memgraph.NewInMemoryGraph()
	idx := memindex.NewInMemoryIndex(index.Tokenizer{})

	crawlSvc, err := crawl.New(crawl.Config{
		SeedURL:                srv.URL + "/p1",
		GraphAPI:               linkGraph,
		IndexAPI:               idx,
		PrivateNetworkDetector: allowAllDetector{},
		NumOfFetchWorkers:      2,
	})
	c.Assert(err, check.IsNil)
	c.Assert(crawlSvc.Run(context.TODO()), check.IsNil)
	c.Assert(crawlSvc.PagesCrawled(), check.Equals, 3)

	rankSvc, err := rank.New(rank.Config{
		GraphAPI: linkGraph,
		IndexAPI: idx,
	})
	c.Assert(err, check.IsNil)
	c.Assert(rankSvc.Run(context.TODO()), check.IsNil)

	searchSvc, err := New(Config{
		IndexAPI:    idx,
		ScoreSource: rankSvc,
	})
	c.Assert(err, check.IsNil)

	// "physics" occurs on every page, so relevance cannot separate the
	// results and the symmetric ring leaves authority equal too. The
	// ordering falls back to the URLs.
	results, err := searchSvc.Search("physics")
	c.Assert(err, check.IsNil)
	c.Assert(results, check.HasLen, 3)

	var wantURLs []string
	for _, path := range []string{"/p1", "/p2", "/p3"} {
		url, err := urlutil.Normalize(srv.URL + path)
		c.Assert(err, check.IsNil)
		wantURLs = append(wantURLs, url)
	}

	for i, res := range results {
		c.Assert(res.URL, check.Equals, wantURLs[i])
		c.Assert(math.Abs(res.Score-results[0].Score) < 1e-6, check.Equals, true)
	}
	c.Assert(results[0].Title, check.Equals, "Page One")

	// A term on none of the pages yields nothing.
	results, err = searchSvc.Search("thermodynamics")
	c.Assert(err, check.IsNil)
	c.Assert(results, check.HasLen, 0)
}

// The test server listens on a loopback address that the real detector
// would refuse to fetch.
type allowAllDetector struct{}

func (allowAllDetector) IsPrivate(_ string) (bool, error) {
	return false, nil
}
