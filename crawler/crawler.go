/*
	crawler package implements the fetch-and-process half of the search
	engine as a multi-stage pipeline. One call to Crawl processes one
	frontier batch:
		1. Retrieve the page content behind each link (fixed worker pool).
		2. Extract and canonicalize the links embedded in the content.
		3. Extract the page title and visible text.
		4. In parallel: record the page and its edges in the link graph,
		   and add the page text to the index.
	Links discovered along the way are offered back to the frontier by the
	pipeline sink, so repeated Crawl calls walk the site breadth-first
	until the frontier drains.
*/

package crawler

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"unisearch/linkgraph/graph"
	"unisearch/pipeline"
)

// Config encapsulates the dependencies of the crawl pipeline.
type Config struct {
	URLGetter              URLGetter
	PrivateNetworkDetector PrivateNetworkDetector

	// Robots may be nil, in which case every URL is fetchable.
	Robots RobotsPolicy

	Graph    MiniGraph
	Indexer  MiniIndexer
	Frontier Enqueuer

	NumOfFetchWorkers int

	// Logger for fetch failures. If not specified, log output is
	// discarded.
	Logger *logrus.Entry
}

// Crawler fetches, parses, stores and indexes web pages.
type Crawler struct {
	cfg Config
	p   *pipeline.Pipeline
}

// New returns a fully wired Crawler instance.
func New(cfg Config) *Crawler {
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return &Crawler{
		cfg: cfg,
		p: pipeline.New(
			pipeline.NewFixedWorkerPool(
				newLinkFetcher(
					cfg.URLGetter,
					cfg.PrivateNetworkDetector,
					cfg.Robots,
					cfg.Logger,
				),
				cfg.NumOfFetchWorkers,
			),
			pipeline.NewFIFO(newLinkExtractor(cfg.PrivateNetworkDetector)),
			pipeline.NewFIFO(newTextExtractor()),
			pipeline.NewBroadcastWorkerPool(
				newGraphUpdater(cfg.Graph),
				newTextIndexer(cfg.Indexer),
			),
		),
	}
}

// Crawl sends one batch of links through the pipeline and blocks until
// the batch is fully processed. It returns the number of pages that made
// it through every stage.
func (c *Crawler) Crawl(ctx context.Context, links []graph.Link) (int, error) {
	sink := &frontierFeedingSink{frontier: c.cfg.Frontier}

	err := c.p.Execute(ctx, &linkSource{links: links}, sink)

	return sink.getCount(), err
}
