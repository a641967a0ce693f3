package crawl

import (
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"unisearch/crawler"
	"unisearch/crawler/privnet"
	"unisearch/linkgraph/graph"
	"unisearch/textindexer/index"
)

// GraphAPI defines the link graph operations the crawl service needs.
type GraphAPI interface {
	// UpsertLink creates a new link or updates an existing one.
	UpsertLink(link *graph.Link) error

	// UpsertEdge creates a new edge or refreshes an existing one.
	UpsertEdge(edge *graph.Edge) error
}

// IndexAPI defines the text index operations the crawl service needs.
type IndexAPI interface {
	// AddDocument adds a crawled document to the text index.
	AddDocument(doc *index.Document) error
}

// Config defines the configuration for the crawl service.
type Config struct {
	// Starting point of the crawl. Required.
	SeedURL string

	// Crawl scope as "host" or "host/path/prefix". If not specified,
	// the scope is derived from the seed URL's host and directory.
	DomainScope string

	// API for the links and edges data store.
	GraphAPI GraphAPI

	// API for the document index store.
	IndexAPI IndexAPI

	// An API for performing HTTP requests. If not specified, a getter
	// with the configured FetchTimeout and a bounded redirect policy
	// will be used instead.
	URLGetter crawler.URLGetter

	// An API for detecting private network addresses. If not specified,
	// a default implementation that handles the private network ranges
	// defined in RFC1918 will be used instead.
	PrivateNetworkDetector crawler.PrivateNetworkDetector

	// Per-request timeout for the default URL getter. If not specified,
	// a default value of 10 seconds will be used instead.
	FetchTimeout time.Duration

	// Upper bound on fetch rate. Zero disables rate limiting.
	RequestsPerSecond float64

	// The number of concurrent workers used for retrieving pages.
	NumOfFetchWorkers int

	// Crawl budget: the run stops after this many URLs have been handed
	// out for fetching. Zero means unbounded.
	MaxPages int

	// Crawl budget: the run stops once this much time has elapsed. Zero
	// means unbounded.
	MaxCrawlTime time.Duration

	// A clock instance for time-related events. If not specified, the
	// wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined, an output-discarding logger
	// will be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.SeedURL == "" {
		err = multierror.Append(err, fmt.Errorf("seed URL not provided"))
	}

	if config.GraphAPI == nil {
		err = multierror.Append(err, fmt.Errorf("graph API not provided"))
	}

	if config.IndexAPI == nil {
		err = multierror.Append(err, fmt.Errorf("index API not provided"))
	}

	if config.FetchTimeout == 0 {
		config.FetchTimeout = 10 * time.Second
	}

	if config.URLGetter == nil {
		config.URLGetter = crawler.NewURLGetter(config.FetchTimeout)
	}

	if config.RequestsPerSecond > 0 {
		config.URLGetter = crawler.NewRateLimitedURLGetter(
			config.URLGetter, config.RequestsPerSecond, 1,
		)
	}

	if config.PrivateNetworkDetector == nil {
		var detectorErr error
		config.PrivateNetworkDetector, detectorErr = privnet.NewDetector()
		if detectorErr != nil {
			err = multierror.Append(err, detectorErr)
		}
	}

	if config.NumOfFetchWorkers <= 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for fetch workers, must be > 0",
		))
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
