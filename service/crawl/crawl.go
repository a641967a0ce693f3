/*
	crawl package implements the crawl phase of a search engine run: a
	one-shot orchestrator that seeds the frontier, drives the crawl
	pipeline in breadth-first rounds and stops once the frontier drains
	or a configured budget (page count or elapsed time) is exhausted.
*/

package crawl

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"unisearch/crawler"
	"unisearch/crawler/frontier"
	"unisearch/linkgraph/graph"
	"unisearch/urlutil"
)

// Upper bound on the number of URLs handed to one pipeline pass.
const maxBatchSize = 64

// Service crawls a bounded site section starting from a seed URL.
type Service struct {
	config   Config
	crawler  *crawler.Crawler
	frontier *frontier.Frontier

	pagesCrawled int
}

// New creates and returns a fully configured crawl service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("crawl service: config validation failed: %w", err)
	}

	scope, err := resolveScope(config.SeedURL, config.DomainScope)
	if err != nil {
		return nil, fmt.Errorf("crawl service: %w", err)
	}

	fr := frontier.New(scope)

	return &Service{
		config:   config,
		frontier: fr,
		crawler: crawler.New(crawler.Config{
			URLGetter:              config.URLGetter,
			PrivateNetworkDetector: config.PrivateNetworkDetector,
			Robots:                 crawler.NewRobotsCache(config.URLGetter),
			Graph:                  config.GraphAPI,
			Indexer:                config.IndexAPI,
			Frontier:               fr,
			NumOfFetchWorkers:      config.NumOfFetchWorkers,
			Logger:                 config.Logger,
		}),
	}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "crawl" }

// PagesCrawled returns the number of pages fully processed so far.
func (svc *Service) PagesCrawled() int { return svc.pagesCrawled }

// Run executes the crawl and blocks until the frontier drains, a budget
// is exhausted, the context gets cancelled or an error occurs.
func (svc *Service) Run(ctx context.Context) error {
	seed, err := urlutil.Normalize(svc.config.SeedURL)
	if err != nil {
		return err
	}

	if !svc.frontier.Enqueue(seed) {
		return fmt.Errorf("seed URL %q is outside the crawl scope", seed)
	}

	svc.config.Logger.WithFields(logrus.Fields{
		"seed":      seed,
		"max_pages": svc.config.MaxPages,
	}).Info("starting crawl")
	defer svc.config.Logger.Info("crawl finished")

	startedAt := svc.config.Clock.Now()

	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if svc.config.MaxCrawlTime > 0 &&
			svc.config.Clock.Now().Sub(startedAt) >= svc.config.MaxCrawlTime {
			svc.config.Logger.Warn("time budget exhausted, stopping crawl")

			return nil
		}

		batchSize := maxBatchSize
		if svc.config.MaxPages > 0 {
			remaining := svc.config.MaxPages - svc.frontier.DequeuedCount()
			if remaining <= 0 {
				svc.config.Logger.Warn("page budget exhausted, stopping crawl")

				return nil
			}
			if remaining < batchSize {
				batchSize = remaining
			}
		}

		batch := svc.frontier.DequeueBatch(batchSize)
		if len(batch) == 0 {
			return nil
		}

		links, err := svc.resolveLinks(batch)
		if err != nil {
			return err
		}

		tick := svc.config.Clock.Now()
		count, err := svc.crawler.Crawl(ctx, links)
		if err != nil {
			return err
		}
		svc.pagesCrawled += count

		svc.config.Logger.WithFields(logrus.Fields{
			"round":          round,
			"batch_size":     len(batch),
			"pages_crawled":  count,
			"frontier_len":   svc.frontier.Len(),
			"round_duration": svc.config.Clock.Now().Sub(tick).String(),
		}).Info("crawl round complete")
	}
}

// resolveLinks upserts the batch URLs so each carries its graph-assigned
// link ID through the pipeline.
func (svc *Service) resolveLinks(urls []string) ([]graph.Link, error) {
	links := make([]graph.Link, len(urls))
	for i, url := range urls {
		link := &graph.Link{URL: url}
		if err := svc.config.GraphAPI.UpsertLink(link); err != nil {
			return nil, err
		}

		links[i] = *link
	}

	return links, nil
}

func resolveScope(seedURL, domainScope string) (urlutil.ScopeFilter, error) {
	if domainScope == "" {
		return urlutil.ScopeFromSeed(seedURL)
	}

	host, prefix, found := strings.Cut(domainScope, "/")
	if !found {
		return urlutil.NewScopeFilter(host, ""), nil
	}

	return urlutil.NewScopeFilter(host, "/"+prefix), nil
}
