/*
	search package implements the query-serving phase: it tokenizes query
	strings with the same tokenizer the index uses, delegates scoring to
	the ranker and resolves result titles from the index. Searching is
	read-only against the completed index and score map, so concurrent
	queries need no locking.
*/

package search

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"unisearch/ranker"
	"unisearch/textindexer/index"
)

// IndexAPI defines the text index operations the search service needs.
type IndexAPI interface {
	// Lookup returns the postings for a normalized term.
	Lookup(term string) ([]index.Posting, error)

	// DocumentCount returns the number of indexed documents.
	DocumentCount() int

	// FindByURL looks up a document's metadata by its canonical URL.
	FindByURL(url string) (*index.Document, error)
}

// ScoreSource provides the PageRank scores computed by the rank phase.
type ScoreSource interface {
	Scores() map[string]float64
}

// Result is a single entry of a search response.
type Result struct {
	URL   string
	Title string
	Score float64
}

// Config defines the configuration for the search service.
type Config struct {
	IndexAPI IndexAPI

	// Source of PageRank scores. If not specified, ranking falls back
	// to pure TF-IDF relevance.
	ScoreSource ScoreSource

	// Ranker weights with the ranker's defaults when zero.
	WeightTFIDF    float64
	WeightPageRank float64

	// Tokenizer used on query strings. Must match the tokenizer the
	// index was built with.
	Tokenizer index.Tokenizer

	// Input/Output streams for the interactive query loop. If not
	// specified, stdin and stdout will be used instead.
	Input  io.Reader
	Output io.Writer

	// The logger to use. If not defined, an output-discarding logger
	// will be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.IndexAPI == nil {
		err = multierror.Append(err, fmt.Errorf("index API not provided"))
	}

	if config.Input == nil {
		config.Input = os.Stdin
	}

	if config.Output == nil {
		config.Output = os.Stdout
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Service answers queries against a completed crawl's index and scores.
type Service struct {
	config Config
	ranker *ranker.Ranker
}

// New creates and returns a fully configured search service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("search service: config validation failed: %w", err)
	}

	r, err := ranker.NewRanker(ranker.Config{
		WeightTFIDF:    config.WeightTFIDF,
		WeightPageRank: config.WeightPageRank,
	})
	if err != nil {
		return nil, fmt.Errorf("search service: %w", err)
	}

	return &Service{config: config, ranker: r}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "search" }

// Search tokenizes the query string and returns the matching documents
// ordered by combined relevance and authority. A query with no matches
// returns an empty result list.
func (svc *Service) Search(query string) ([]Result, error) {
	terms := svc.config.Tokenizer.Tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	var scores map[string]float64
	if svc.config.ScoreSource != nil {
		scores = svc.config.ScoreSource.Scores()
	}

	ranked, err := svc.ranker.Rank(terms, svc.config.IndexAPI, scores)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]Result, len(ranked))
	for i, res := range ranked {
		results[i] = Result{
			URL:   res.URL,
			Title: svc.resolveTitle(res.URL),
			Score: res.Score,
		}
	}

	return results, nil
}

// resolveTitle returns the indexed page title, falling back to the URL
// for titleless pages.
func (svc *Service) resolveTitle(url string) string {
	doc, err := svc.config.IndexAPI.FindByURL(url)
	if err != nil || doc.Title == "" {
		return url
	}

	return doc.Title
}

// Run serves queries interactively, one per input line, until the input
// stream ends or the context gets cancelled.
func (svc *Service) Run(ctx context.Context) error {
	out := svc.config.Output
	scanner := bufio.NewScanner(svc.config.Input)

	fmt.Fprint(out, "search> ")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		query := scanner.Text()
		if query != "" {
			results, err := svc.Search(query)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(out, "no results")
			}
			for i, res := range results {
				fmt.Fprintf(out, "%2d. %s (%.4f)\n    %s\n", i+1, res.Title, res.Score, res.URL)
			}
		}

		fmt.Fprint(out, "search> ")
	}

	return scanner.Err()
}
