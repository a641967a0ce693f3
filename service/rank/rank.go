/*
	rank package implements the ranking phase of a search engine run: a
	one-shot pass that loads the completed link graph into the PageRank
	calculator, computes authority scores and persists them to the text
	index. It must only run after the crawl phase has drained the
	frontier, ranking never reads a partially built graph.
*/

package rank

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"unisearch/linkgraph/graph"
	"unisearch/pagerank"
)

// GraphAPI defines the link graph operations the rank service needs.
type GraphAPI interface {
	// Links returns an iterator over every link in the graph.
	Links() (graph.LinkIterator, error)

	// Edges returns an iterator over every edge in the graph.
	Edges() (graph.EdgeIterator, error)
}

// IndexAPI defines the text index operations the rank service needs.
type IndexAPI interface {
	// UpdateScore sets the PageRank score for the document with the
	// specified URL.
	UpdateScore(url string, score float64) error
}

// Config defines the configuration for the rank service.
type Config struct {
	GraphAPI GraphAPI
	IndexAPI IndexAPI

	// PageRank tunables with the calculator's defaults when zero.
	DampingFactor float64
	MaxIterations int
	Tolerance     float64

	// A clock instance for time-related events. If not specified, the
	// wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined, an output-discarding logger
	// will be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.GraphAPI == nil {
		err = multierror.Append(err, fmt.Errorf("graph API not provided"))
	}

	if config.IndexAPI == nil {
		err = multierror.Append(err, fmt.Errorf("index API not provided"))
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Service computes and persists PageRank scores over a completed crawl's
// link graph.
type Service struct {
	config Config
	scores map[string]float64
}

// New creates and returns a fully configured rank service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("rank service: config validation failed: %w", err)
	}

	return &Service{config: config}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "rank" }

// Scores returns the URL to score mapping produced by the last Run. The
// map is read-only once Run returns.
func (svc *Service) Scores() map[string]float64 {
	return svc.scores
}

// Run executes one full rank pass and blocks until it completes or the
// context gets cancelled.
func (svc *Service) Run(ctx context.Context) error {
	calc, err := pagerank.NewCalculator(pagerank.Config{
		DampingFactor: svc.config.DampingFactor,
		MaxIterations: svc.config.MaxIterations,
		Tolerance:     svc.config.Tolerance,
	})
	if err != nil {
		return err
	}

	startedAt := svc.config.Clock.Now()

	urlsByID, err := svc.loadVertices(calc)
	if err != nil {
		return err
	}

	if err := svc.loadEdges(calc, urlsByID); err != nil {
		return err
	}
	graphLoadDuration := svc.config.Clock.Now().Sub(startedAt)

	tick := svc.config.Clock.Now()
	iterations, err := calc.Calculate(ctx)
	if err != nil {
		return err
	}
	calculationDuration := svc.config.Clock.Now().Sub(tick)

	svc.scores = make(map[string]float64, calc.VertexCount())
	if err := calc.Scores(func(url string, score float64) error {
		svc.scores[url] = score

		return svc.config.IndexAPI.UpdateScore(url, score)
	}); err != nil {
		return err
	}

	svc.config.Logger.WithFields(logrus.Fields{
		"ranked_pages":         calc.VertexCount(),
		"iterations":           iterations,
		"graph_load_duration":  graphLoadDuration.String(),
		"calculation_duration": calculationDuration.String(),
		"total_duration":       svc.config.Clock.Now().Sub(startedAt).String(),
	}).Info("rank pass complete")

	return nil
}

// loadVertices adds one vertex per fetched page. Links that were
// discovered but never retrieved stay out of the rank computation.
func (svc *Service) loadVertices(calc *pagerank.Calculator) (map[uuid.UUID]string, error) {
	linkIt, err := svc.config.GraphAPI.Links()
	if err != nil {
		return nil, err
	}

	urlsByID := make(map[uuid.UUID]string)
	for linkIt.Next() {
		link := linkIt.Link()
		if link.RetrievedAt.IsZero() {
			continue
		}

		urlsByID[link.ID] = link.URL
		calc.AddVertex(link.URL)
	}

	if err := linkIt.Error(); err != nil {
		_ = linkIt.Close()

		return nil, err
	}

	return urlsByID, linkIt.Close()
}

// loadEdges adds the edges whose endpoints both survived vertex
// filtering.
func (svc *Service) loadEdges(calc *pagerank.Calculator, urlsByID map[uuid.UUID]string) error {
	edgeIt, err := svc.config.GraphAPI.Edges()
	if err != nil {
		return err
	}

	for edgeIt.Next() {
		edge := edgeIt.Edge()

		srcURL, srcOK := urlsByID[edge.Src]
		destURL, destOK := urlsByID[edge.Dest]
		if !srcOK || !destOK {
			continue
		}

		if err := calc.AddEdge(srcURL, destURL); err != nil {
			if errors.Is(err, pagerank.ErrUnknownVertex) {
				continue
			}

			_ = edgeIt.Close()

			return err
		}
	}

	if err := edgeIt.Error(); err != nil {
		_ = edgeIt.Close()

		return err
	}

	return edgeIt.Close()
}
