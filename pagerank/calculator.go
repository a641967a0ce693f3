/*
	pagerank package implements the iterative PageRank algorithm over the
	link graph assembled by a completed crawl run.

	Every vertex starts at 1/N. Each iteration assigns a vertex
	(1-d)/N plus d times the rank mass flowing in from its neighbors,
	where each source distributes its previous score evenly across its
	outbound edges. Vertices with no outbound edges ("dangling" pages)
	redistribute their score uniformly across the whole graph so no rank
	mass leaks. Iteration stops once the L1 distance between successive
	score vectors drops below the configured tolerance, or after
	MaxIterations — hitting the cap is not an error, the best available
	approximation is kept.
*/

package pagerank

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrUnknownVertex is returned when adding an edge whose source or
// destination has not been added as a vertex.
var ErrUnknownVertex = errors.New("unknown edge vertex")

// Config encapsulates the tunables for the PageRank calculation.
type Config struct {
	// Probability that a random surfer follows an outbound link rather
	// than jumping to a random page. If not specified, a default value
	// of 0.85 will be used instead.
	DampingFactor float64

	// Hard cap on the number of iterations. If not specified, a
	// default value of 100 will be used instead.
	MaxIterations int

	// L1 convergence threshold between successive score vectors. If
	// not specified, a default value of 1e-6 will be used instead.
	Tolerance float64
}

func (config *Config) validate() error {
	var err error

	if config.DampingFactor == 0 {
		config.DampingFactor = 0.85
	}
	if config.DampingFactor < 0 || config.DampingFactor >= 1 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for damping factor, must be in [0, 1)",
		))
	}

	if config.MaxIterations == 0 {
		config.MaxIterations = 100
	}
	if config.MaxIterations < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for max iterations, must be > 0",
		))
	}

	if config.Tolerance == 0 {
		config.Tolerance = 1e-6
	}
	if config.Tolerance < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for tolerance, must be > 0",
		))
	}

	return err
}

// Calculator executes the iterative version of the PageRank algorithm on a
// graph until the desired level of convergence is reached.
type Calculator struct {
	cfg Config

	// Adjacency by vertex ID. The nested map dedups repeated AddEdge
	// calls for the same ordered pair.
	out    map[string]map[string]struct{}
	scores map[string]float64
}

// NewCalculator returns a new Calculator instance using the provided
// config options.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf(
			"PageRank calculator config validation failed: %w", err,
		)
	}

	return &Calculator{
		cfg:    cfg,
		out:    make(map[string]map[string]struct{}),
		scores: make(map[string]float64),
	}, nil
}

// AddVertex adds a new vertex with the specified ID into the graph.
// Adding an existing ID is a no-op.
func (c *Calculator) AddVertex(id string) {
	if _, exists := c.out[id]; exists {
		return
	}

	c.out[id] = make(map[string]struct{})
	c.scores[id] = 0
}

// AddEdge inserts a directed edge from src to dst. Self-loops are dropped
// at this boundary: including them would only feed a page's own score
// back to itself and slow convergence, while the link graph store still
// records them as page data.
func (c *Calculator) AddEdge(src, dst string) error {
	if src == dst {
		return nil
	}

	if _, exists := c.out[src]; !exists {
		return fmt.Errorf("add edge %q -> %q: %w", src, dst, ErrUnknownVertex)
	}
	if _, exists := c.out[dst]; !exists {
		return fmt.Errorf("add edge %q -> %q: %w", src, dst, ErrUnknownVertex)
	}

	c.out[src][dst] = struct{}{}

	return nil
}

// Calculate runs PageRank iterations until convergence or the iteration
// cap and reports the number of iterations performed. The context is
// checked between iterations so long computations can be abandoned.
func (c *Calculator) Calculate(ctx context.Context) (int, error) {
	n := len(c.out)
	if n == 0 {
		return 0, nil
	}

	pageCount := float64(n)
	for id := range c.scores {
		c.scores[id] = 1.0 / pageCount
	}

	next := make(map[string]float64, n)

	var iterations int
	for iterations = 0; iterations < c.cfg.MaxIterations; iterations++ {
		if err := ctx.Err(); err != nil {
			return iterations, err
		}

		// Dangling vertices spread their entire score across the
		// graph, keeping the total rank mass at 1.
		var danglingMass float64
		for id, targets := range c.out {
			if len(targets) == 0 {
				danglingMass += c.scores[id]
			}
		}

		base := (1.0-c.cfg.DampingFactor)/pageCount +
			c.cfg.DampingFactor*danglingMass/pageCount
		for id := range c.out {
			next[id] = base
		}

		for src, targets := range c.out {
			if len(targets) == 0 {
				continue
			}

			share := c.scores[src] / float64(len(targets))
			for dst := range targets {
				next[dst] += c.cfg.DampingFactor * share
			}
		}

		var l1 float64
		for id, score := range next {
			delta := score - c.scores[id]
			if delta < 0 {
				delta = -delta
			}
			l1 += delta

			c.scores[id] = score
		}

		if l1 < c.cfg.Tolerance {
			iterations++

			break
		}
	}

	return iterations, nil
}

// Scores invokes the provided visitor function for each vertex in the
// graph.
func (c *Calculator) Scores(visitFn func(id string, score float64) error) error {
	for id, score := range c.scores {
		if err := visitFn(id, score); err != nil {
			return err
		}
	}

	return nil
}

// VertexCount returns the number of vertices added to the calculator.
func (c *Calculator) VertexCount() int {
	return len(c.out)
}
