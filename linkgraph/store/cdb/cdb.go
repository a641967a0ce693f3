/*
	cdb package implements a graph.Graph backed by a CockroachDB (or any
	postgres-wire-compatible) instance. It provides the optional persisted
	graph state between the crawl and serving phases.

	Expected schema:

		CREATE TABLE IF NOT EXISTS links (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			url STRING UNIQUE,
			retrieved_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS edges (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			src UUID REFERENCES links(id),
			dest UUID REFERENCES links(id),
			updated_at TIMESTAMPTZ,
			CONSTRAINT edge_links UNIQUE(src, dest)
		);
*/

package cdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"unisearch/linkgraph/graph"
)

var (
	upsertLinkQuery = `
		INSERT INTO links (url, retrieved_at)
		VALUES ($1, $2)
		ON CONFLICT (url)
		DO UPDATE SET retrieved_at=GREATEST(links.retrieved_at, $2)
		RETURNING id, retrieved_at
		`
	findLinkQuery      = "SELECT id, url, retrieved_at FROM links WHERE id=$1"
	findLinkByURLQuery = "SELECT id, url, retrieved_at FROM links WHERE url=$1"
	allLinksQuery      = "SELECT id, url, retrieved_at FROM links"

	upsertEdgeQuery = `
		INSERT INTO edges (src, dest, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (src, dest)
		DO UPDATE SET updated_at=NOW()
		RETURNING id, updated_at
		`
	allEdgesQuery = "SELECT id, src, dest, updated_at FROM edges"
)

// Static and compile-time check to ensure CockroachDBGraph implements
// Graph interface.
var _ graph.Graph = (*CockroachDBGraph)(nil)

// CockroachDBGraph implements a persistent link and edge graph using a
// CockroachDB instance.
type CockroachDBGraph struct {
	db *sql.DB
}

// NewCockroachDBGraph returns a CockroachDBGraph instance connected to the
// provided DSN.
func NewCockroachDBGraph(dsn string) (*CockroachDBGraph, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &CockroachDBGraph{db: db}, nil
}

// Close terminates the connection to the backing database instance.
func (s *CockroachDBGraph) Close() error {
	return s.db.Close()
}

// UpsertLink creates a new or updates an existing link.
func (s *CockroachDBGraph) UpsertLink(link *graph.Link) error {
	err := s.db.QueryRow(
		upsertLinkQuery, link.URL, link.RetrievedAt.UTC(),
	).Scan(&link.ID, &link.RetrievedAt)
	if err != nil {
		return fmt.Errorf("upsert link: %w", err)
	}

	link.RetrievedAt = link.RetrievedAt.UTC()

	return nil
}

// FindLink performs a link lookup by id.
func (s *CockroachDBGraph) FindLink(id uuid.UUID) (*graph.Link, error) {
	l := new(graph.Link)

	err := s.db.QueryRow(findLinkQuery, id).Scan(&l.ID, &l.URL, &l.RetrievedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find link: %w", graph.ErrNotFound)
		}

		return nil, fmt.Errorf("find link: %w", err)
	}

	l.RetrievedAt = l.RetrievedAt.UTC()

	return l, nil
}

// FindLinkByURL performs a link lookup by its canonical URL.
func (s *CockroachDBGraph) FindLinkByURL(url string) (*graph.Link, error) {
	l := new(graph.Link)

	err := s.db.QueryRow(findLinkByURLQuery, url).Scan(&l.ID, &l.URL, &l.RetrievedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find link by URL: %w", graph.ErrNotFound)
		}

		return nil, fmt.Errorf("find link by URL: %w", err)
	}

	l.RetrievedAt = l.RetrievedAt.UTC()

	return l, nil
}

// Links returns an iterator over every link in the graph.
func (s *CockroachDBGraph) Links() (graph.LinkIterator, error) {
	rows, err := s.db.Query(allLinksQuery)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}

	return &linkIterator{rows: rows}, nil
}

// UpsertEdge creates a new or refreshes an existing edge.
func (s *CockroachDBGraph) UpsertEdge(edge *graph.Edge) error {
	err := s.db.QueryRow(
		upsertEdgeQuery, edge.Src, edge.Dest,
	).Scan(&edge.ID, &edge.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert edge: %w", graph.ErrUnknownEdgeLinks)
		}

		return fmt.Errorf("upsert edge: %w", err)
	}

	edge.UpdatedAt = edge.UpdatedAt.UTC()

	return nil
}

// Edges returns an iterator over every edge in the graph.
func (s *CockroachDBGraph) Edges() (graph.EdgeIterator, error) {
	rows, err := s.db.Query(allEdgesQuery)
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}

	return &edgeIterator{rows: rows}, nil
}

func isForeignKeyViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}

	return pqErr.Code.Name() == "foreign_key_violation"
}
