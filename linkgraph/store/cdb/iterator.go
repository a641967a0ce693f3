package cdb

import (
	"database/sql"
	"fmt"

	"unisearch/linkgraph/graph"
)

// linkIterator is a graph.LinkIterator implementation for the cdb graph.
type linkIterator struct {
	rows        *sql.Rows
	lastErr     error
	currentLink *graph.Link
}

// Next loads the next row, returns false when no more rows are available
// or when an error occurs.
func (i *linkIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	l := new(graph.Link)
	if i.lastErr = i.rows.Scan(&l.ID, &l.URL, &l.RetrievedAt); i.lastErr != nil {
		return false
	}

	l.RetrievedAt = l.RetrievedAt.UTC()
	i.currentLink = l

	return true
}

// Error returns the last error encountered by the iterator.
func (i *linkIterator) Error() error {
	return i.lastErr
}

// Close releases any resources allocated to the iterator.
func (i *linkIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("link iterator: %w", err)
	}

	return nil
}

// Link returns the currently fetched link object.
func (i *linkIterator) Link() *graph.Link {
	return i.currentLink
}

// edgeIterator is a graph.EdgeIterator implementation for the cdb graph.
type edgeIterator struct {
	rows        *sql.Rows
	lastErr     error
	currentEdge *graph.Edge
}

// Next loads the next row, returns false when no more rows are available
// or when an error occurs.
func (i *edgeIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	e := new(graph.Edge)
	i.lastErr = i.rows.Scan(&e.ID, &e.Src, &e.Dest, &e.UpdatedAt)
	if i.lastErr != nil {
		return false
	}

	e.UpdatedAt = e.UpdatedAt.UTC()
	i.currentEdge = e

	return true
}

// Error returns the last error encountered by the iterator.
func (i *edgeIterator) Error() error {
	return i.lastErr
}

// Close releases any resources allocated to the iterator.
func (i *edgeIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("edge iterator: %w", err)
	}

	return nil
}

// Edge returns the currently fetched edge object.
func (i *edgeIterator) Edge() *graph.Edge {
	return i.currentEdge
}
