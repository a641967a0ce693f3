package graph

import "errors"

var (
	// ErrNotFound is returned when a link lookup does not match any
	// stored link.
	ErrNotFound = errors.New("not found")

	// ErrUnknownEdgeLinks is returned when upserting an edge whose
	// source or destination link does not exist in the graph.
	ErrUnknownEdgeLinks = errors.New("unknown source and / or destination for edge")
)
