package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"unisearch/linkgraph/graph"
)

// Static and compile-time check to ensure InMemoryGraph implements
// Graph interface.
var _ graph.Graph = (*InMemoryGraph)(nil)

// edgeList contains the slice of edge UUIDs that originate from a link in
// the graph.
type edgeList []uuid.UUID

// InMemoryGraph implements an in-memory link and edge graph that can be
// concurrently accessed by multiple crawl workers.
type InMemoryGraph struct {
	mu            sync.RWMutex
	links         map[uuid.UUID]*graph.Link
	edges         map[uuid.UUID]*graph.Edge
	linkURLIndex  map[string]*graph.Link
	linkToEdgeMap map[uuid.UUID]edgeList // Maps links to edges originating from them.
}

// NewInMemoryGraph creates a new in-memory link graph.
func NewInMemoryGraph() *InMemoryGraph {
	return &InMemoryGraph{
		links:         make(map[uuid.UUID]*graph.Link),
		edges:         make(map[uuid.UUID]*graph.Edge),
		linkURLIndex:  make(map[string]*graph.Link),
		linkToEdgeMap: make(map[uuid.UUID]edgeList),
	}
}

// UpsertLink creates a new or updates an existing link. Links are
// deduplicated by canonical URL: a second upsert for a known URL turns into
// an update that keeps the most recent RetrievedAt value.
func (s *InMemoryGraph) UpsertLink(link *graph.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.linkURLIndex[link.URL]; exists {
		link.ID = existing.ID
		existingRetrievedAt := existing.RetrievedAt
		*existing = *link

		// Never roll the retrieval timestamp back.
		if existingRetrievedAt.After(link.RetrievedAt) {
			existing.RetrievedAt = existingRetrievedAt
		}

		return nil
	}

	// Assign a random ID to the new link, re-rolling on the unlikely
	// collision.
	for {
		link.ID = uuid.New()
		if _, exists := s.links[link.ID]; !exists {
			break
		}
	}

	// Store a private copy so that later caller-side mutations of the
	// provided link cannot corrupt the graph.
	lCopy := new(graph.Link)
	*lCopy = *link

	s.links[lCopy.ID] = lCopy
	s.linkURLIndex[lCopy.URL] = lCopy

	return nil
}

// FindLink performs a link lookup by id.
func (s *InMemoryGraph) FindLink(id uuid.UUID) (*graph.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, exists := s.links[id]
	if !exists {
		return nil, fmt.Errorf("find link: %w", graph.ErrNotFound)
	}

	lCopy := new(graph.Link)
	*lCopy = *link

	return lCopy, nil
}

// FindLinkByURL performs a link lookup by its canonical URL.
func (s *InMemoryGraph) FindLinkByURL(url string) (*graph.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, exists := s.linkURLIndex[url]
	if !exists {
		return nil, fmt.Errorf("find link by URL: %w", graph.ErrNotFound)
	}

	lCopy := new(graph.Link)
	*lCopy = *link

	return lCopy, nil
}

// Links returns an iterator over every link in the graph.
func (s *InMemoryGraph) Links() (graph.LinkIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*graph.Link, 0, len(s.links))
	for _, link := range s.links {
		list = append(list, link)
	}

	return &linkIterator{store: s, links: list}, nil
}

// UpsertEdge creates a new or refreshes an existing edge. Edges are
// deduplicated per ordered (src, dest) pair: upserting a known pair only
// refreshes its UpdatedAt timestamp.
func (s *InMemoryGraph) UpsertEdge(edge *graph.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, srcExists := s.links[edge.Src]
	_, destExists := s.links[edge.Dest]
	if !srcExists || !destExists {
		return fmt.Errorf("upsert edge: %w", graph.ErrUnknownEdgeLinks)
	}

	for _, edgeID := range s.linkToEdgeMap[edge.Src] {
		existing := s.edges[edgeID]
		if existing.Src == edge.Src && existing.Dest == edge.Dest {
			existing.UpdatedAt = time.Now()
			// Copy the refreshed edge back so the caller observes the
			// assigned ID and timestamp.
			*edge = *existing

			return nil
		}
	}

	for {
		edge.ID = uuid.New()
		if _, exists := s.edges[edge.ID]; !exists {
			break
		}
	}

	edge.UpdatedAt = time.Now()
	eCopy := new(graph.Edge)
	*eCopy = *edge

	s.edges[eCopy.ID] = eCopy
	s.linkToEdgeMap[eCopy.Src] = append(s.linkToEdgeMap[eCopy.Src], eCopy.ID)

	return nil
}

// Edges returns an iterator over every edge in the graph.
func (s *InMemoryGraph) Edges() (graph.EdgeIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*graph.Edge, 0, len(s.edges))
	for _, edge := range s.edges {
		list = append(list, edge)
	}

	return &edgeIterator{store: s, edges: list}, nil
}
