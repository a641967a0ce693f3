package memory

import "unisearch/linkgraph/graph"

// Static and compile-time check to ensure linkIterator implements
// graph.Iterator interface.
var _ graph.Iterator = (*linkIterator)(nil)

// linkIterator is a graph.LinkIterator implementation for the in-memory
// graph.
type linkIterator struct {
	// Pointer to the owning store; used to acquire its read lock while
	// cloning items.
	store        *InMemoryGraph
	links        []*graph.Link
	currentIndex int
}

// Next loads the next item, returns false when no more links are available.
func (i *linkIterator) Next() bool {
	if i.currentIndex >= len(i.links) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error encountered by the iterator.
func (i *linkIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *linkIterator) Close() error {
	return nil
}

// Link returns the currently fetched link object.
func (i *linkIterator) Link() *graph.Link {
	// The link contents may be overwritten by a concurrent upsert; hold
	// the store read lock while cloning.
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	l := new(graph.Link)
	*l = *i.links[i.currentIndex-1]

	return l
}

// edgeIterator is a graph.EdgeIterator implementation for the in-memory
// graph.
type edgeIterator struct {
	store        *InMemoryGraph
	edges        []*graph.Edge
	currentIndex int
}

// Next loads the next item, returns false when no more edges are available.
func (i *edgeIterator) Next() bool {
	if i.currentIndex >= len(i.edges) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error encountered by the iterator.
func (i *edgeIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *edgeIterator) Close() error {
	return nil
}

// Edge returns the currently fetched edge object.
func (i *edgeIterator) Edge() *graph.Edge {
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	e := new(graph.Edge)
	*e = *i.edges[i.currentIndex-1]

	return e
}
