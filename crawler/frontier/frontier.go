/*
	frontier package implements the crawl frontier: a concurrency-safe
	FIFO of canonical URLs pending a fetch. Crawl workers may discover and
	enqueue the same URL concurrently; the frontier guarantees that each
	URL is handed out for fetching at most once per crawl run.
*/

package frontier

import (
	"sync"

	"unisearch/urlutil"
)

// Frontier queues in-scope canonical URLs for fetching.
type Frontier struct {
	mu sync.Mutex

	scope   urlutil.ScopeFilter
	pending []string

	// URLs ever accepted by Enqueue. Entries are never removed so a
	// URL cannot re-enter the queue after it has been dequeued.
	seen     map[string]struct{}
	dequeued int
}

// New creates a frontier restricted to the provided crawl scope.
func New(scope urlutil.ScopeFilter) *Frontier {
	return &Frontier{
		scope: scope,
		seen:  make(map[string]struct{}),
	}
}

// Enqueue adds a canonical URL to the frontier and reports whether it was
// accepted. URLs outside the crawl scope and URLs already enqueued at any
// point in the run are silently dropped.
func (f *Frontier) Enqueue(normalizedURL string) bool {
	if !f.scope.InScope(normalizedURL) {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.seen[normalizedURL]; exists {
		return false
	}

	f.seen[normalizedURL] = struct{}{}
	f.pending = append(f.pending, normalizedURL)

	return true
}

// DequeueBatch atomically removes and returns up to max pending URLs in
// FIFO order. It returns an empty slice when the frontier is drained.
func (f *Frontier) DequeueBatch(max int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if max <= 0 || max > len(f.pending) {
		max = len(f.pending)
	}

	batch := make([]string, max)
	copy(batch, f.pending[:max])
	f.pending = f.pending[max:]
	f.dequeued += len(batch)

	return batch
}

// Len returns the number of URLs still pending a fetch.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.pending)
}

// DequeuedCount returns the number of URLs handed out for fetching so
// far.
func (f *Frontier) DequeuedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.dequeued
}
