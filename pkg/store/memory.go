package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-memory Store for tests and single-process
// deployments. All returned graphs are detached copies, so callers can
// mutate them without affecting the stored state.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]StoredGraph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]StoredGraph)}
}

// Save persists a copy of g.
func (s *MemoryStore) Save(ctx context.Context, g *StoredGraph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[g.ID] = copyGraph(*g)
	return nil
}

// Get returns a detached copy of the graph with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*StoredGraph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.graphs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyGraph(g)
	return &cp, nil
}

// List returns detached copies of all graphs, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]StoredGraph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredGraph, 0, len(s.graphs))
	for _, g := range s.graphs {
		out = append(out, copyGraph(g))
	}
	slices.SortFunc(out, func(a, b StoredGraph) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Delete removes the graph with the given ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graphs[id]; !ok {
		return ErrNotFound
	}
	delete(s.graphs, id)
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// copyGraph deep-copies the adjacency mapping so stored and returned
// graphs never share slices.
func copyGraph(g StoredGraph) StoredGraph {
	if g.Adjacency != nil {
		adj := make(map[string][]string, len(g.Adjacency))
		for k, v := range g.Adjacency {
			adj[k] = slices.Clone(v)
		}
		g.Adjacency = adj
	}
	return g
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
