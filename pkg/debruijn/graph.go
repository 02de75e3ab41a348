package debruijn

import (
	"maps"
	"slices"

	apperrors "github.com/graphomics/debruijn/pkg/errors"
)

// Graph is an immutable de Bruijn graph over (k-1)-mer node labels.
//
// Keys (source labels) and every successor list are sorted
// lexicographically, so two graphs built from permutations of the same
// input are identical. The zero value is not usable; construct graphs
// with Build or FromAdjacency.
//
// Graph holds no mutable state after construction, so concurrent reads
// from multiple goroutines are safe without synchronization.
type Graph struct {
	adj   map[string][]string
	keys  []string // sorted source labels
	k     int      // k-mer length (0 for the empty graph)
	nodes int      // distinct labels across sources and destinations
	edges int      // total successor entries (== input k-mer count)
}

// buildConfig holds Build options.
type buildConfig struct {
	validate bool
}

// Option configures Build.
type Option func(*buildConfig)

// WithoutValidation disables input validation, restoring the permissive
// reference behavior: mixed-length k-mers fragment the graph silently
// and length-1 k-mers collapse into a single ""-labeled node.
func WithoutValidation() Option {
	return func(c *buildConfig) { c.validate = false }
}

// Build constructs the de Bruijn graph for a multiset of k-mers.
//
// Each k-mer contributes exactly one edge from its prefix to its
// suffix; repeated k-mers are retained as parallel edges. An empty
// input yields an empty (non-nil) graph. Unless WithoutValidation is
// given, Build fails with an INVALID_INPUT error before producing any
// partial result when the k-mers have non-uniform length or length < 2.
func Build(kmers []string, opts ...Option) (*Graph, error) {
	cfg := buildConfig{validate: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.validate {
		if err := Validate(kmers); err != nil {
			return nil, err
		}
	}

	adj := make(map[string][]string)
	for _, e := range CompositionGraph(kmers) {
		adj[e.Prefix] = append(adj[e.Prefix], e.Suffix)
	}

	k := 0
	if len(kmers) > 0 {
		k = len(kmers[0])
	}
	return newGraph(adj, k), nil
}

// FromAdjacency reconstructs a Graph from a deserialized adjacency
// mapping. The input is copied and re-sorted; counts are re-derived
// from the data rather than trusted from the caller. Entries with
// empty successor lists are rejected: a source label only exists
// because at least one k-mer produced it.
func FromAdjacency(adj map[string][]string) (*Graph, error) {
	cp := make(map[string][]string, len(adj))
	for prefix, suffixes := range adj {
		if len(suffixes) == 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
				"node %q has an empty successor list", prefix)
		}
		s := slices.Clone(suffixes)
		slices.Sort(s)
		cp[prefix] = s
	}

	k := 0
	for prefix := range cp {
		k = len(prefix) + 1
		break
	}
	return newGraph(cp, k), nil
}

// newGraph takes ownership of adj, sorts it, and derives the counts.
func newGraph(adj map[string][]string, k int) *Graph {
	keys := slices.Sorted(maps.Keys(adj))

	labels := make(map[string]struct{})
	edges := 0
	for _, prefix := range keys {
		slices.Sort(adj[prefix])
		labels[prefix] = struct{}{}
		for _, suffix := range adj[prefix] {
			labels[suffix] = struct{}{}
		}
		edges += len(adj[prefix])
	}

	return &Graph{
		adj:   adj,
		keys:  keys,
		k:     k,
		nodes: len(labels),
		edges: edges,
	}
}

// Keys returns the source node labels in sorted order.
// The returned slice is a copy and safe to modify.
func (g *Graph) Keys() []string {
	return slices.Clone(g.keys)
}

// Successors returns the sorted destination labels for a source node,
// with parallel edges repeated. It returns nil for unknown labels.
// The returned slice is a copy and safe to modify.
func (g *Graph) Successors(label string) []string {
	return slices.Clone(g.adj[label])
}

// HasNode reports whether label appears as a source node in the graph.
func (g *Graph) HasNode(label string) bool {
	_, ok := g.adj[label]
	return ok
}

// Adjacency returns a deep copy of the full adjacency mapping.
func (g *Graph) Adjacency() map[string][]string {
	out := make(map[string][]string, len(g.adj))
	for prefix, suffixes := range g.adj {
		out[prefix] = slices.Clone(suffixes)
	}
	return out
}

// K returns the k-mer length the graph was built from, or 0 for the
// empty graph. Node labels have length K()-1.
func (g *Graph) K() int {
	return g.k
}

// NodeCount returns the number of distinct node labels across sources
// and destinations.
func (g *Graph) NodeCount() int {
	return g.nodes
}

// EdgeCount returns the total number of edges, which equals the number
// of input k-mers: every k-mer contributes exactly one edge, none
// dropped, none merged.
func (g *Graph) EdgeCount() int {
	return g.edges
}
