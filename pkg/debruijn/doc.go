// Package debruijn constructs de Bruijn graphs from k-mer collections.
//
// A de Bruijn graph represents each k-mer as a directed edge from its
// length-(k-1) prefix to its length-(k-1) suffix. Nodes with identical
// labels are glued together by string equality, so the graph emerges
// naturally from grouping edges by their source label.
//
// # Construction
//
// Build is the main entry point:
//
//	g, err := debruijn.Build([]string{"GAGG", "CAGG", "GGGG"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, node := range g.Keys() {
//	    fmt.Println(node, g.Successors(node))
//	}
//
// The resulting adjacency structure is fully deterministic: keys and
// each key's successor list are sorted lexicographically, so any
// permutation of the input produces an identical graph. Parallel edges
// (repeated k-mers) are preserved as repeated successor entries.
//
// # Validation
//
// By default Build rejects inputs with non-uniform k-mer lengths or
// k-mers shorter than 2 symbols, since both silently corrupt the graph
// structure (mixed lengths fragment the node space; length-1 k-mers
// collapse into a degenerate ""-labeled node). WithoutValidation
// restores the permissive behavior for callers that want it.
package debruijn
