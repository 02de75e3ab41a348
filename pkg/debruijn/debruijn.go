package debruijn

// Edge is a directed connection between two (k-1)-mer node labels,
// derived from a single k-mer. It is never mutated after creation.
type Edge struct {
	Prefix string // k-mer minus its last symbol
	Suffix string // k-mer minus its first symbol
}

// Prefix returns the k-mer minus its last symbol.
// A length-1 k-mer yields the empty string.
func Prefix(kmer string) string {
	if kmer == "" {
		return ""
	}
	return kmer[:len(kmer)-1]
}

// Suffix returns the k-mer minus its first symbol.
// A length-1 k-mer yields the empty string.
func Suffix(kmer string) string {
	if kmer == "" {
		return ""
	}
	return kmer[1:]
}

// CompositionGraph converts a sequence of k-mers into the corresponding
// sequence of (prefix, suffix) edges, one per k-mer, in input order.
//
// The output order carries no meaning for graph construction (Build
// re-sorts everything) but is preserved for traceability. The function
// is pure and performs no validation; see Validate.
func CompositionGraph(kmers []string) []Edge {
	edges := make([]Edge, len(kmers))
	for i, kmer := range kmers {
		edges[i] = Edge{Prefix: Prefix(kmer), Suffix: Suffix(kmer)}
	}
	return edges
}
